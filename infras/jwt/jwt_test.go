package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floorplan/config"
	"floorplan/infras/jwt"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "floorplan"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newService()

	pair, err := svc.GenerateTokenPair("user-1", "maria", "staff")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.TokenID)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken, "access token is signed with the access secret")

	refresh, err := svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Type)

	_, err = svc.ValidateToken("not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)

	token, err = jwt.ExtractTokenFromHeader("bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestValidateToken_RejectsForeignTokens(t *testing.T) {
	svc := newService()

	other := &config.Config{}
	other.App.Name = "someone-else"
	other.JWT.AccessSecret = "access-secret"
	other.JWT.RefreshSecret = "refresh-secret"
	other.JWT.AccessExpireMin = 15

	pair, err := jwt.New(other).GenerateTokenPair("user-1", "maria", "staff")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken, "issuer must match the app name")
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "floorplan"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.AccessExpireMin = -1

	svc := jwt.New(cfg)

	pair, err := svc.GenerateTokenPair("user-1", "maria", "staff")
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestValidateToken_UnknownType(t *testing.T) {
	_, err := newService().ValidateToken("abc", jwt.TokenType("api"))
	assert.Error(t, err)
}
