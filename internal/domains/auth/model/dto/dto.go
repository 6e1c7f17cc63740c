package dto

import (
	"strings"
	"time"

	"floorplan/infras/jwt"
	userModel "floorplan/internal/domains/user/model"
	"floorplan/shared/constant"
	gModel "floorplan/shared/model"
	"floorplan/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"`
}

func (r *RegisterRequest) ToUserModel(createdBy string, hashedPassword string) userModel.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleStaff
	}

	return userModel.User{
		ID:       uuid.NewString(),
		Username: strings.ToLower(r.Username),
		Password: hashedPassword,
		Name:     r.Name,
		Role:     role,
		Active:   true,
		Metadata: gModel.NewMetadata(createdBy, timezone.Now()),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
}

func (u *UserResponse) FromModel(user userModel.User) {
	u.ID = user.ID
	u.Username = user.Username
	u.Name = user.Name
	u.Role = user.Role
	u.LastLogin = nil

	if user.LastLogin != nil {
		lastLogin := timezone.Format(*user.LastLogin, constant.DateFormat)
		u.LastLogin = &lastLogin
	}
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

// LogoutRequest identifies the access token being revoked; it is filled from the verified claims.
type LogoutRequest struct {
	TokenID   string
	ExpiresAt time.Time
}
