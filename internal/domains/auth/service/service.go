package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floorplan/config"
	"floorplan/infras/jwt"
	"floorplan/infras/otel"
	"floorplan/internal/domains/auth/model/dto"
	userModel "floorplan/internal/domains/user/model"
	userRepo "floorplan/internal/domains/user/repository"
	"floorplan/shared"
	"floorplan/shared/cache"
	"floorplan/shared/constant"
	"floorplan/shared/failure"
	"floorplan/shared/password"
	gRepo "floorplan/shared/repository"
	"floorplan/shared/timezone"

	"github.com/rs/zerolog/log"
)

const revokedKeyPrefix = "auth:revoked"

var errInvalidCredentials = failure.Unauthorized("invalid username or password")

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest, createdBy string) (dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, req dto.LogoutRequest) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Session(ctx context.Context, userID string) (dto.UserResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	cache      cache.RedisCache
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, cache cache.RedisCache) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		cache:      cache,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest, createdBy string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role != constant.Empty && !userModel.ValidRole(req.Role) {
		return res, failure.BadRequestFromString("role must be admin or staff") // nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, userModel.ActiveByUsername(req.Username))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("username already registered") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if errors.Is(err, password.ErrEmptyPassword) || errors.Is(err, password.ErrPasswordTooLong) {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(createdBy, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if constraint, ok := gRepo.UniqueViolation(err); ok && constraint == userModel.ConstraintUsername {
			return res, failure.Conflict("username already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := userModel.ActiveByUsername(req.Username)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, errInvalidCredentials
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, errInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := timezone.Now()

	var rehashed string
	if password.NeedsRehash(user.Password) {
		rehashed, _ = password.Hash(req.Password)
	}

	if err := s.userRepo.RecordLogin(ctx, user, now, rehashed); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, req dto.LogoutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.TokenID == constant.Empty {
		return failure.Unauthorized("invalid token") // nolint:wrapcheck
	}

	return s.revoke(ctx, req.TokenID, req.ExpiresAt)
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (revoked bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.IsRevoked")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	revoked, err = s.cache.Exists(ctx, shared.BuildCacheKey(revokedKeyPrefix, tokenID))
	if err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to check token revocation")

		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return revoked, nil
}

func (s *serviceImpl) Session(ctx context.Context, userID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userModel.ActiveByID(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("user not found or deactivated") // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		if errors.Is(err, jwt.ErrExpiredToken) {
			return res, failure.Unauthorized("refresh token expired") // nolint:wrapcheck
		}

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	revoked, err := s.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return res, err
	}

	if revoked {
		return res, failure.Unauthorized("refresh token revoked") // nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, userModel.ActiveByID(claims.UserID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("user not found or deactivated") // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// the used refresh token is single-use
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.revoke(ctx, claims.TokenID, expiresAt); err != nil {
		return res, err
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := int(time.Until(expiresAt).Seconds())
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, shared.BuildCacheKey(revokedKeyPrefix, tokenID), true, ttl); err != nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}
