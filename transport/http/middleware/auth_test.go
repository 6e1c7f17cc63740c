package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"floorplan/config"
	"floorplan/infras/jwt"
	jwtMocks "floorplan/infras/jwt/mocks"
	otelMocks "floorplan/infras/otel/mocks"
	authMocks "floorplan/internal/domains/auth/service/mocks"
	"floorplan/permissions"
	"floorplan/shared/constant"
	"floorplan/transport/http/middleware"
	"floorplan/transport/http/response"
)

const testAPIKey = "integration-key"

type authFixture struct {
	jwt    *jwtMocks.MockJWT
	auth   *authMocks.MockAuth
	router chi.Router
}

func newAuthFixture(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.APIKey = testAPIKey

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true},
			{Path: "/v1/tables/", Method: http.MethodGet, Permissions: []string{"admin", "staff"}},
			{Path: "/v1/tables/", Method: http.MethodPost, Permissions: []string{"admin"}},
			{Path: "/v1/blocks/", Method: http.MethodPost, Permissions: []string{"admin", "staff"}, APIKey: true},
		},
	}

	f := authFixture{
		jwt:  jwtMocks.NewMockJWT(ctrl),
		auth: authMocks.NewMockAuth(ctrl),
	}

	mw := middleware.NewAuthRoleMiddleware(f.jwt, f.auth, otelMocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		response.WithJSON(w, http.StatusOK, map[string]string{"user_id": userID})
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", echo)
		r.Get("/tables/", echo)
		r.Post("/tables/", echo)
		r.Post("/blocks/", echo)
	})

	f.router = router

	return f
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{
		UserID:   "user-1",
		Username: "ana",
		Role:     role,
		TokenID:  "token-1",
		Type:     jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Body[map[string]string] {
	var body response.Body[map[string]string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(f authFixture)
		wantCode  int
		wantUser  string
	}{
		{
			name:     "skipped route needs no token",
			method:   http.MethodPost,
			path:     "/v1/auth/login",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing authorization header",
			method:   http.MethodGet,
			path:     "/v1/tables/",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed authorization header",
			method:   http.MethodGet,
			path:     "/v1/tables/",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "revoked token",
			method:  http.MethodGet,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims("staff"), nil)
				f.auth.EXPECT().IsRevoked(gomock.Any(), "token-1").Return(true, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "revocation store unavailable",
			method:  http.MethodGet,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims("staff"), nil)
				f.auth.EXPECT().IsRevoked(gomock.Any(), "token-1").Return(false, errors.New("redis down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:    "staff can read the floor plan",
			method:  http.MethodGet,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims("staff"), nil)
				f.auth.EXPECT().IsRevoked(gomock.Any(), "token-1").Return(false, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "user-1",
		},
		{
			name:    "staff cannot create tables",
			method:  http.MethodPost,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims("staff"), nil)
				f.auth.EXPECT().IsRevoked(gomock.Any(), "token-1").Return(false, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "admin creates tables",
			method:  http.MethodPost,
			path:    "/v1/tables/",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			setupMock: func(f authFixture) {
				f.jwt.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims("admin"), nil)
				f.auth.EXPECT().IsRevoked(gomock.Any(), "token-1").Return(false, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "user-1",
		},
		{
			name:     "api key on an integration route",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			headers:  map[string]string{constant.RequestHeaderAPIKey: testAPIKey},
			wantCode: http.StatusOK,
			wantUser: constant.ContextIntegration,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			path:     "/v1/blocks/",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "nope"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "api key on a staff only route",
			method:   http.MethodGet,
			path:     "/v1/tables/",
			headers:  map[string]string{constant.RequestHeaderAPIKey: testAPIKey},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			f.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, tt.wantCode < http.StatusBadRequest, body.Success)

			if tt.wantUser != "" {
				require.NotNil(t, body.Data)
				assert.Equal(t, tt.wantUser, (*body.Data)["user_id"])
			}
		})
	}
}
