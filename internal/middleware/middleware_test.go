package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
	"github.com/oseghale/unireg/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticUserLoader struct {
	users map[int64]*models.User
}

func (l *staticUserLoader) GetByID(_ context.Context, userID int64) (*models.User, error) {
	user, ok := l.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func newTestAuth(users ...*models.User) (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "unireg.test",
	})
	loader := &staticUserLoader{users: map[int64]*models.User{}}
	for _, u := range users {
		loader.users[u.ID] = u
	}
	return NewAuthMiddleware(jwtService, loader), jwtService
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return &resp
}

func performRequest(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func protectedRouter(m *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestJWTAuthAllowsValidToken(t *testing.T) {
	m, jwtService := newTestAuth(&models.User{ID: 42, Role: models.RoleStudent, IsActive: true})
	pair, err := jwtService.GenerateTokenPair(42)
	require.NoError(t, err)

	w := performRequest(protectedRouter(m), "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	m, _ := newTestAuth()

	w := performRequest(protectedRouter(m), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, "Not authenticated", resp.Error.Message)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	m, jwtService := newTestAuth(&models.User{ID: 42, IsActive: true})
	pair, err := jwtService.GenerateTokenPair(42)
	require.NoError(t, err)

	w := performRequest(protectedRouter(m), "Bearer "+pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token type", decodeError(t, w).Error.Message)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	m, _ := newTestAuth()

	w := performRequest(protectedRouter(m), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error.Message)
}

func TestJWTAuthRejectsUnknownUser(t *testing.T) {
	m, jwtService := newTestAuth()
	pair, err := jwtService.GenerateTokenPair(42)
	require.NoError(t, err)

	w := performRequest(protectedRouter(m), "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error.Message)
}

func TestJWTAuthRejectsInactiveUser(t *testing.T) {
	m, jwtService := newTestAuth(&models.User{ID: 42, IsActive: false})
	pair, err := jwtService.GenerateTokenPair(42)
	require.NoError(t, err)

	w := performRequest(protectedRouter(m), "Bearer "+pair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User inactive", decodeError(t, w).Error.Message)
}

func TestRoleRequired(t *testing.T) {
	student := &models.User{ID: 42, Role: models.RoleStudent, IsActive: true}
	admin := &models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}
	m, jwtService := newTestAuth(student, admin)
	router := protectedRouter(m, m.RoleRequired(models.RoleAdmin, models.RoleLecturer))

	adminPair, err := jwtService.GenerateTokenPair(1)
	require.NoError(t, err)
	w := performRequest(router, "Bearer "+adminPair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	studentPair, err := jwtService.GenerateTokenPair(42)
	require.NoError(t, err)
	w = performRequest(router, "Bearer "+studentPair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
	assert.Equal(t, "Insufficient permissions", resp.Error.Message)
}

func TestHandleAPIErrorMapsRequestErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantMsg    string
	}{
		{"bad request", apperrors.NewBadRequestError("Course already added"), http.StatusBadRequest, dto.ErrorCodeBadRequest, "Course already added"},
		{"unauthorized", apperrors.NewUnauthorizedError("Invalid credentials"), http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid credentials"},
		{"forbidden", apperrors.NewForbiddenError("Insufficient permissions"), http.StatusForbidden, dto.ErrorCodeForbidden, "Insufficient permissions"},
		{"not found", apperrors.NewNotFoundError("Course not found"), http.StatusNotFound, dto.ErrorCodeNotFound, "Course not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Equal(t, tc.wantMsg, resp.Error.Message)
			assert.False(t, resp.Success)
		})
	}
}

func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
	assert.Equal(t, "Internal server error", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleAPIErrorMapsSentinels(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.ErrTokenExpired)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decodeError(t, w).Error.Message)
}
