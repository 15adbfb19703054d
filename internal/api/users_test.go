package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"challenge_league_api/internal/api/mocks"
	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserRouter(us *mocks.MockUserService, required bool) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		NewUserRoutes(group, us, newTestAuthorization(required))
	})
}

func TestUserRoutes_RegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(us *mocks.MockUserService)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "Registered",
			body: `{"name": "Ann", "email": "ann@example.com", "password": "secret-password"}`,
			setupMocks: func(us *mocks.MockUserService) {
				us.On("RegisterUser", mock.Anything, "Ann", "ann@example.com", "secret-password").
					Return(&model.User{UserID: 1, Name: "Ann", Email: "ann@example.com"}, nil)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(1), body["user_id"])
				assert.NotContains(t, body, "password")
			},
		},
		{
			name: "Duplicate email",
			body: `{"name": "Ann", "email": "ann@example.com", "password": "secret-password"}`,
			setupMocks: func(us *mocks.MockUserService) {
				us.On("RegisterUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "User already exists with this email.", body["error"])
			},
		},
		{
			name:           "Password longer than 72 bytes",
			body:           `{"name": "Ann", "email": "ann@example.com", "password": "` + strings.Repeat("a", 73) + `"}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Invalid parameters", body["error"])
				assert.Equal(t, []any{"password must be at most 72 bytes"}, body["details"])
			},
		},
		{
			name: "Service rejects an overlong password",
			body: `{"name": "Ann", "email": "ann@example.com", "password": "secret-password"}`,
			setupMocks: func(us *mocks.MockUserService) {
				us.On("RegisterUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, service.ErrPasswordTooLong)
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"password must be at most 72 bytes"}, body["details"])
			},
		},
		{
			name:           "Weak password and bad email",
			body:           `{"name": "Ann", "email": "not-an-email", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.ElementsMatch(t, []any{
					"email must be a valid email",
					"password must be at least 8 characters",
				}, body["details"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &mocks.MockUserService{}
			if tt.setupMocks != nil {
				tt.setupMocks(us)
			}

			w := performRequest(newUserRouter(us, false), http.MethodPost, "/api/v1/register_user", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.check(t, decodeBody(t, w))
			us.AssertExpectations(t)
		})
	}
}

func TestUserRoutes_Login(t *testing.T) {
	expiresAt := time.Date(2024, time.March, 10, 16, 0, 0, 0, time.UTC)

	us := &mocks.MockUserService{}
	us.On("Login", mock.Anything, "ann@example.com", "secret-password").Return(&model.LoginResult{
		UserID:      1,
		Email:       "ann@example.com",
		AccessToken: "token",
		ExpiresAt:   expiresAt,
	}, nil)
	us.On("Login", mock.Anything, "ann@example.com", "wrong").Return(nil, service.ErrInvalidCredentials)

	router := newUserRouter(us, true)

	w := performRequest(router, http.MethodPost, "/api/v1/user_login", `{"email": "ann@example.com", "password": "secret-password"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "token", body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])

	w = performRequest(router, http.MethodPost, "/api/v1/user_login", `{"email": "ann@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	us.AssertExpectations(t)
}

func TestUserRoutes_Logout(t *testing.T) {
	us := &mocks.MockUserService{}
	us.On("Logout", mock.Anything, int64(1)).Return(nil)

	router := newUserRouter(us, true)

	w := performRequest(router, http.MethodPost, "/api/v1/user_logout", `{"user_id": 1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/user_logout", `{"user_id": 1}`, "Authorization", bearer(t, 1))
	assert.Equal(t, http.StatusOK, w.Code)

	us.AssertExpectations(t)
}
