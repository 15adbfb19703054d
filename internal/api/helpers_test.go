package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"challenge_league_api/internal/middleware"
	"challenge_league_api/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testAdminKey = "test-admin-key"
)

func newTestAuthorization(required bool) *middleware.Authorization {
	return middleware.NewAuthorization(auth.NewTokenAuth(testSecret, time.Hour), required, testAdminKey)
}

func newTestRouter(register func(group *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed)
	router.NoRoute(NotFound)

	register(router.Group("/api/v1"))
	return router
}

func performRequest(router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()

	token, _, err := auth.NewTokenAuth(testSecret, time.Hour).Issue(userID, "user@example.com")
	require.NoError(t, err)
	return "Bearer " + token
}
