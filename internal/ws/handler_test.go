package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerTestRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hub := newTestHub(&fakeStore{})
	handler := NewHandler(hub, jwtService)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func TestServeRejectsMissingToken(t *testing.T) {
	router := newHandlerTestRouter(jwt.NewService("test-secret", time.Hour))

	req, _ := http.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeRejectsInvalidToken(t *testing.T) {
	router := newHandlerTestRouter(jwt.NewService("test-secret", time.Hour))

	req, _ := http.NewRequest(http.MethodGet, "/ws?token=garbage", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeRejectsTokenSignedWithOtherSecret(t *testing.T) {
	router := newHandlerTestRouter(jwt.NewService("test-secret", time.Hour))

	token, err := jwt.NewService("other-secret", time.Hour).GenerateToken(1, "a@example.edu")
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
