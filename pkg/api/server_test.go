package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockSentinel/pkg/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.Port = "8080"
	cfg.API.ReadTimeout = 7 * time.Second
	cfg.API.WriteTimeout = 13 * time.Second
	return cfg
}

func TestNewServerAppliesTimeouts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(testConfig(), zap.NewNop())

	require.NotNil(t, s.srv)
	assert.Equal(t, ":8080", s.srv.Addr)
	assert.Equal(t, 7*time.Second, s.srv.ReadTimeout)
	assert.Equal(t, 13*time.Second, s.srv.WriteTimeout)
}

func TestHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(testConfig(), zap.NewNop())
	s.SetupRoutes(&Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
