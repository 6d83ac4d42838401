package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenclub/backend/internal/interfaces/http/dto"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping() error { return s.err }

func TestSystemHandlerHealth(t *testing.T) {
	h := NewSystemHandler(nil, "test")

	router := gin.New()
	router.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestSystemHandlerReady(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		h := NewSystemHandler(&stubPinger{}, "test")

		router := gin.New()
		router.GET("/ready", h.Ready)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ready", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("database unavailable", func(t *testing.T) {
		h := NewSystemHandler(&stubPinger{err: errors.New("connection refused")}, "test")

		router := gin.New()
		router.GET("/ready", h.Ready)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ready", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "not_ready")
	})
}

func TestSystemHandlerInfo(t *testing.T) {
	h := NewSystemHandler(nil, "1.2.3")

	router := gin.New()
	router.GET("/info", h.Info)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/info", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1.2.3")
	assert.Contains(t, w.Body.String(), "go_version")
}
