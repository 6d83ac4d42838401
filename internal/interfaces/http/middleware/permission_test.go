package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/greenclub/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
)

func setClaims(permissions []string, roleCodes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(JWTClaimsKey, &auth.Claims{
			MemberID:    "b0c4f0f2-1b0e-4f70-9f1d-1a2b3c4d5e6f",
			Permissions: permissions,
			RoleCodes:   roleCodes,
		})
		c.Next()
	}
}

func TestRequirePermission_Allowed(t *testing.T) {
	router := gin.New()
	router.Use(setClaims([]string{"posts:create"}, nil))
	router.POST("/posts", RequirePermission("posts:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermission_Denied(t *testing.T) {
	router := gin.New()
	router.Use(setClaims([]string{"posts:read"}, nil))
	router.POST("/posts", RequirePermission("posts:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequirePermission_NoClaims(t *testing.T) {
	router := gin.New()
	router.POST("/posts", RequirePermission("posts:create"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAnyPermission(t *testing.T) {
	router := gin.New()
	router.Use(setClaims([]string{"pools:manage"}, nil))
	router.GET("/admin", RequireAnyPermission("events:manage", "pools:manage"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireResource_MethodMapping(t *testing.T) {
	router := gin.New()
	router.Use(setClaims([]string{"events:read", "events:delete"}, nil))

	guard := RequireResource("events")
	router.GET("/events", guard, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/events", guard, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/events", guard, func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusForbidden},
		{http.MethodDelete, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, "/events", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, tc.method)
	}
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.Use(setClaims(nil, []string{"admin"}))
	router.GET("/admin", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/editor", RequireRole("editor"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/editor", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
