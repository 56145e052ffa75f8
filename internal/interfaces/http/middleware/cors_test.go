package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/banks", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return router
}

func corsRequest(router *gin.Engine, method, path, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS_AnyOrigin(t *testing.T) {
	router := newCORSRouter(CORS())

	tests := []struct {
		name     string
		method   string
		path     string
		origin   string
		wantCode int
	}{
		{"simple request", http.MethodGet, "/api/v1/banks", "http://intranet.sitinfra.cm", http.StatusOK},
		{"no origin header", http.MethodGet, "/api/v1/banks", "", http.StatusOK},
		{"preflight", http.MethodOptions, "/api/v1/banks", "http://intranet.sitinfra.cm", http.StatusNoContent},
		{"preflight on unknown path", http.MethodOptions, "/api/v1/nowhere", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRequest(router, tt.method, tt.path, tt.origin)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
			assert.Empty(t, w.Header().Get("Vary"))
		})
	}
}

func TestCORSWithConfig_AllowList(t *testing.T) {
	router := newCORSRouter(CORSWithConfig(CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000", "https://erp.sitinfra.cm"},
		AllowMethods:     []string{http.MethodGet},
		AllowCredentials: true,
	}))

	w := corsRequest(router, http.MethodGet, "/api/v1/banks", "https://erp.sitinfra.cm")
	assert.Equal(t, "https://erp.sitinfra.cm", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type", "empty list takes the defaults")

	w = corsRequest(router, http.MethodGet, "/api/v1/banks", "http://evil.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
