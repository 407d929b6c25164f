package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"menulens/internal/middleware"
)

func corsRouter(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := corsRouter([]string{"https://app.menulens.test"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://app.menulens.test")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.menulens.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	r := corsRouter([]string{"https://app.menulens.test"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	r := corsRouter([]string{"https://app.menulens.test"})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/ping", http.NoBody)
	req.Header.Set("Origin", "https://app.menulens.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
