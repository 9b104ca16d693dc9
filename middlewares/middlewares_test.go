package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		c.JSON(http.StatusOK, gin.H{"deadline": hasDeadline})
	})
	return r
}

func get(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	frozen := time.Now()
	rl.now = func() time.Time { return frozen }
	r := newEngine(rl.RateLimit())

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000").Code)
	w := get(r, "10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests, please slow down"}`, w.Body.String())

	// client lain punya bucket sendiri
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2:1000").Code)

	frozen = frozen.Add(time.Second)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1000").Code)
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	now = now.Add(idleVisitor + time.Second)
	assert.True(t, rl.allow("b"))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
}

func TestSecurityHeadersAndTimeout(t *testing.T) {
	r := newEngine(SecurityHeaders(), RequestTimeout(time.Second))
	w := get(r, "10.0.0.1:1000")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	assert.JSONEq(t, `{"deadline":true}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://pos.local"}))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://pos.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://pos.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
