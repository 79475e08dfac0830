package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func limitedRouter(l *IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.POST("/search", RateLimitByIP(l), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/search", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countLimiters(l *IPRateLimiter) int {
	n := 0
	l.limiters.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func TestRateLimitByIP_BurstThenReject(t *testing.T) {
	r := limitedRouter(NewIPRateLimiter(2))

	for i := 0; i < 2; i++ {
		if w := post(r, "192.0.2.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
	w := post(r, "192.0.2.1:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("rejected request should carry Retry-After")
	}
}

func TestRateLimitByIP_PerIP(t *testing.T) {
	r := limitedRouter(NewIPRateLimiter(1))

	post(r, "192.0.2.1:1234")
	if w := post(r, "192.0.2.2:1234"); w.Code != http.StatusOK {
		t.Errorf("another IP status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRateLimitByIP_Disabled(t *testing.T) {
	r := limitedRouter(NewIPRateLimiter(0))

	for i := 0; i < 20; i++ {
		if w := post(r, "192.0.2.1:1234"); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	l := NewIPRateLimiter(5)
	l.Allow("192.0.2.1")
	l.Allow("192.0.2.2")

	l.Cleanup(time.Hour)
	if n := countLimiters(l); n != 2 {
		t.Errorf("limiters after Cleanup(1h) = %d, want 2", n)
	}

	time.Sleep(5 * time.Millisecond)
	l.Cleanup(time.Millisecond)
	if n := countLimiters(l); n != 0 {
		t.Errorf("limiters after Cleanup(1ms) = %d, want 0", n)
	}
}
