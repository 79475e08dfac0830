package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/service"
	"github.com/windoze95/mixlist/internal/util"
)

func TestSessionID_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := sessionID(c); ok {
		t.Error("sessionID() should fail without a session in context")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSessionID_Present(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(util.SessionContextKey, "abc")

	id, ok := sessionID(c)
	if !ok || id != "abc" {
		t.Errorf("sessionID() = %q, %v, want abc, true", id, ok)
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: index 4", service.ErrResultNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondServiceError(c, tt.err)
		if w.Code != tt.want {
			t.Errorf("respondServiceError(%v) status = %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}
