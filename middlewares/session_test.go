package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"techmastery/services"

	"github.com/gin-gonic/gin"
)

func newProtectedRouter(store services.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", SessionMiddleware(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	return router
}

func TestSessionMiddlewareMissingCookie(t *testing.T) {
	router := newProtectedRouter(services.NewMemorySessionStore(time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionMiddlewareUnknownToken(t *testing.T) {
	router := newProtectedRouter(services.NewMemorySessionStore(time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionMiddlewareValidSession(t *testing.T) {
	store := services.NewMemorySessionStore(time.Minute)
	token, err := store.Create(context.Background(), "user-7")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	router := newProtectedRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "user-7") {
		t.Fatalf("expected user id in response, got %s", body)
	}
}
