package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techmastery/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExecuteCodeRejectsUnknownLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	before := testutil.CollectAndCount(metrics.CodeExecutions)

	router := gin.New()
	router.POST("/api/execute-code", ExecuteCode)

	req := httptest.NewRequest(http.MethodPost, "/api/execute-code", strings.NewReader(`{"code": "puts 1", "language": "ruby"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	// Rejected language strings must not mint new metric label children.
	if after := testutil.CollectAndCount(metrics.CodeExecutions); after != before {
		t.Fatalf("execution metric grew on a rejected language: before=%d after=%d", before, after)
	}
}
