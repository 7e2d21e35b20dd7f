package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp-suite/backend/internal/model"
	"github.com/gin-gonic/gin"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := newTestAuthService(t)
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/api/v1/auth/login", h.Login)
	r.GET("/api/v1/auth/me", AuthMiddleware(svc), h.Me)
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginValidation(t *testing.T) {
	r := newAuthRouter(t)

	w := postLogin(r, `{"username":"admin"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newAuthRouter(t)

	missing := postLogin(r, `{"username":"ghost","password":"whatever"}`)
	if missing.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", missing.Code)
	}

	wrong := postLogin(r, `{"username":"admin","password":"nope-nope-nope"}`)
	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", wrong.Code)
	}

	// The body must be identical for both failures.
	if missing.Body.String() != wrong.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", missing.Body.String(), wrong.Body.String())
	}
}

func TestLoginSuccessReturnsProfileAndToken(t *testing.T) {
	r := newAuthRouter(t)

	w := postLogin(r, `{"username":"admin","password":"Admin@123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Username != "admin" || resp.Email != "admin@example.com" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != "Admin" {
		t.Fatalf("expected roles [Admin], got %v", resp.Roles)
	}

	// The token works against a protected endpoint.
	me := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	r.ServeHTTP(me, req)
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d", me.Code)
	}

	var meResp model.MeResponse
	if err := json.Unmarshal(me.Body.Bytes(), &meResp); err != nil {
		t.Fatalf("failed to decode me response: %v", err)
	}
	if meResp.UserID != 1 || meResp.Username != "admin" {
		t.Fatalf("unexpected identity: %+v", meResp)
	}
}
