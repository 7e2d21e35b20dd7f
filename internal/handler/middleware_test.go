package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/model"
	"github.com/erp-suite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAuthRepo struct {
	users map[string]*model.User
	roles map[int64][]string
}

func (f *fakeAuthRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	user, ok := f.users[login]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthRepo) GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	return f.roles[userID], nil
}

func (f *fakeAuthRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return nil
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	adminHash, err := bcrypt.GenerateFromPassword([]byte("Admin@123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	staffHash, err := bcrypt.GenerateFromPassword([]byte("Staff@123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	repo := &fakeAuthRepo{
		users: map[string]*model.User{
			"admin": {ID: 1, Username: "admin", Email: "admin@example.com", PasswordHash: string(adminHash)},
			"staff": {ID: 2, Username: "staff", Email: "staff@example.com", PasswordHash: string(staffHash)},
		},
		roles: map[int64][]string{
			1: {"Admin"},
			2: {"Staff"},
		},
	}

	svc, err := service.NewAuthService(repo, config.AuthConfig{
		JWTSecret:     testSecret,
		Issuer:        "erp-backend",
		Audience:      "erp-clients",
		ExpiryMinutes: "60",
	})
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func loginToken(t *testing.T, svc *service.AuthService, username, password string) string {
	t.Helper()
	resp, err := svc.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("login failed for %s: %v", username, err)
	}
	return resp.Token
}

func newGatedRouter(svc *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("", AuthMiddleware(svc))
	protected.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	protected.GET("/staff-only", RequireRoles("Staff"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	protected.GET("/managers", RequireRoles("Admin", "Manager"), func(c *gin.Context) {
		user := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func doRequest(r *gin.Engine, token string) func(path string) int {
	return func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newGatedRouter(newTestAuthService(t))

	get := doRequest(r, "")
	if code := get("/open"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newGatedRouter(newTestAuthService(t))

	get := doRequest(r, "not-a-token")
	if code := get("/open"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", code)
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	svc := newTestAuthService(t)
	r := newGatedRouter(svc)

	staff := doRequest(r, loginToken(t, svc, "staff", "Staff@123"))

	if code := staff("/open"); code != http.StatusOK {
		t.Fatalf("expected 200 on ungated resource, got %d", code)
	}
	if code := staff("/staff-only"); code != http.StatusOK {
		t.Fatalf("expected 200 on matching role, got %d", code)
	}
	if code := staff("/managers"); code != http.StatusForbidden {
		t.Fatalf("expected 403 on missing role, got %d", code)
	}
}

func TestRequireRolesAllowed(t *testing.T) {
	svc := newTestAuthService(t)
	r := newGatedRouter(svc)

	admin := doRequest(r, loginToken(t, svc, "admin", "Admin@123"))

	// Admin token against a resource gated to {Admin, Manager}.
	if code := admin("/managers"); code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", code)
	}

	// Same resource with no token at all.
	anon := doRequest(r, "")
	if code := anon("/managers"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
}
