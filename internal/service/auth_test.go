package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAuthRepo struct {
	users          map[string]*model.User
	roles          map[int64][]string
	lastLoginCalls int
	lastLoginErr   error
}

func (f *fakeAuthRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	user, ok := f.users[strings.ToLower(login)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthRepo) GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	roles := f.roles[userID]
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

func (f *fakeAuthRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	f.lastLoginCalls++
	return f.lastLoginErr
}

func newTestRepo(t *testing.T) *fakeAuthRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Admin@123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Administrator",
	}
	return &fakeAuthRepo{
		users: map[string]*model.User{
			"admin":             admin,
			"admin@example.com": admin,
		},
		roles: map[int64][]string{1: {"Admin"}},
	}
}

func newTestAuthService(t *testing.T, repo authRepo) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, config.AuthConfig{
		JWTSecret:     testSecret,
		Issuer:        "erp-backend",
		Audience:      "erp-clients",
		ExpiryMinutes: "60",
	})
	require.NoError(t, err)
	return svc
}

func TestNewAuthServiceConfig(t *testing.T) {
	repo := newTestRepo(t)

	_, err := NewAuthService(repo, config.AuthConfig{Issuer: "x", Audience: "y", ExpiryMinutes: "60"})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewAuthService(repo, config.AuthConfig{JWTSecret: "short", ExpiryMinutes: "60"})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewAuthService(repo, config.AuthConfig{JWTSecret: testSecret, ExpiryMinutes: "zero"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	_, err := svc.Login(context.Background(), "admin", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Identical error for both failure modes, no account enumeration.
	_, unknownErr := svc.Login(context.Background(), "nobody", "wrong-password")
	assert.Equal(t, unknownErr, err)
}

func TestLoginSuccess(t *testing.T) {
	repo := newTestRepo(t)
	svc := newTestAuthService(t, repo)

	resp, err := svc.Login(context.Background(), "admin", "Admin@123")
	require.NoError(t, err)

	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "admin@example.com", resp.Email)
	assert.Equal(t, "System", resp.FirstName)
	assert.Equal(t, "Administrator", resp.LastName)
	assert.ElementsMatch(t, []string{"Admin"}, resp.Roles)
	assert.Equal(t, 1, repo.lastLoginCalls)

	user, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.ElementsMatch(t, []string{"Admin"}, user.Roles)
}

func TestLoginByEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	resp, err := svc.Login(context.Background(), "ADMIN@example.com", "Admin@123")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
}

func TestLoginLastLoginFailureIsSwallowed(t *testing.T) {
	repo := newTestRepo(t)
	repo.lastLoginErr = errors.New("write failed")
	svc := newTestAuthService(t, repo)

	resp, err := svc.Login(context.Background(), "admin", "Admin@123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestParseTokenTamperedSignature(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	resp, err := svc.Login(context.Background(), "admin", "Admin@123")
	require.NoError(t, err)

	// Flip one byte inside the signature segment.
	tampered := []byte(resp.Token)
	if tampered[len(tampered)-1] == 'A' {
		tampered[len(tampered)-1] = 'B'
	} else {
		tampered[len(tampered)-1] = 'A'
	}

	_, err = svc.ParseToken(string(tampered))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseTokenExpired(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	token := signTestToken(t, jwt.MapClaims{
		"sub":      "1",
		"iss":      "erp-backend",
		"aud":      "erp-clients",
		"username": "admin",
		"email":    "admin@example.com",
		"roles":    []string{"Admin"},
		"iat":      time.Now().Add(-2 * time.Hour).Unix(),
		"exp":      time.Now().Add(-1 * time.Hour).Unix(),
	})

	_, err := svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseTokenWrongIssuerOrAudience(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	expiry := time.Now().Add(time.Hour).Unix()

	badIssuer := signTestToken(t, jwt.MapClaims{
		"sub": "1", "iss": "someone-else", "aud": "erp-clients", "exp": expiry,
	})
	_, err := svc.ParseToken(badIssuer)
	assert.ErrorIs(t, err, ErrUnauthorized)

	badAudience := signTestToken(t, jwt.MapClaims{
		"sub": "1", "iss": "erp-backend", "aud": "other-clients", "exp": expiry,
	})
	_, err = svc.ParseToken(badAudience)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestParseTokenRejectsNonHMAC(t *testing.T) {
	svc := newTestAuthService(t, newTestRepo(t))

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "iss": "erp-backend", "aud": "erp-clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseToken(signed)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
