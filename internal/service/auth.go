package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/erp-suite/backend/internal/config"
	"github.com/erp-suite/backend/internal/db"
	"github.com/erp-suite/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 32

// authRepo is the slice of the store the auth flow needs.
type authRepo interface {
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
	GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type AuthService struct {
	repo     authRepo
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

type authClaims struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

func NewAuthService(repo authRepo, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("%w: JWT_SECRET must be at least %d bytes", ErrMisconfigured, minSecretLength)
	}

	expiryMinutes, err := strconv.Atoi(cfg.ExpiryMinutes)
	if err != nil || expiryMinutes <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_EXPIRY_MINUTES", ErrMisconfigured)
	}

	return &AuthService{
		repo:     repo,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   time.Duration(expiryMinutes) * time.Minute,
	}, nil
}

// Login verifies the credentials and returns a signed token plus the user's
// profile. Unknown identifier and wrong password collapse into the same
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, login, password string) (*model.LoginResponse, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if db.IsNoRows(err) {
			// Burn a comparison so the miss costs the same as a mismatch.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	roles, err := s.repo.GetRoleNamesForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user, roles)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed stamp must not fail the login.
	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Printf("Failed to update last_login for user %d: %v", user.ID, err)
	}

	return &model.LoginResponse{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
	}, nil
}

// ParseToken validates signature, issuer, audience and expiry, and returns
// the identity embedded in the claims. Any validation failure maps to
// ErrUnauthorized; callers must not leak the distinction.
func (s *AuthService) ParseToken(tokenStr string) (*model.AuthUser, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		log.Printf("Rejected token: %v", err)
		return nil, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	roles := claims.Roles
	if roles == nil {
		roles = []string{}
	}

	return &model.AuthUser{
		ID:       userID,
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    roles,
	}, nil
}

func (s *AuthService) generateToken(user *model.User, roles []string) (string, error) {
	now := time.Now()
	claims := authClaims{
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// dummyHash is a bcrypt hash of an unused value, compared against when the
// identifier does not resolve so both failure paths take similar time.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("erp-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// HashPassword produces the bcrypt verifier stored for a user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
