// Package auth issues and verifies the signed identity tokens that gate the
// HTTP gateway, and owns credential hashing.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// DefaultTokenTTL is the token validity window when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the identity bundle embedded in every token. Tokens are
// stateless; nothing here is persisted server-side.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the public subset of a user returned alongside a token.
type Identity struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  user.Role `json:"role"`
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

// Service signs, verifies and authenticates.
type Service struct {
	users    storage.UserStore
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

// New constructs an auth service. The signing secret must be non-empty.
func New(users storage.UserStore, secret string, tokenTTL time.Duration, log *logger.Logger) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("auth: signing secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{users: users, secret: []byte(secret), tokenTTL: tokenTTL, log: log}, nil
}

// HashSecret produces a salted one-way digest of a credential.
func HashSecret(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(digest), nil
}

// VerifySecret compares a credential against a stored digest. bcrypt's
// comparison is constant-time with respect to the digest.
func VerifySecret(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// IssueToken signs an identity token for the given user.
func (s *Service) IssueToken(u user.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry. Any failure maps to the
// unauthorized kind so callers can branch without exception handling.
func (s *Service) VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, apperr.Unauthorized("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, apperr.Unauthorized("invalid token claims")
	}
	if _, err := user.ParseRole(string(claims.Role)); err != nil {
		return Claims{}, apperr.Unauthorized("invalid token role")
	}
	return *claims, nil
}

// Login authenticates email/password credentials. Unknown email and wrong
// password return the identical unauthorized outcome so accounts cannot be
// enumerated.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, apperr.Unauthorized("invalid credentials")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil || !u.Active || !VerifySecret(password, u.PasswordHash) {
		s.log.WithField("email", email).Warn("login rejected")
		return LoginResult{}, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return LoginResult{}, apperr.Internal("issue token", err)
	}

	s.log.WithField("user_id", u.ID).Info("login succeeded")
	return LoginResult{
		Token: token,
		User:  Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
	}, nil
}
