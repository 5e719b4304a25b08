package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/solara-studio/backoffice/internal/domain/user"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage/memory"
)

func newService(t *testing.T, ttl time.Duration) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc, err := New(store, "test-secret", ttl, nil)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return svc, store
}

func seedUser(t *testing.T, store *memory.Store, email, password string, active bool) user.User {
	t.Helper()
	hash, err := HashSecret(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := store.CreateUser(context.Background(), user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Seed",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Active:       active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc, store := newService(t, 0)
	u := seedUser(t, store, "admin@example.com", "s3cret", true)

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != u.ID || claims.Email != u.Email || claims.Role != user.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc, store := newService(t, 0)
	u := seedUser(t, store, "admin@example.com", "s3cret", true)

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Flip one byte in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.VerifyToken(tampered); !apperr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for tampered token, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, store := newService(t, time.Millisecond)
	u := seedUser(t, store, "admin@example.com", "s3cret", true)

	token, err := svc.IssueToken(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := svc.VerifyToken(token); !apperr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	svc, store := newService(t, 0)
	u := seedUser(t, store, "admin@example.com", "s3cret", true)

	other, err := New(store, "different-secret", 0, nil)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	token, err := other.IssueToken(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := svc.VerifyToken(token); !apperr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for foreign token, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, store := newService(t, 0)
	seedUser(t, store, "admin@example.com", "s3cret", true)

	result, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("login returned empty token")
	}
	if result.User.Email != "admin@example.com" || result.User.Role != user.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", result.User)
	}

	if _, err := svc.VerifyToken(result.Token); err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}
}

// Failed logins must be indistinguishable whether the account is missing,
// inactive, or the password is wrong.
func TestLoginFailureUniformity(t *testing.T) {
	svc, store := newService(t, 0)
	seedUser(t, store, "admin@example.com", "s3cret", true)
	seedUser(t, store, "parked@example.com", "s3cret", false)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "s3cret"},
		{"wrong password", "admin@example.com", "wrong"},
		{"inactive account", "parked@example.com", "s3cret"},
	}

	var messages []string
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		if !apperr.IsUnauthorized(err) {
			t.Fatalf("%s: expected unauthorized, got %v", tc.name, err)
		}
		messages = append(messages, apperr.GetServiceError(err).Message)
	}
	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Fatalf("login failure messages differ: %q vs %q", messages[0], messages[i])
		}
	}
}
