// Package users manages back-office accounts.
package users

import (
	"context"
	"fmt"
	"strings"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/auth"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Service manages user records and credential assignment.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the fields for a new account.
type CreateInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// Create validates input, hashes the password and persists the account.
func (s *Service) Create(ctx context.Context, in CreateInput) (user.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return user.User{}, apperr.Validation("a valid email is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return user.User{}, apperr.Validation("name is required")
	}
	if len(in.Password) < 8 {
		return user.User{}, apperr.Validation("password must be at least 8 characters")
	}
	role := user.RoleEditor
	if strings.TrimSpace(in.Role) != "" {
		parsed, err := user.ParseRole(in.Role)
		if err != nil {
			return user.User{}, apperr.Validation(err.Error())
		}
		role = parsed
	}

	digest, err := auth.HashSecret(in.Password)
	if err != nil {
		return user.User{}, apperr.Internal("hash password", err)
	}

	created, err := s.store.CreateUser(ctx, user.User{
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: digest,
		Role:         role,
		Active:       true,
	})
	if err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", created.ID).WithField("role", created.Role).Info("user created")
	return created, nil
}

// Get returns a single account.
func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	if strings.TrimSpace(id) == "" {
		return user.User{}, apperr.Validation("id is required")
	}
	return s.store.GetUser(ctx, id)
}

// List returns every account, newest first.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}

// Update applies a partial patch. Unspecified fields keep their prior
// values; updated_at refreshes unconditionally.
func (s *Service) Update(ctx context.Context, id string, p Patch) (user.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email == "" || !strings.Contains(email, "@") {
			return user.User{}, apperr.Validation("a valid email is required")
		}
		u.Email = email
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return user.User{}, apperr.Validation("name must not be empty")
		}
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Password != nil {
		if len(*p.Password) < 8 {
			return user.User{}, apperr.Validation("password must be at least 8 characters")
		}
		digest, err := auth.HashSecret(*p.Password)
		if err != nil {
			return user.User{}, apperr.Internal("hash password", err)
		}
		u.PasswordHash = digest
	}
	if p.Role != nil {
		role, err := user.ParseRole(*p.Role)
		if err != nil {
			return user.User{}, apperr.Validation(err.Error())
		}
		u.Role = role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}

	updated, err := s.store.UpdateUser(ctx, u)
	if err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", id).Info("user updated")
	return updated, nil
}

// Delete permanently removes an account. Deleting a missing id is a
// not-found error, never a silent success.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

// EnsureAdmin creates the bootstrap admin when the collection is empty.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if email == "" || password == "" {
		return fmt.Errorf("no users exist and no bootstrap admin configured")
	}
	_, err = s.Create(ctx, CreateInput{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     string(user.RoleAdmin),
	})
	if err != nil {
		return err
	}
	s.log.WithField("email", email).Warn("bootstrap admin created")
	return nil
}
