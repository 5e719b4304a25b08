// Package user defines back-office accounts and their roles.
package user

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of back-office roles. Keeping it closed means a
// typo in stored data fails loudly at parse time instead of silently
// changing what a token grants.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEditor:
		return RoleEditor, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is a back-office account. PasswordHash is a bcrypt digest and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
