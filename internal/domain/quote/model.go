// Package quote defines quote request records captured by the site's
// contact forms.
package quote

import (
	"fmt"
	"strings"
	"time"
)

// Status is the quote follow-up state.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusNew:
		return StatusNew, nil
	case StatusContacted:
		return StatusContacted, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusDeclined:
		return StatusDeclined, nil
	default:
		return "", fmt.Errorf("unknown quote status %q", raw)
	}
}

// Quote is a project inquiry.
type Quote struct {
	ID          string    `json:"id"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	ProjectKind string    `json:"project_kind,omitempty"`
	Budget      string    `json:"budget,omitempty"`
	Message     string    `json:"message"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats summarizes quotes per status.
type Stats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Contacted int `json:"contacted"`
	Accepted  int `json:"accepted"`
	Declined  int `json:"declined"`
}
