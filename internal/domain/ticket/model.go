// Package ticket defines support ticket records.
package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Status is the ticket lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusResolved:
		return StatusResolved, nil
	case StatusClosed:
		return StatusClosed, nil
	default:
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
}

// Ticket is a support request raised from the public site. Number is a
// human-facing natural key, unique within the collection. AssigneeID is
// empty when the ticket is unassigned.
type Ticket struct {
	ID             string                 `json:"id"`
	Number         string                 `json:"number"`
	Subject        string                 `json:"subject"`
	Body           string                 `json:"body"`
	RequesterEmail string                 `json:"requester_email"`
	AssigneeID     string                 `json:"assignee_id,omitempty"`
	Status         Status                 `json:"status"`
	Priority       string                 `json:"priority,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// Stats summarizes tickets per status.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}
