// Package tickets manages support ticket records.
package tickets

import (
	"context"
	"strings"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Service manages ticket records and validation.
type Service struct {
	store storage.TicketStore
	users storage.UserStore
	log   *logger.Logger
}

// New constructs a ticket service. The user store validates assignees and
// may be nil when assignment checks are delegated to the storage layer.
func New(store storage.TicketStore, users storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("tickets")
	}
	return &Service{store: store, users: users, log: log}
}

// CreateInput carries the fields for a new ticket.
type CreateInput struct {
	Subject        string                 `json:"subject"`
	Body           string                 `json:"body"`
	RequesterEmail string                 `json:"requester_email"`
	AssigneeID     string                 `json:"assignee_id"`
	Priority       string                 `json:"priority"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Subject        *string                `json:"subject"`
	Body           *string                `json:"body"`
	RequesterEmail *string                `json:"requester_email"`
	AssigneeID     *string                `json:"assignee_id"`
	Status         *string                `json:"status"`
	Priority       *string                `json:"priority"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// Create validates input and persists a new open ticket.
func (s *Service) Create(ctx context.Context, in CreateInput) (ticket.Ticket, error) {
	if strings.TrimSpace(in.Subject) == "" {
		return ticket.Ticket{}, apperr.Validation("subject is required")
	}
	if strings.TrimSpace(in.RequesterEmail) == "" {
		return ticket.Ticket{}, apperr.Validation("requester_email is required")
	}
	if in.AssigneeID != "" && s.users != nil {
		if _, err := s.users.GetUser(ctx, in.AssigneeID); err != nil {
			return ticket.Ticket{}, apperr.Validation("assignee does not exist")
		}
	}

	created, err := s.store.CreateTicket(ctx, ticket.Ticket{
		Subject:        strings.TrimSpace(in.Subject),
		Body:           in.Body,
		RequesterEmail: strings.ToLower(strings.TrimSpace(in.RequesterEmail)),
		AssigneeID:     in.AssigneeID,
		Status:         ticket.StatusOpen,
		Priority:       strings.TrimSpace(in.Priority),
		Metadata:       in.Metadata,
	})
	if err != nil {
		return ticket.Ticket{}, err
	}
	s.log.WithField("ticket_id", created.ID).WithField("number", created.Number).Info("ticket created")
	return created, nil
}

// Get returns a single ticket.
func (s *Service) Get(ctx context.Context, id string) (ticket.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return ticket.Ticket{}, apperr.Validation("id is required")
	}
	return s.store.GetTicket(ctx, id)
}

// List returns tickets matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter storage.TicketFilter) ([]ticket.Ticket, error) {
	if filter.Status != "" {
		parsed, err := ticket.ParseStatus(string(filter.Status))
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		filter.Status = parsed
	}
	return s.store.ListTickets(ctx, filter)
}

// Update applies a partial patch.
func (s *Service) Update(ctx context.Context, id string, p Patch) (ticket.Ticket, error) {
	t, err := s.store.GetTicket(ctx, id)
	if err != nil {
		return ticket.Ticket{}, err
	}

	if p.Subject != nil {
		if strings.TrimSpace(*p.Subject) == "" {
			return ticket.Ticket{}, apperr.Validation("subject must not be empty")
		}
		t.Subject = strings.TrimSpace(*p.Subject)
	}
	if p.Body != nil {
		t.Body = *p.Body
	}
	if p.RequesterEmail != nil {
		if strings.TrimSpace(*p.RequesterEmail) == "" {
			return ticket.Ticket{}, apperr.Validation("requester_email must not be empty")
		}
		t.RequesterEmail = strings.ToLower(strings.TrimSpace(*p.RequesterEmail))
	}
	if p.AssigneeID != nil {
		if *p.AssigneeID != "" && s.users != nil {
			if _, err := s.users.GetUser(ctx, *p.AssigneeID); err != nil {
				return ticket.Ticket{}, apperr.Validation("assignee does not exist")
			}
		}
		t.AssigneeID = *p.AssigneeID
	}
	if p.Status != nil {
		status, err := ticket.ParseStatus(*p.Status)
		if err != nil {
			return ticket.Ticket{}, apperr.Validation(err.Error())
		}
		t.Status = status
	}
	if p.Priority != nil {
		t.Priority = strings.TrimSpace(*p.Priority)
	}
	if p.Metadata != nil {
		t.Metadata = p.Metadata
	}

	updated, err := s.store.UpdateTicket(ctx, t)
	if err != nil {
		return ticket.Ticket{}, err
	}
	s.log.WithField("ticket_id", id).Info("ticket updated")
	return updated, nil
}

// Delete permanently removes a ticket.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTicket(ctx, id); err != nil {
		return err
	}
	s.log.WithField("ticket_id", id).Info("ticket deleted")
	return nil
}

// Stats returns per-status counts.
func (s *Service) Stats(ctx context.Context) (ticket.Stats, error) {
	return s.store.TicketStats(ctx)
}
