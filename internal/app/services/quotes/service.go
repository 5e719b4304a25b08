// Package quotes manages quote request records.
package quotes

import (
	"context"
	"strings"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Service manages quote requests.
type Service struct {
	store storage.QuoteStore
	log   *logger.Logger
}

// New constructs a quote service.
func New(store storage.QuoteStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("quotes")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the fields for a new quote request.
type CreateInput struct {
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	ProjectKind string `json:"project_kind"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Company     *string `json:"company"`
	ProjectKind *string `json:"project_kind"`
	Budget      *string `json:"budget"`
	Message     *string `json:"message"`
	Status      *string `json:"status"`
}

// Create validates input and persists a new quote in the "new" state.
func (s *Service) Create(ctx context.Context, in CreateInput) (quote.Quote, error) {
	if strings.TrimSpace(in.ContactName) == "" {
		return quote.Quote{}, apperr.Validation("contact_name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return quote.Quote{}, apperr.Validation("email is required")
	}

	created, err := s.store.CreateQuote(ctx, quote.Quote{
		ContactName: strings.TrimSpace(in.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Company:     strings.TrimSpace(in.Company),
		ProjectKind: strings.TrimSpace(in.ProjectKind),
		Budget:      strings.TrimSpace(in.Budget),
		Message:     in.Message,
		Status:      quote.StatusNew,
	})
	if err != nil {
		return quote.Quote{}, err
	}
	s.log.WithField("quote_id", created.ID).Info("quote created")
	return created, nil
}

// Get returns a single quote.
func (s *Service) Get(ctx context.Context, id string) (quote.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return quote.Quote{}, apperr.Validation("id is required")
	}
	return s.store.GetQuote(ctx, id)
}

// List returns quotes matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter storage.QuoteFilter) ([]quote.Quote, error) {
	if filter.Status != "" {
		parsed, err := quote.ParseStatus(string(filter.Status))
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		filter.Status = parsed
	}
	return s.store.ListQuotes(ctx, filter)
}

// Update applies a partial patch.
func (s *Service) Update(ctx context.Context, id string, p Patch) (quote.Quote, error) {
	q, err := s.store.GetQuote(ctx, id)
	if err != nil {
		return quote.Quote{}, err
	}

	if p.ContactName != nil {
		if strings.TrimSpace(*p.ContactName) == "" {
			return quote.Quote{}, apperr.Validation("contact_name must not be empty")
		}
		q.ContactName = strings.TrimSpace(*p.ContactName)
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return quote.Quote{}, apperr.Validation("email must not be empty")
		}
		q.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Company != nil {
		q.Company = strings.TrimSpace(*p.Company)
	}
	if p.ProjectKind != nil {
		q.ProjectKind = strings.TrimSpace(*p.ProjectKind)
	}
	if p.Budget != nil {
		q.Budget = strings.TrimSpace(*p.Budget)
	}
	if p.Message != nil {
		q.Message = *p.Message
	}
	if p.Status != nil {
		status, err := quote.ParseStatus(*p.Status)
		if err != nil {
			return quote.Quote{}, apperr.Validation(err.Error())
		}
		q.Status = status
	}

	updated, err := s.store.UpdateQuote(ctx, q)
	if err != nil {
		return quote.Quote{}, err
	}
	s.log.WithField("quote_id", id).Info("quote updated")
	return updated, nil
}

// Delete permanently removes a quote.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteQuote(ctx, id); err != nil {
		return err
	}
	s.log.WithField("quote_id", id).Info("quote deleted")
	return nil
}

// Stats returns per-status counts.
func (s *Service) Stats(ctx context.Context) (quote.Stats, error) {
	return s.store.QuoteStats(ctx)
}
