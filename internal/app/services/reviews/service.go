// Package reviews manages testimonial records.
package reviews

import (
	"context"
	"strings"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Service manages testimonials.
type Service struct {
	store storage.ReviewStore
	log   *logger.Logger
}

// New constructs a review service.
func New(store storage.ReviewStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("reviews")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the fields for a new review.
type CreateInput struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Body   string `json:"body"`
	Source string `json:"source"`
	Status string `json:"status"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Author *string `json:"author"`
	Rating *int    `json:"rating"`
	Body   *string `json:"body"`
	Source *string `json:"source"`
	Status *string `json:"status"`
}

// Create validates input and persists a new review, draft by default.
func (s *Service) Create(ctx context.Context, in CreateInput) (review.Review, error) {
	if strings.TrimSpace(in.Author) == "" {
		return review.Review{}, apperr.Validation("author is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return review.Review{}, apperr.Validation("rating must be between 1 and 5")
	}
	status := review.StatusDraft
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := review.ParseStatus(in.Status)
		if err != nil {
			return review.Review{}, apperr.Validation(err.Error())
		}
		status = parsed
	}

	created, err := s.store.CreateReview(ctx, review.Review{
		Author: strings.TrimSpace(in.Author),
		Rating: in.Rating,
		Body:   in.Body,
		Source: strings.TrimSpace(in.Source),
		Status: status,
	})
	if err != nil {
		return review.Review{}, err
	}
	s.log.WithField("review_id", created.ID).Info("review created")
	return created, nil
}

// Get returns a single review.
func (s *Service) Get(ctx context.Context, id string) (review.Review, error) {
	if strings.TrimSpace(id) == "" {
		return review.Review{}, apperr.Validation("id is required")
	}
	return s.store.GetReview(ctx, id)
}

// List returns reviews matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter storage.ReviewFilter) ([]review.Review, error) {
	if filter.Status != "" {
		parsed, err := review.ParseStatus(string(filter.Status))
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		filter.Status = parsed
	}
	return s.store.ListReviews(ctx, filter)
}

// Update applies a partial patch.
func (s *Service) Update(ctx context.Context, id string, p Patch) (review.Review, error) {
	rv, err := s.store.GetReview(ctx, id)
	if err != nil {
		return review.Review{}, err
	}

	if p.Author != nil {
		if strings.TrimSpace(*p.Author) == "" {
			return review.Review{}, apperr.Validation("author must not be empty")
		}
		rv.Author = strings.TrimSpace(*p.Author)
	}
	if p.Rating != nil {
		if *p.Rating < 1 || *p.Rating > 5 {
			return review.Review{}, apperr.Validation("rating must be between 1 and 5")
		}
		rv.Rating = *p.Rating
	}
	if p.Body != nil {
		rv.Body = *p.Body
	}
	if p.Source != nil {
		rv.Source = strings.TrimSpace(*p.Source)
	}
	if p.Status != nil {
		status, err := review.ParseStatus(*p.Status)
		if err != nil {
			return review.Review{}, apperr.Validation(err.Error())
		}
		rv.Status = status
	}

	updated, err := s.store.UpdateReview(ctx, rv)
	if err != nil {
		return review.Review{}, err
	}
	s.log.WithField("review_id", id).Info("review updated")
	return updated, nil
}

// Delete permanently removes a review.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.log.WithField("review_id", id).Info("review deleted")
	return nil
}
