// Package pages manages site content keyed by slug.
package pages

import (
	"context"
	"regexp"
	"strings"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service manages content pages.
type Service struct {
	store storage.PageStore
	log   *logger.Logger
}

// New constructs a page service.
func New(store storage.PageStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("pages")
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the fields for a new page.
type CreateInput struct {
	Slug        string                 `json:"slug"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Description string                 `json:"description"`
	Published   bool                   `json:"published"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Patch carries a partial update; nil fields are left untouched. The slug
// is the identity and cannot be patched.
type Patch struct {
	Title       *string                `json:"title"`
	Body        *string                `json:"body"`
	Description *string                `json:"description"`
	Published   *bool                  `json:"published"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Create validates input and persists a new page.
func (s *Service) Create(ctx context.Context, in CreateInput) (page.Page, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if !slugPattern.MatchString(slug) {
		return page.Page{}, apperr.Validation("slug must be lowercase letters, digits and hyphens")
	}
	if strings.TrimSpace(in.Title) == "" {
		return page.Page{}, apperr.Validation("title is required")
	}

	created, err := s.store.CreatePage(ctx, page.Page{
		Slug:        slug,
		Title:       strings.TrimSpace(in.Title),
		Body:        in.Body,
		Description: strings.TrimSpace(in.Description),
		Published:   in.Published,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return page.Page{}, err
	}
	s.log.WithField("slug", created.Slug).Info("page created")
	return created, nil
}

// Get returns a single page by slug.
func (s *Service) Get(ctx context.Context, slug string) (page.Page, error) {
	if strings.TrimSpace(slug) == "" {
		return page.Page{}, apperr.Validation("slug is required")
	}
	return s.store.GetPage(ctx, slug)
}

// List returns pages matching the filter, ordered by slug.
func (s *Service) List(ctx context.Context, filter storage.PageFilter) ([]page.Page, error) {
	return s.store.ListPages(ctx, filter)
}

// Update applies a partial patch to the page named by slug.
func (s *Service) Update(ctx context.Context, slug string, p Patch) (page.Page, error) {
	pg, err := s.store.GetPage(ctx, slug)
	if err != nil {
		return page.Page{}, err
	}

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return page.Page{}, apperr.Validation("title must not be empty")
		}
		pg.Title = strings.TrimSpace(*p.Title)
	}
	if p.Body != nil {
		pg.Body = *p.Body
	}
	if p.Description != nil {
		pg.Description = strings.TrimSpace(*p.Description)
	}
	if p.Published != nil {
		pg.Published = *p.Published
	}
	if p.Metadata != nil {
		pg.Metadata = p.Metadata
	}

	updated, err := s.store.UpdatePage(ctx, pg)
	if err != nil {
		return page.Page{}, err
	}
	s.log.WithField("slug", slug).Info("page updated")
	return updated, nil
}

// Delete permanently removes a page.
func (s *Service) Delete(ctx context.Context, slug string) error {
	if err := s.store.DeletePage(ctx, slug); err != nil {
		return err
	}
	s.log.WithField("slug", slug).Info("page deleted")
	return nil
}
