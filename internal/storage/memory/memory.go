// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/storage"
)

// Store holds every collection behind one mutex. Acquisition is serialized;
// the operations themselves are cheap map work.
type Store struct {
	mu         sync.RWMutex
	nextNumber int64
	users      map[string]user.User
	tickets    map[string]ticket.Ticket
	quotes     map[string]quote.Quote
	reviews    map[string]review.Review
	pages      map[string]page.Page
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.TicketStore = (*Store)(nil)
var _ storage.QuoteStore = (*Store)(nil)
var _ storage.ReviewStore = (*Store)(nil)
var _ storage.PageStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextNumber: 1000,
		users:      make(map[string]user.User),
		tickets:    make(map[string]ticket.Ticket),
		quotes:     make(map[string]quote.Quote),
		reviews:    make(map[string]review.Review),
		pages:      make(map[string]page.Page),
	}
}

func (s *Store) nextTicketNumberLocked() string {
	s.nextNumber++
	return fmt.Sprintf("TKT-%d", s.nextNumber)
}

// UserStore implementation ----------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.User{}, apperr.Validation(fmt.Sprintf("email %s already registered", u.Email))
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	} else if _, exists := s.users[u.ID]; exists {
		return user.User{}, apperr.Validation(fmt.Sprintf("user %s already exists", u.ID))
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.users[u.ID]
	if !ok {
		return user.User{}, apperr.NotFound(fmt.Sprintf("user %s not found", u.ID))
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return user.User{}, apperr.Validation(fmt.Sprintf("email %s already registered", u.Email))
		}
	}

	u.CreatedAt = original.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return user.User{}, apperr.NotFound(fmt.Sprintf("user %s not found", id))
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, apperr.NotFound(fmt.Sprintf("user with email %s not found", email))
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("user %s not found", id))
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// TicketStore implementation --------------------------------------------------

func (s *Store) CreateTicket(_ context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	} else if _, exists := s.tickets[t.ID]; exists {
		return ticket.Ticket{}, apperr.Validation(fmt.Sprintf("ticket %s already exists", t.ID))
	}
	if t.Number == "" {
		t.Number = s.nextTicketNumberLocked()
	} else {
		for _, existing := range s.tickets {
			if existing.Number == t.Number {
				return ticket.Ticket{}, apperr.Validation(fmt.Sprintf("ticket number %s already in use", t.Number))
			}
		}
	}
	if t.AssigneeID != "" {
		if _, ok := s.users[t.AssigneeID]; !ok {
			return ticket.Ticket{}, apperr.Validation(fmt.Sprintf("assignee %s does not exist", t.AssigneeID))
		}
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Metadata = cloneMap(t.Metadata)

	s.tickets[t.ID] = t
	return cloneTicket(t), nil
}

func (s *Store) UpdateTicket(_ context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.tickets[t.ID]
	if !ok {
		return ticket.Ticket{}, apperr.NotFound(fmt.Sprintf("ticket %s not found", t.ID))
	}
	if t.AssigneeID != "" {
		if _, ok := s.users[t.AssigneeID]; !ok {
			return ticket.Ticket{}, apperr.Validation(fmt.Sprintf("assignee %s does not exist", t.AssigneeID))
		}
	}

	t.Number = original.Number
	t.CreatedAt = original.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	t.Metadata = cloneMap(t.Metadata)

	s.tickets[t.ID] = t
	return cloneTicket(t), nil
}

func (s *Store) GetTicket(_ context.Context, id string) (ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[id]
	if !ok {
		return ticket.Ticket{}, apperr.NotFound(fmt.Sprintf("ticket %s not found", id))
	}
	return cloneTicket(t), nil
}

func (s *Store) ListTickets(_ context.Context, filter storage.TicketFilter) ([]ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ticket.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssigneeID != "" && t.AssigneeID != filter.AssigneeID {
			continue
		}
		out = append(out, cloneTicket(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) DeleteTicket(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("ticket %s not found", id))
	}
	delete(s.tickets, id)
	return nil
}

func (s *Store) TicketStats(_ context.Context) (ticket.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats ticket.Stats
	for _, t := range s.tickets {
		stats.Total++
		switch t.Status {
		case ticket.StatusOpen:
			stats.Open++
		case ticket.StatusInProgress:
			stats.InProgress++
		case ticket.StatusResolved:
			stats.Resolved++
		case ticket.StatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

// QuoteStore implementation ---------------------------------------------------

func (s *Store) CreateQuote(_ context.Context, q quote.Quote) (quote.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	} else if _, exists := s.quotes[q.ID]; exists {
		return quote.Quote{}, apperr.Validation(fmt.Sprintf("quote %s already exists", q.ID))
	}

	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	s.quotes[q.ID] = q
	return q, nil
}

func (s *Store) UpdateQuote(_ context.Context, q quote.Quote) (quote.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.quotes[q.ID]
	if !ok {
		return quote.Quote{}, apperr.NotFound(fmt.Sprintf("quote %s not found", q.ID))
	}

	q.CreatedAt = original.CreatedAt
	q.UpdatedAt = time.Now().UTC()
	s.quotes[q.ID] = q
	return q, nil
}

func (s *Store) GetQuote(_ context.Context, id string) (quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[id]
	if !ok {
		return quote.Quote{}, apperr.NotFound(fmt.Sprintf("quote %s not found", id))
	}
	return q, nil
}

func (s *Store) ListQuotes(_ context.Context, filter storage.QuoteFilter) ([]quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]quote.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) DeleteQuote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("quote %s not found", id))
	}
	delete(s.quotes, id)
	return nil
}

func (s *Store) QuoteStats(_ context.Context) (quote.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats quote.Stats
	for _, q := range s.quotes {
		stats.Total++
		switch q.Status {
		case quote.StatusNew:
			stats.New++
		case quote.StatusContacted:
			stats.Contacted++
		case quote.StatusAccepted:
			stats.Accepted++
		case quote.StatusDeclined:
			stats.Declined++
		}
	}
	return stats, nil
}

// ReviewStore implementation --------------------------------------------------

func (s *Store) CreateReview(_ context.Context, rv review.Review) (review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	} else if _, exists := s.reviews[rv.ID]; exists {
		return review.Review{}, apperr.Validation(fmt.Sprintf("review %s already exists", rv.ID))
	}

	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	s.reviews[rv.ID] = rv
	return rv, nil
}

func (s *Store) UpdateReview(_ context.Context, rv review.Review) (review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.reviews[rv.ID]
	if !ok {
		return review.Review{}, apperr.NotFound(fmt.Sprintf("review %s not found", rv.ID))
	}

	rv.CreatedAt = original.CreatedAt
	rv.UpdatedAt = time.Now().UTC()
	s.reviews[rv.ID] = rv
	return rv, nil
}

func (s *Store) GetReview(_ context.Context, id string) (review.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rv, ok := s.reviews[id]
	if !ok {
		return review.Review{}, apperr.NotFound(fmt.Sprintf("review %s not found", id))
	}
	return rv, nil
}

func (s *Store) ListReviews(_ context.Context, filter storage.ReviewFilter) ([]review.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]review.Review, 0, len(s.reviews))
	for _, rv := range s.reviews {
		if filter.Status != "" && rv.Status != filter.Status {
			continue
		}
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) DeleteReview(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return apperr.NotFound(fmt.Sprintf("review %s not found", id))
	}
	delete(s.reviews, id)
	return nil
}

// PageStore implementation ----------------------------------------------------

func (s *Store) CreatePage(_ context.Context, p page.Page) (page.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	if _, exists := s.pages[p.Slug]; exists {
		return page.Page{}, apperr.Validation(fmt.Sprintf("page %s already exists", p.Slug))
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Metadata = cloneMap(p.Metadata)

	s.pages[p.Slug] = p
	return clonePage(p), nil
}

func (s *Store) UpdatePage(_ context.Context, p page.Page) (page.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	original, ok := s.pages[p.Slug]
	if !ok {
		return page.Page{}, apperr.NotFound(fmt.Sprintf("page %s not found", p.Slug))
	}

	p.CreatedAt = original.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.Metadata = cloneMap(p.Metadata)

	s.pages[p.Slug] = p
	return clonePage(p), nil
}

func (s *Store) GetPage(_ context.Context, slug string) (page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pages[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return page.Page{}, apperr.NotFound(fmt.Sprintf("page %s not found", slug))
	}
	return clonePage(p), nil
}

func (s *Store) ListPages(_ context.Context, filter storage.PageFilter) ([]page.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]page.Page, 0, len(s.pages))
	for _, p := range s.pages {
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		out = append(out, clonePage(p))
	}
	// Pages have an explicit ordering field in the UI sense: the slug.
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) DeletePage(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug = strings.ToLower(strings.TrimSpace(slug))
	if _, ok := s.pages[slug]; !ok {
		return apperr.NotFound(fmt.Sprintf("page %s not found", slug))
	}
	delete(s.pages, slug)
	return nil
}

// helpers ---------------------------------------------------------------------

func cloneMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the nested shapes JSON decoding produces.
func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneTicket(t ticket.Ticket) ticket.Ticket {
	t.Metadata = cloneMap(t.Metadata)
	return t
}

func clonePage(p page.Page) page.Page {
	p.Metadata = cloneMap(p.Metadata)
	return p
}
