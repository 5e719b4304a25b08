// Package storage defines the persistence contracts for every back-office
// resource. Implementations must return the shared error taxonomy: the
// not-found kind when an identifier does not resolve and the validation
// kind when a uniqueness constraint is violated.
package storage

import (
	"context"

	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
)

// TicketFilter narrows ticket listings. Zero values mean "no constraint".
type TicketFilter struct {
	Status     ticket.Status
	AssigneeID string
	Limit      int
}

// QuoteFilter narrows quote listings.
type QuoteFilter struct {
	Status quote.Status
	Limit  int
}

// ReviewFilter narrows review listings.
type ReviewFilter struct {
	Status review.Status
	Limit  int
}

// PageFilter narrows page listings.
type PageFilter struct {
	Published *bool
	Limit     int
}

// UserStore persists back-office accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)
}

// TicketStore persists support tickets.
type TicketStore interface {
	CreateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error)
	UpdateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error)
	GetTicket(ctx context.Context, id string) (ticket.Ticket, error)
	ListTickets(ctx context.Context, filter TicketFilter) ([]ticket.Ticket, error)
	DeleteTicket(ctx context.Context, id string) error
	TicketStats(ctx context.Context) (ticket.Stats, error)
}

// QuoteStore persists quote requests.
type QuoteStore interface {
	CreateQuote(ctx context.Context, q quote.Quote) (quote.Quote, error)
	UpdateQuote(ctx context.Context, q quote.Quote) (quote.Quote, error)
	GetQuote(ctx context.Context, id string) (quote.Quote, error)
	ListQuotes(ctx context.Context, filter QuoteFilter) ([]quote.Quote, error)
	DeleteQuote(ctx context.Context, id string) error
	QuoteStats(ctx context.Context) (quote.Stats, error)
}

// ReviewStore persists testimonials.
type ReviewStore interface {
	CreateReview(ctx context.Context, rv review.Review) (review.Review, error)
	UpdateReview(ctx context.Context, rv review.Review) (review.Review, error)
	GetReview(ctx context.Context, id string) (review.Review, error)
	ListReviews(ctx context.Context, filter ReviewFilter) ([]review.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// PageStore persists site content keyed by slug.
type PageStore interface {
	CreatePage(ctx context.Context, p page.Page) (page.Page, error)
	UpdatePage(ctx context.Context, p page.Page) (page.Page, error)
	GetPage(ctx context.Context, slug string) (page.Page, error)
	ListPages(ctx context.Context, filter PageFilter) ([]page.Page, error)
	DeletePage(ctx context.Context, slug string) error
}
