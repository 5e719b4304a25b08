package dispatch

import (
	"context"

	"github.com/solara-studio/backoffice/internal/app/services/pages"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/reviews"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	"github.com/solara-studio/backoffice/internal/app/services/users"
	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/remote"
	"github.com/solara-studio/backoffice/internal/storage"
)

// Users dispatches user operations. Either backend may be nil when the
// corresponding mode is never selected.
type Users struct {
	d      *Dispatcher
	local  *users.Service
	remote *remote.UserClient
}

// NewUsers builds the user facade.
func NewUsers(d *Dispatcher, local *users.Service, remoteClient *remote.UserClient) *Users {
	return &Users{d: d, local: local, remote: remoteClient}
}

func (u *Users) Create(ctx context.Context, in users.CreateInput) (user.User, error) {
	return Call(ctx, u.d, "users.create",
		func(ctx context.Context) (user.User, error) { return u.remote.Create(ctx, in) },
		func(ctx context.Context) (user.User, error) { return u.local.Create(ctx, in) })
}

func (u *Users) Get(ctx context.Context, id string) (user.User, error) {
	return Call(ctx, u.d, "users.get",
		func(ctx context.Context) (user.User, error) { return u.remote.Get(ctx, id) },
		func(ctx context.Context) (user.User, error) { return u.local.Get(ctx, id) })
}

func (u *Users) List(ctx context.Context) ([]user.User, error) {
	return Call(ctx, u.d, "users.list",
		func(ctx context.Context) ([]user.User, error) { return u.remote.List(ctx) },
		func(ctx context.Context) ([]user.User, error) { return u.local.List(ctx) })
}

func (u *Users) Update(ctx context.Context, id string, p users.Patch) (user.User, error) {
	return Call(ctx, u.d, "users.update",
		func(ctx context.Context) (user.User, error) { return u.remote.Update(ctx, id, p) },
		func(ctx context.Context) (user.User, error) { return u.local.Update(ctx, id, p) })
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return CallErr(ctx, u.d, "users.delete",
		func(ctx context.Context) error { return u.remote.Delete(ctx, id) },
		func(ctx context.Context) error { return u.local.Delete(ctx, id) })
}

// Tickets dispatches ticket operations.
type Tickets struct {
	d      *Dispatcher
	local  *tickets.Service
	remote *remote.TicketClient
}

// NewTickets builds the ticket facade.
func NewTickets(d *Dispatcher, local *tickets.Service, remoteClient *remote.TicketClient) *Tickets {
	return &Tickets{d: d, local: local, remote: remoteClient}
}

func (t *Tickets) Create(ctx context.Context, in tickets.CreateInput) (ticket.Ticket, error) {
	return Call(ctx, t.d, "tickets.create",
		func(ctx context.Context) (ticket.Ticket, error) { return t.remote.Create(ctx, in) },
		func(ctx context.Context) (ticket.Ticket, error) { return t.local.Create(ctx, in) })
}

func (t *Tickets) Get(ctx context.Context, id string) (ticket.Ticket, error) {
	return Call(ctx, t.d, "tickets.get",
		func(ctx context.Context) (ticket.Ticket, error) { return t.remote.Get(ctx, id) },
		func(ctx context.Context) (ticket.Ticket, error) { return t.local.Get(ctx, id) })
}

func (t *Tickets) List(ctx context.Context, filter storage.TicketFilter) ([]ticket.Ticket, error) {
	return Call(ctx, t.d, "tickets.list",
		func(ctx context.Context) ([]ticket.Ticket, error) { return t.remote.List(ctx, filter) },
		func(ctx context.Context) ([]ticket.Ticket, error) { return t.local.List(ctx, filter) })
}

func (t *Tickets) Update(ctx context.Context, id string, p tickets.Patch) (ticket.Ticket, error) {
	return Call(ctx, t.d, "tickets.update",
		func(ctx context.Context) (ticket.Ticket, error) { return t.remote.Update(ctx, id, p) },
		func(ctx context.Context) (ticket.Ticket, error) { return t.local.Update(ctx, id, p) })
}

func (t *Tickets) Delete(ctx context.Context, id string) error {
	return CallErr(ctx, t.d, "tickets.delete",
		func(ctx context.Context) error { return t.remote.Delete(ctx, id) },
		func(ctx context.Context) error { return t.local.Delete(ctx, id) })
}

func (t *Tickets) Stats(ctx context.Context) (ticket.Stats, error) {
	return Call(ctx, t.d, "tickets.stats",
		func(ctx context.Context) (ticket.Stats, error) { return t.remote.Stats(ctx) },
		func(ctx context.Context) (ticket.Stats, error) { return t.local.Stats(ctx) })
}

// Quotes dispatches quote operations.
type Quotes struct {
	d      *Dispatcher
	local  *quotes.Service
	remote *remote.QuoteClient
}

// NewQuotes builds the quote facade.
func NewQuotes(d *Dispatcher, local *quotes.Service, remoteClient *remote.QuoteClient) *Quotes {
	return &Quotes{d: d, local: local, remote: remoteClient}
}

func (q *Quotes) Create(ctx context.Context, in quotes.CreateInput) (quote.Quote, error) {
	return Call(ctx, q.d, "quotes.create",
		func(ctx context.Context) (quote.Quote, error) { return q.remote.Create(ctx, in) },
		func(ctx context.Context) (quote.Quote, error) { return q.local.Create(ctx, in) })
}

func (q *Quotes) Get(ctx context.Context, id string) (quote.Quote, error) {
	return Call(ctx, q.d, "quotes.get",
		func(ctx context.Context) (quote.Quote, error) { return q.remote.Get(ctx, id) },
		func(ctx context.Context) (quote.Quote, error) { return q.local.Get(ctx, id) })
}

func (q *Quotes) List(ctx context.Context, filter storage.QuoteFilter) ([]quote.Quote, error) {
	return Call(ctx, q.d, "quotes.list",
		func(ctx context.Context) ([]quote.Quote, error) { return q.remote.List(ctx, filter) },
		func(ctx context.Context) ([]quote.Quote, error) { return q.local.List(ctx, filter) })
}

func (q *Quotes) Update(ctx context.Context, id string, p quotes.Patch) (quote.Quote, error) {
	return Call(ctx, q.d, "quotes.update",
		func(ctx context.Context) (quote.Quote, error) { return q.remote.Update(ctx, id, p) },
		func(ctx context.Context) (quote.Quote, error) { return q.local.Update(ctx, id, p) })
}

func (q *Quotes) Delete(ctx context.Context, id string) error {
	return CallErr(ctx, q.d, "quotes.delete",
		func(ctx context.Context) error { return q.remote.Delete(ctx, id) },
		func(ctx context.Context) error { return q.local.Delete(ctx, id) })
}

func (q *Quotes) Stats(ctx context.Context) (quote.Stats, error) {
	return Call(ctx, q.d, "quotes.stats",
		func(ctx context.Context) (quote.Stats, error) { return q.remote.Stats(ctx) },
		func(ctx context.Context) (quote.Stats, error) { return q.local.Stats(ctx) })
}

// Reviews dispatches review operations.
type Reviews struct {
	d      *Dispatcher
	local  *reviews.Service
	remote *remote.ReviewClient
}

// NewReviews builds the review facade.
func NewReviews(d *Dispatcher, local *reviews.Service, remoteClient *remote.ReviewClient) *Reviews {
	return &Reviews{d: d, local: local, remote: remoteClient}
}

func (r *Reviews) Create(ctx context.Context, in reviews.CreateInput) (review.Review, error) {
	return Call(ctx, r.d, "reviews.create",
		func(ctx context.Context) (review.Review, error) { return r.remote.Create(ctx, in) },
		func(ctx context.Context) (review.Review, error) { return r.local.Create(ctx, in) })
}

func (r *Reviews) Get(ctx context.Context, id string) (review.Review, error) {
	return Call(ctx, r.d, "reviews.get",
		func(ctx context.Context) (review.Review, error) { return r.remote.Get(ctx, id) },
		func(ctx context.Context) (review.Review, error) { return r.local.Get(ctx, id) })
}

func (r *Reviews) List(ctx context.Context, filter storage.ReviewFilter) ([]review.Review, error) {
	return Call(ctx, r.d, "reviews.list",
		func(ctx context.Context) ([]review.Review, error) { return r.remote.List(ctx, filter) },
		func(ctx context.Context) ([]review.Review, error) { return r.local.List(ctx, filter) })
}

func (r *Reviews) Update(ctx context.Context, id string, p reviews.Patch) (review.Review, error) {
	return Call(ctx, r.d, "reviews.update",
		func(ctx context.Context) (review.Review, error) { return r.remote.Update(ctx, id, p) },
		func(ctx context.Context) (review.Review, error) { return r.local.Update(ctx, id, p) })
}

func (r *Reviews) Delete(ctx context.Context, id string) error {
	return CallErr(ctx, r.d, "reviews.delete",
		func(ctx context.Context) error { return r.remote.Delete(ctx, id) },
		func(ctx context.Context) error { return r.local.Delete(ctx, id) })
}

// Pages dispatches page operations, keyed on the slug.
type Pages struct {
	d      *Dispatcher
	local  *pages.Service
	remote *remote.PageClient
}

// NewPages builds the page facade.
func NewPages(d *Dispatcher, local *pages.Service, remoteClient *remote.PageClient) *Pages {
	return &Pages{d: d, local: local, remote: remoteClient}
}

func (p *Pages) Create(ctx context.Context, in pages.CreateInput) (page.Page, error) {
	return Call(ctx, p.d, "pages.create",
		func(ctx context.Context) (page.Page, error) { return p.remote.Create(ctx, in) },
		func(ctx context.Context) (page.Page, error) { return p.local.Create(ctx, in) })
}

func (p *Pages) Get(ctx context.Context, slug string) (page.Page, error) {
	return Call(ctx, p.d, "pages.get",
		func(ctx context.Context) (page.Page, error) { return p.remote.Get(ctx, slug) },
		func(ctx context.Context) (page.Page, error) { return p.local.Get(ctx, slug) })
}

func (p *Pages) List(ctx context.Context, filter storage.PageFilter) ([]page.Page, error) {
	return Call(ctx, p.d, "pages.list",
		func(ctx context.Context) ([]page.Page, error) { return p.remote.List(ctx, filter) },
		func(ctx context.Context) ([]page.Page, error) { return p.local.List(ctx, filter) })
}

func (p *Pages) Update(ctx context.Context, slug string, patch pages.Patch) (page.Page, error) {
	return Call(ctx, p.d, "pages.update",
		func(ctx context.Context) (page.Page, error) { return p.remote.Update(ctx, slug, patch) },
		func(ctx context.Context) (page.Page, error) { return p.local.Update(ctx, slug, patch) })
}

func (p *Pages) Delete(ctx context.Context, slug string) error {
	return CallErr(ctx, p.d, "pages.delete",
		func(ctx context.Context) error { return p.remote.Delete(ctx, slug) },
		func(ctx context.Context) error { return p.local.Delete(ctx, slug) })
}
