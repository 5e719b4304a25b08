package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/solara-studio/backoffice/internal/app/services/pages"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/reviews"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	"github.com/solara-studio/backoffice/internal/app/services/users"
	"github.com/solara-studio/backoffice/internal/auth"
	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/storage"
)

// Login exchanges credentials for a token at the gateway.
func (c *Client) Login(ctx context.Context, email, password string) (auth.LoginResult, error) {
	var result auth.LoginResult
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, body, &result)
	return result, err
}

func idQuery(id string) url.Values {
	return url.Values{"id": []string{id}}
}

// users ----------------------------------------------------------------------

type UserClient struct{ c *Client }

func (u *UserClient) Create(ctx context.Context, in users.CreateInput) (user.User, error) {
	var out user.User
	err := u.c.do(ctx, http.MethodPost, "/api/admin/users", nil, in, &out)
	return out, err
}

func (u *UserClient) Get(ctx context.Context, id string) (user.User, error) {
	var out user.User
	err := u.c.do(ctx, http.MethodGet, "/api/admin/users", idQuery(id), nil, &out)
	return out, err
}

func (u *UserClient) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	err := u.c.do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out)
	return out, err
}

func (u *UserClient) Update(ctx context.Context, id string, p users.Patch) (user.User, error) {
	var out user.User
	err := u.c.do(ctx, http.MethodPut, "/api/admin/users", idQuery(id), p, &out)
	return out, err
}

func (u *UserClient) Delete(ctx context.Context, id string) error {
	return u.c.do(ctx, http.MethodDelete, "/api/admin/users", idQuery(id), nil, nil)
}

// tickets --------------------------------------------------------------------

type TicketClient struct{ c *Client }

func (t *TicketClient) Create(ctx context.Context, in tickets.CreateInput) (ticket.Ticket, error) {
	var out ticket.Ticket
	err := t.c.do(ctx, http.MethodPost, "/api/admin/tickets", nil, in, &out)
	return out, err
}

func (t *TicketClient) Get(ctx context.Context, id string) (ticket.Ticket, error) {
	var out ticket.Ticket
	err := t.c.do(ctx, http.MethodGet, "/api/admin/tickets", idQuery(id), nil, &out)
	return out, err
}

func (t *TicketClient) List(ctx context.Context, filter storage.TicketFilter) ([]ticket.Ticket, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.AssigneeID != "" {
		query.Set("assignee_id", filter.AssigneeID)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	var out []ticket.Ticket
	err := t.c.do(ctx, http.MethodGet, "/api/admin/tickets", query, nil, &out)
	return out, err
}

func (t *TicketClient) Update(ctx context.Context, id string, p tickets.Patch) (ticket.Ticket, error) {
	var out ticket.Ticket
	err := t.c.do(ctx, http.MethodPut, "/api/admin/tickets", idQuery(id), p, &out)
	return out, err
}

func (t *TicketClient) Delete(ctx context.Context, id string) error {
	return t.c.do(ctx, http.MethodDelete, "/api/admin/tickets", idQuery(id), nil, nil)
}

func (t *TicketClient) Stats(ctx context.Context) (ticket.Stats, error) {
	var out ticket.Stats
	query := url.Values{"stats": []string{"true"}}
	err := t.c.do(ctx, http.MethodGet, "/api/admin/tickets", query, nil, &out)
	return out, err
}

// quotes ---------------------------------------------------------------------

type QuoteClient struct{ c *Client }

func (q *QuoteClient) Create(ctx context.Context, in quotes.CreateInput) (quote.Quote, error) {
	var out quote.Quote
	err := q.c.do(ctx, http.MethodPost, "/api/admin/quotes", nil, in, &out)
	return out, err
}

func (q *QuoteClient) Get(ctx context.Context, id string) (quote.Quote, error) {
	var out quote.Quote
	err := q.c.do(ctx, http.MethodGet, "/api/admin/quotes", idQuery(id), nil, &out)
	return out, err
}

func (q *QuoteClient) List(ctx context.Context, filter storage.QuoteFilter) ([]quote.Quote, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	var out []quote.Quote
	err := q.c.do(ctx, http.MethodGet, "/api/admin/quotes", query, nil, &out)
	return out, err
}

func (q *QuoteClient) Update(ctx context.Context, id string, p quotes.Patch) (quote.Quote, error) {
	var out quote.Quote
	err := q.c.do(ctx, http.MethodPut, "/api/admin/quotes", idQuery(id), p, &out)
	return out, err
}

func (q *QuoteClient) Delete(ctx context.Context, id string) error {
	return q.c.do(ctx, http.MethodDelete, "/api/admin/quotes", idQuery(id), nil, nil)
}

func (q *QuoteClient) Stats(ctx context.Context) (quote.Stats, error) {
	var out quote.Stats
	query := url.Values{"stats": []string{"true"}}
	err := q.c.do(ctx, http.MethodGet, "/api/admin/quotes", query, nil, &out)
	return out, err
}

// reviews --------------------------------------------------------------------

type ReviewClient struct{ c *Client }

func (r *ReviewClient) Create(ctx context.Context, in reviews.CreateInput) (review.Review, error) {
	var out review.Review
	err := r.c.do(ctx, http.MethodPost, "/api/admin/reviews", nil, in, &out)
	return out, err
}

func (r *ReviewClient) Get(ctx context.Context, id string) (review.Review, error) {
	var out review.Review
	err := r.c.do(ctx, http.MethodGet, "/api/admin/reviews", idQuery(id), nil, &out)
	return out, err
}

func (r *ReviewClient) List(ctx context.Context, filter storage.ReviewFilter) ([]review.Review, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	var out []review.Review
	err := r.c.do(ctx, http.MethodGet, "/api/admin/reviews", query, nil, &out)
	return out, err
}

func (r *ReviewClient) Update(ctx context.Context, id string, p reviews.Patch) (review.Review, error) {
	var out review.Review
	err := r.c.do(ctx, http.MethodPut, "/api/admin/reviews", idQuery(id), p, &out)
	return out, err
}

func (r *ReviewClient) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/api/admin/reviews", idQuery(id), nil, nil)
}

// pages ----------------------------------------------------------------------

type PageClient struct{ c *Client }

func slugQuery(slug string) url.Values {
	return url.Values{"slug": []string{slug}}
}

func (p *PageClient) Create(ctx context.Context, in pages.CreateInput) (page.Page, error) {
	var out page.Page
	err := p.c.do(ctx, http.MethodPost, "/api/admin/pages", nil, in, &out)
	return out, err
}

func (p *PageClient) Get(ctx context.Context, slug string) (page.Page, error) {
	var out page.Page
	err := p.c.do(ctx, http.MethodGet, "/api/admin/pages", slugQuery(slug), nil, &out)
	return out, err
}

func (p *PageClient) List(ctx context.Context, filter storage.PageFilter) ([]page.Page, error) {
	query := url.Values{}
	if filter.Published != nil {
		query.Set("published", strconv.FormatBool(*filter.Published))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	var out []page.Page
	err := p.c.do(ctx, http.MethodGet, "/api/admin/pages", query, nil, &out)
	return out, err
}

func (p *PageClient) Update(ctx context.Context, slug string, patch pages.Patch) (page.Page, error) {
	var out page.Page
	err := p.c.do(ctx, http.MethodPut, "/api/admin/pages", slugQuery(slug), patch, &out)
	return out, err
}

func (p *PageClient) Delete(ctx context.Context, slug string) error {
	return p.c.do(ctx, http.MethodDelete, "/api/admin/pages", slugQuery(slug), nil, nil)
}
