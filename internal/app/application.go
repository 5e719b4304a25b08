// Package app wires the back-office services together.
package app

import (
	"context"
	"time"

	"github.com/solara-studio/backoffice/internal/app/services/pages"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/reviews"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	"github.com/solara-studio/backoffice/internal/app/services/users"
	"github.com/solara-studio/backoffice/internal/auth"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/internal/storage/memory"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users   storage.UserStore
	Tickets storage.TicketStore
	Quotes  storage.QuoteStore
	Reviews storage.ReviewStore
	Pages   storage.PageStore
}

// Options carries application-level settings.
type Options struct {
	TokenSecret string
	TokenTTL    time.Duration

	// AdminEmail/AdminPassword seed the first admin account when the user
	// collection is empty.
	AdminEmail    string
	AdminPassword string
}

// Application ties domain services together.
type Application struct {
	log *logger.Logger

	Auth    *auth.Service
	Users   *users.Service
	Tickets *tickets.Service
	Quotes  *quotes.Service
	Reviews *reviews.Service
	Pages   *pages.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Tickets == nil {
		stores.Tickets = mem
	}
	if stores.Quotes == nil {
		stores.Quotes = mem
	}
	if stores.Reviews == nil {
		stores.Reviews = mem
	}
	if stores.Pages == nil {
		stores.Pages = mem
	}

	authService, err := auth.New(stores.Users, opts.TokenSecret, opts.TokenTTL, log)
	if err != nil {
		return nil, err
	}

	return &Application{
		log:     log,
		Auth:    authService,
		Users:   users.New(stores.Users, log),
		Tickets: tickets.New(stores.Tickets, stores.Users, log),
		Quotes:  quotes.New(stores.Quotes, log),
		Reviews: reviews.New(stores.Reviews, log),
		Pages:   pages.New(stores.Pages, log),
	}, nil
}

// Bootstrap runs startup tasks: currently seeding the first admin account.
func (a *Application) Bootstrap(ctx context.Context, opts Options) error {
	if opts.AdminEmail == "" && opts.AdminPassword == "" {
		return nil
	}
	return a.Users.EnsureAdmin(ctx, opts.AdminEmail, opts.AdminPassword)
}
