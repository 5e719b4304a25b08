package remote

import (
	"context"
	"net/http/httptest"
	"testing"

	app "github.com/solara-studio/backoffice/internal/app"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/httpapi"
	"github.com/solara-studio/backoffice/internal/storage"
)

// tokenHolder is a mutable token source for tests.
type tokenHolder struct{ token string }

func (h *tokenHolder) Token() string { return h.token }

func newGateway(t *testing.T) (*Client, *tokenHolder, *app.Application) {
	t.Helper()

	opts := app.Options{
		TokenSecret:   "test-secret",
		AdminEmail:    "admin@example.com",
		AdminPassword: "longenough",
	}
	application, err := app.New(app.Stores{}, opts, nil)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	if err := application.Bootstrap(context.Background(), opts); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	server := httptest.NewServer(httpapi.NewHandler(application, httpapi.Config{}, nil))
	t.Cleanup(server.Close)

	holder := &tokenHolder{}
	client, err := New(Config{BaseURL: server.URL, Tokens: holder})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, holder, application
}

func login(t *testing.T, client *Client, holder *tokenHolder) {
	t.Helper()
	result, err := client.Login(context.Background(), "admin@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	holder.token = result.Token
}

func TestLoginAndAuthenticatedCall(t *testing.T) {
	client, holder, _ := newGateway(t)
	ctx := context.Background()

	// Before login every resource call is rejected.
	if _, err := client.Tickets().List(ctx, storage.TicketFilter{}); !apperr.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized before login, got %v", err)
	}

	login(t, client, holder)

	list, err := client.Tickets().List(ctx, storage.TicketFilter{})
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty listing, got %d", len(list))
	}
}

func TestRemoteMatchesLocalSemantics(t *testing.T) {
	client, holder, application := newGateway(t)
	ctx := context.Background()
	login(t, client, holder)

	created, err := client.Tickets().Create(ctx, tickets.CreateInput{
		Subject:        "remote ticket",
		RequesterEmail: "visitor@example.com",
	})
	if err != nil {
		t.Fatalf("create over gateway: %v", err)
	}

	// The record is visible through the local services backing the gateway.
	direct, err := application.Tickets.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get through local service: %v", err)
	}
	if direct.Subject != created.Subject || direct.Number != created.Number {
		t.Fatalf("remote and local views differ: %+v vs %+v", created, direct)
	}

	status := "closed"
	updated, err := client.Tickets().Update(ctx, created.ID, tickets.Patch{Status: &status})
	if err != nil {
		t.Fatalf("update over gateway: %v", err)
	}
	if string(updated.Status) != "closed" {
		t.Fatalf("status not applied: %q", updated.Status)
	}

	if err := client.Tickets().Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete over gateway: %v", err)
	}
	if _, err := application.Tickets.Get(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found locally after remote delete, got %v", err)
	}
}

func TestErrorTaxonomySurvivesTransport(t *testing.T) {
	client, holder, _ := newGateway(t)
	ctx := context.Background()
	login(t, client, holder)

	if _, err := client.Quotes().Get(ctx, "missing"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found across the wire, got %v", err)
	}

	_, err := client.Quotes().Create(ctx, quotes.CreateInput{})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error across the wire, got %v", err)
	}
}

func TestUnreachableGatewayIsInternal(t *testing.T) {
	client, err := New(Config{BaseURL: "http://127.0.0.1:1", Tokens: StaticToken("x")})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Tickets().List(context.Background(), storage.TicketFilter{})
	if err == nil {
		t.Fatal("expected error for unreachable gateway")
	}
	if apperr.IsNotFound(err) || apperr.IsValidation(err) || apperr.IsUnauthorized(err) {
		t.Fatalf("transport failure must map to internal, got %v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
