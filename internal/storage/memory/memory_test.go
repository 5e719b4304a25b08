package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage"
)

func newUser(email string) user.User {
	return user.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		Role:         user.RoleEditor,
		Active:       true,
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, newUser("alice@example.com"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", created)
	}

	got, err := store.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "alice@example.com" || got.Role != user.RoleEditor {
		t.Fatalf("unexpected user: %+v", got)
	}

	byEmail, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("get user by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("email lookup returned wrong user: %s", byEmail.ID)
	}
}

func TestUserEmailUniqueness(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, newUser("dup@example.com")); err != nil {
		t.Fatalf("create first user: %v", err)
	}
	_, err := store.CreateUser(ctx, newUser("DUP@example.com"))
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestDeleteThenRead(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, newUser("gone@example.com"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := store.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := store.GetUser(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := store.DeleteUser(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}

func TestTicketNumberSequence(t *testing.T) {
	store := New()
	ctx := context.Background()

	first, err := store.CreateTicket(ctx, ticket.Ticket{ID: uuid.NewString(), Subject: "a", Status: ticket.StatusOpen})
	if err != nil {
		t.Fatalf("create first ticket: %v", err)
	}
	second, err := store.CreateTicket(ctx, ticket.Ticket{ID: uuid.NewString(), Subject: "b", Status: ticket.StatusOpen})
	if err != nil {
		t.Fatalf("create second ticket: %v", err)
	}
	if first.Number == "" || first.Number == second.Number {
		t.Fatalf("ticket numbers must be unique, got %q and %q", first.Number, second.Number)
	}
}

func TestTicketAssigneeMustExist(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.CreateTicket(ctx, ticket.Ticket{
		ID:         uuid.NewString(),
		Subject:    "orphan",
		Status:     ticket.StatusOpen,
		AssigneeID: "no-such-user",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for unknown assignee, got %v", err)
	}
}

func TestTicketListFilters(t *testing.T) {
	store := New()
	ctx := context.Background()

	assignee, err := store.CreateUser(ctx, newUser("agent@example.com"))
	if err != nil {
		t.Fatalf("create assignee: %v", err)
	}

	mk := func(status ticket.Status, assigneeID string) {
		t.Helper()
		_, err := store.CreateTicket(ctx, ticket.Ticket{
			ID:         uuid.NewString(),
			Subject:    "s",
			Status:     status,
			AssigneeID: assigneeID,
		})
		if err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}
	mk(ticket.StatusOpen, "")
	mk(ticket.StatusOpen, assignee.ID)
	mk(ticket.StatusResolved, assignee.ID)

	open, err := store.ListTickets(ctx, storage.TicketFilter{Status: ticket.StatusOpen})
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 open tickets, got %d", len(open))
	}

	assigned, err := store.ListTickets(ctx, storage.TicketFilter{AssigneeID: assignee.ID})
	if err != nil {
		t.Fatalf("list assigned: %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assigned tickets, got %d", len(assigned))
	}

	limited, err := store.ListTickets(ctx, storage.TicketFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 ticket with limit, got %d", len(limited))
	}

	stats, err := store.TicketStats(ctx)
	if err != nil {
		t.Fatalf("ticket stats: %v", err)
	}
	if stats.Total != 3 || stats.Open != 2 || stats.Resolved != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateQuote(ctx, quote.Quote{
		ID:          uuid.NewString(),
		ContactName: "Bob",
		Email:       "bob@example.com",
		Status:      quote.StatusNew,
	})
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	time.Sleep(time.Millisecond)
	created.Status = quote.StatusContacted
	updated, err := store.UpdateQuote(ctx, created)
	if err != nil {
		t.Fatalf("update quote: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed on update: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed: %v", updated.UpdatedAt)
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.UpdateReview(ctx, review.Review{ID: uuid.NewString(), Author: "x", Rating: 3, Status: review.StatusDraft})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found updating missing review, got %v", err)
	}
}

func TestPageSlugKey(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreatePage(ctx, page.Page{Slug: "about", Title: "About", Published: true})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := store.CreatePage(ctx, page.Page{Slug: "about", Title: "Dup"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for duplicate slug, got %v", err)
	}

	got, err := store.GetPage(ctx, "about")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if got.Title != created.Title {
		t.Fatalf("unexpected page: %+v", got)
	}

	published := true
	list, err := store.ListPages(ctx, storage.PageFilter{Published: &published})
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 published page, got %d", len(list))
	}

	if err := store.DeletePage(ctx, "about"); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if _, err := store.GetPage(ctx, "about"); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	created, err := store.CreateTicket(ctx, ticket.Ticket{
		ID:       uuid.NewString(),
		Subject:  "isolation",
		Status:   ticket.StatusOpen,
		Metadata: map[string]interface{}{
			"k":      "v",
			"nested": map[string]interface{}{"depth": "one"},
		},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	created.Metadata["k"] = "mutated"
	created.Metadata["nested"].(map[string]interface{})["depth"] = "mutated"
	got, err := store.GetTicket(ctx, created.ID)
	if err != nil {
		t.Fatalf("get ticket: %v", err)
	}
	if got.Metadata["k"] != "v" {
		t.Fatalf("store state leaked through returned map: %v", got.Metadata)
	}
	if got.Metadata["nested"].(map[string]interface{})["depth"] != "one" {
		t.Fatalf("store state leaked through nested map: %v", got.Metadata)
	}
}

func TestNotFoundMatchesSentinel(t *testing.T) {
	store := New()
	_, err := store.GetQuote(context.Background(), "missing")
	if !errors.Is(err, apperr.NotFound("quote not found")) {
		t.Fatalf("not-found errors must compare by kind, got %v", err)
	}
}
