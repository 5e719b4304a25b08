package tickets

import (
	"context"
	"testing"

	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/internal/storage/memory"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return New(store, store, nil), store
}

func seedAssignee(t *testing.T, store *memory.Store) user.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), user.User{
		Email:        "agent@example.com",
		Name:         "Agent",
		PasswordHash: "hash",
		Role:         user.RoleEditor,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed assignee: %v", err)
	}
	return u
}

func TestCreateOpensTicket(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Subject:        "site is down",
		Body:           "details",
		RequesterEmail: "visitor@example.com",
		Metadata:       map[string]interface{}{"browser": "firefox"},
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if created.Status != ticket.StatusOpen {
		t.Fatalf("new ticket must be open, got %q", created.Status)
	}
	if created.ID == "" || created.Number == "" {
		t.Fatalf("id or number missing: %+v", created)
	}
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(context.Background(), CreateInput{
		Subject:        "s",
		RequesterEmail: "v@example.com",
		AssigneeID:     "ghost",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPartialUpdateMergesFields(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	assignee := seedAssignee(t, store)

	created, err := svc.Create(ctx, CreateInput{
		Subject:        "original subject",
		Body:           "original body",
		RequesterEmail: "visitor@example.com",
		Priority:       "low",
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	status := "in_progress"
	updated, err := svc.Update(ctx, created.ID, Patch{
		Status:     &status,
		AssigneeID: &assignee.ID,
	})
	if err != nil {
		t.Fatalf("update ticket: %v", err)
	}
	if updated.Status != ticket.StatusInProgress {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if updated.AssigneeID != assignee.ID {
		t.Fatalf("assignee not applied: %q", updated.AssigneeID)
	}
	if updated.Subject != "original subject" || updated.Body != "original body" || updated.Priority != "low" {
		t.Fatalf("unpatched fields changed: %+v", updated)
	}
	if updated.Number != created.Number {
		t.Fatalf("ticket number must be immutable, got %q", updated.Number)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Subject: "s", RequesterEmail: "v@example.com"})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	bogus := "reopened"
	if _, err := svc.Update(ctx, created.ID, Patch{Status: &bogus}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnassignWithEmptyPatchValue(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	assignee := seedAssignee(t, store)

	created, err := svc.Create(ctx, CreateInput{Subject: "s", RequesterEmail: "v@example.com", AssigneeID: assignee.ID})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	empty := ""
	updated, err := svc.Update(ctx, created.ID, Patch{AssigneeID: &empty})
	if err != nil {
		t.Fatalf("update ticket: %v", err)
	}
	if updated.AssigneeID != "" {
		t.Fatalf("assignee not cleared: %q", updated.AssigneeID)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Subject: "s", RequesterEmail: "v@example.com"})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete ticket: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.List(context.Background(), storage.TicketFilter{Status: "bogus"})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, CreateInput{Subject: "s", RequesterEmail: "v@example.com"}); err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Open != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
