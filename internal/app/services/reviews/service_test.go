package reviews

import (
	"context"
	"testing"

	"github.com/solara-studio/backoffice/internal/domain/review"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage/memory"
)

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), CreateInput{
		Author: "Dana",
		Rating: 5,
		Body:   "great work",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if created.Status != review.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Status)
	}
}

func TestRatingBounds(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(ctx, CreateInput{Author: "Dana", Rating: rating})
		if !apperr.IsValidation(err) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}

	created, err := svc.Create(ctx, CreateInput{Author: "Dana", Rating: 1})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	bad := 9
	if _, err := svc.Update(ctx, created.ID, Patch{Rating: &bad}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation on bad patch rating, got %v", err)
	}
}

func TestPublishFlow(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Author: "Dana", Rating: 4, Body: "solid"})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	published := "published"
	updated, err := svc.Update(ctx, created.ID, Patch{Status: &published})
	if err != nil {
		t.Fatalf("publish review: %v", err)
	}
	if updated.Status != review.StatusPublished {
		t.Fatalf("expected published, got %q", updated.Status)
	}
	if updated.Author != "Dana" || updated.Rating != 4 {
		t.Fatalf("unpatched fields changed: %+v", updated)
	}

	bogus := "live"
	if _, err := svc.Update(ctx, created.ID, Patch{Status: &bogus}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation for unknown status, got %v", err)
	}
}
