package pages

import (
	"context"
	"testing"

	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage/memory"
)

func TestCreateNormalizesSlug(t *testing.T) {
	svc := New(memory.New(), nil)

	created, err := svc.Create(context.Background(), CreateInput{
		Slug:  "  About-Us ",
		Title: "About",
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if created.Slug != "about-us" {
		t.Fatalf("slug not normalized: %q", created.Slug)
	}
}

func TestCreateRejectsBadSlugs(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	for _, slug := range []string{"", "has space", "Über", "a/b", "trailing-"} {
		_, err := svc.Create(ctx, CreateInput{Slug: slug, Title: "t"})
		if !apperr.IsValidation(err) {
			t.Fatalf("slug %q: expected validation error, got %v", slug, err)
		}
	}
}

func TestSlugIsImmutable(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Slug: "contact", Title: "Contact"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	title := "Get in Touch"
	published := true
	updated, err := svc.Update(ctx, created.Slug, Patch{Title: &title, Published: &published})
	if err != nil {
		t.Fatalf("update page: %v", err)
	}
	if updated.Slug != "contact" {
		t.Fatalf("slug changed on update: %q", updated.Slug)
	}
	if updated.Title != "Get in Touch" || !updated.Published {
		t.Fatalf("patch not applied: %+v", updated)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Slug: "legal", Title: "Legal"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if err := svc.Delete(ctx, created.Slug); err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if _, err := svc.Get(ctx, created.Slug); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
