package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/solara-studio/backoffice/internal/app/services/pages"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/reviews"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	"github.com/solara-studio/backoffice/internal/app/services/users"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/storage"
)

func subcommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("missing subcommand")
	}
	return args[0], args[1:], nil
}

func (c *cli) runUsers(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return fmt.Errorf("users: %w", err)
	}

	switch sub {
	case "list":
		list, err := c.users.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("users get", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		fs.Parse(rest)
		u, err := c.users.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(u)

	case "create":
		fs := flag.NewFlagSet("users create", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		name := fs.String("name", "", "display name")
		password := fs.String("password", "", "initial password")
		role := fs.String("role", "editor", "role: admin or editor")
		fs.Parse(rest)
		u, err := c.users.Create(ctx, users.CreateInput{
			Email: *email, Name: *name, Password: *password, Role: *role,
		})
		if err != nil {
			return err
		}
		return printJSON(u)

	case "update":
		fs := flag.NewFlagSet("users update", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		email := fs.String("email", "", "email address")
		name := fs.String("name", "", "display name")
		password := fs.String("password", "", "new password")
		role := fs.String("role", "", "role: admin or editor")
		fs.Parse(rest)
		u, err := c.users.Update(ctx, *id, users.Patch{
			Email:    optString(fs, "email", email),
			Name:     optString(fs, "name", name),
			Password: optString(fs, "password", password),
			Role:     optString(fs, "role", role),
		})
		if err != nil {
			return err
		}
		return printJSON(u)

	case "delete":
		fs := flag.NewFlagSet("users delete", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		fs.Parse(rest)
		if err := c.users.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("users: unknown subcommand %q", sub)
	}
}

func (c *cli) runTickets(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return fmt.Errorf("tickets: %w", err)
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("tickets list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		assignee := fs.String("assignee", "", "filter by assignee id")
		limit := fs.Int("limit", 0, "cap the result count")
		fs.Parse(rest)
		list, err := c.tickets.List(ctx, storage.TicketFilter{
			Status:     ticket.Status(*status),
			AssigneeID: *assignee,
			Limit:      *limit,
		})
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("tickets get", flag.ExitOnError)
		id := fs.String("id", "", "ticket id")
		fs.Parse(rest)
		t, err := c.tickets.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(t)

	case "create":
		fs := flag.NewFlagSet("tickets create", flag.ExitOnError)
		subject := fs.String("subject", "", "ticket subject")
		body := fs.String("body", "", "ticket body")
		requester := fs.String("requester", "", "requester email")
		assignee := fs.String("assignee", "", "assignee user id")
		priority := fs.String("priority", "", "priority label")
		fs.Parse(rest)
		t, err := c.tickets.Create(ctx, tickets.CreateInput{
			Subject:        *subject,
			Body:           *body,
			RequesterEmail: *requester,
			AssigneeID:     *assignee,
			Priority:       *priority,
		})
		if err != nil {
			return err
		}
		return printJSON(t)

	case "update":
		fs := flag.NewFlagSet("tickets update", flag.ExitOnError)
		id := fs.String("id", "", "ticket id")
		subject := fs.String("subject", "", "ticket subject")
		body := fs.String("body", "", "ticket body")
		status := fs.String("status", "", "new status")
		assignee := fs.String("assignee", "", "assignee user id")
		priority := fs.String("priority", "", "priority label")
		fs.Parse(rest)
		t, err := c.tickets.Update(ctx, *id, tickets.Patch{
			Subject:    optString(fs, "subject", subject),
			Body:       optString(fs, "body", body),
			Status:     optString(fs, "status", status),
			AssigneeID: optString(fs, "assignee", assignee),
			Priority:   optString(fs, "priority", priority),
		})
		if err != nil {
			return err
		}
		return printJSON(t)

	case "delete":
		fs := flag.NewFlagSet("tickets delete", flag.ExitOnError)
		id := fs.String("id", "", "ticket id")
		fs.Parse(rest)
		if err := c.tickets.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "stats":
		stats, err := c.tickets.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)

	default:
		return fmt.Errorf("tickets: unknown subcommand %q", sub)
	}
}

func (c *cli) runQuotes(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return fmt.Errorf("quotes: %w", err)
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("quotes list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		limit := fs.Int("limit", 0, "cap the result count")
		fs.Parse(rest)
		list, err := c.quotes.List(ctx, storage.QuoteFilter{
			Status: quote.Status(*status),
			Limit:  *limit,
		})
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("quotes get", flag.ExitOnError)
		id := fs.String("id", "", "quote id")
		fs.Parse(rest)
		q, err := c.quotes.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(q)

	case "create":
		fs := flag.NewFlagSet("quotes create", flag.ExitOnError)
		contact := fs.String("contact", "", "contact name")
		email := fs.String("email", "", "contact email")
		company := fs.String("company", "", "company name")
		kind := fs.String("kind", "", "project kind")
		budget := fs.String("budget", "", "budget range")
		message := fs.String("message", "", "request message")
		fs.Parse(rest)
		q, err := c.quotes.Create(ctx, quotes.CreateInput{
			ContactName: *contact,
			Email:       *email,
			Company:     *company,
			ProjectKind: *kind,
			Budget:      *budget,
			Message:     *message,
		})
		if err != nil {
			return err
		}
		return printJSON(q)

	case "update":
		fs := flag.NewFlagSet("quotes update", flag.ExitOnError)
		id := fs.String("id", "", "quote id")
		contact := fs.String("contact", "", "contact name")
		email := fs.String("email", "", "contact email")
		company := fs.String("company", "", "company name")
		status := fs.String("status", "", "new status")
		message := fs.String("message", "", "request message")
		fs.Parse(rest)
		q, err := c.quotes.Update(ctx, *id, quotes.Patch{
			ContactName: optString(fs, "contact", contact),
			Email:       optString(fs, "email", email),
			Company:     optString(fs, "company", company),
			Status:      optString(fs, "status", status),
			Message:     optString(fs, "message", message),
		})
		if err != nil {
			return err
		}
		return printJSON(q)

	case "delete":
		fs := flag.NewFlagSet("quotes delete", flag.ExitOnError)
		id := fs.String("id", "", "quote id")
		fs.Parse(rest)
		if err := c.quotes.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	case "stats":
		stats, err := c.quotes.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)

	default:
		return fmt.Errorf("quotes: unknown subcommand %q", sub)
	}
}

func (c *cli) runReviews(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return fmt.Errorf("reviews: %w", err)
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("reviews list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		limit := fs.Int("limit", 0, "cap the result count")
		fs.Parse(rest)
		list, err := c.reviews.List(ctx, storage.ReviewFilter{
			Status: review.Status(*status),
			Limit:  *limit,
		})
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("reviews get", flag.ExitOnError)
		id := fs.String("id", "", "review id")
		fs.Parse(rest)
		rv, err := c.reviews.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(rv)

	case "create":
		fs := flag.NewFlagSet("reviews create", flag.ExitOnError)
		author := fs.String("author", "", "review author")
		rating := fs.Int("rating", 0, "rating 1-5")
		body := fs.String("body", "", "review body")
		source := fs.String("source", "", "review source")
		status := fs.String("status", "", "initial status")
		fs.Parse(rest)
		rv, err := c.reviews.Create(ctx, reviews.CreateInput{
			Author: *author,
			Rating: *rating,
			Body:   *body,
			Source: *source,
			Status: *status,
		})
		if err != nil {
			return err
		}
		return printJSON(rv)

	case "update":
		fs := flag.NewFlagSet("reviews update", flag.ExitOnError)
		id := fs.String("id", "", "review id")
		author := fs.String("author", "", "review author")
		rating := fs.Int("rating", 0, "rating 1-5")
		body := fs.String("body", "", "review body")
		status := fs.String("status", "", "new status")
		fs.Parse(rest)
		rv, err := c.reviews.Update(ctx, *id, reviews.Patch{
			Author: optString(fs, "author", author),
			Rating: optInt(fs, "rating", rating),
			Body:   optString(fs, "body", body),
			Status: optString(fs, "status", status),
		})
		if err != nil {
			return err
		}
		return printJSON(rv)

	case "delete":
		fs := flag.NewFlagSet("reviews delete", flag.ExitOnError)
		id := fs.String("id", "", "review id")
		fs.Parse(rest)
		if err := c.reviews.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("reviews: unknown subcommand %q", sub)
	}
}

func (c *cli) runPages(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}

	switch sub {
	case "list":
		fs := flag.NewFlagSet("pages list", flag.ExitOnError)
		published := fs.Bool("published", false, "filter by published state")
		limit := fs.Int("limit", 0, "cap the result count")
		fs.Parse(rest)
		list, err := c.pages.List(ctx, storage.PageFilter{
			Published: optBool(fs, "published", published),
			Limit:     *limit,
		})
		if err != nil {
			return err
		}
		return printJSON(list)

	case "get":
		fs := flag.NewFlagSet("pages get", flag.ExitOnError)
		slug := fs.String("slug", "", "page slug")
		fs.Parse(rest)
		p, err := c.pages.Get(ctx, *slug)
		if err != nil {
			return err
		}
		return printJSON(p)

	case "create":
		fs := flag.NewFlagSet("pages create", flag.ExitOnError)
		slug := fs.String("slug", "", "page slug")
		title := fs.String("title", "", "page title")
		body := fs.String("body", "", "page body")
		description := fs.String("description", "", "meta description")
		published := fs.Bool("published", false, "publish immediately")
		fs.Parse(rest)
		p, err := c.pages.Create(ctx, pages.CreateInput{
			Slug:        *slug,
			Title:       *title,
			Body:        *body,
			Description: *description,
			Published:   *published,
		})
		if err != nil {
			return err
		}
		return printJSON(p)

	case "update":
		fs := flag.NewFlagSet("pages update", flag.ExitOnError)
		slug := fs.String("slug", "", "page slug")
		title := fs.String("title", "", "page title")
		body := fs.String("body", "", "page body")
		description := fs.String("description", "", "meta description")
		published := fs.Bool("published", false, "published state")
		fs.Parse(rest)
		p, err := c.pages.Update(ctx, *slug, pages.Patch{
			Title:       optString(fs, "title", title),
			Body:        optString(fs, "body", body),
			Description: optString(fs, "description", description),
			Published:   optBool(fs, "published", published),
		})
		if err != nil {
			return err
		}
		return printJSON(p)

	case "delete":
		fs := flag.NewFlagSet("pages delete", flag.ExitOnError)
		slug := fs.String("slug", "", "page slug")
		fs.Parse(rest)
		if err := c.pages.Delete(ctx, *slug); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("pages: unknown subcommand %q", sub)
	}
}
