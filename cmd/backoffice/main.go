// Command backoffice is the operator CLI. With GATEWAY_URL set it talks to a
// running gateway and falls back to local services when the gateway is
// unreachable; without it everything runs locally.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	app "github.com/solara-studio/backoffice/internal/app"
	"github.com/solara-studio/backoffice/internal/config"
	"github.com/solara-studio/backoffice/internal/dispatch"
	"github.com/solara-studio/backoffice/internal/remote"
	"github.com/solara-studio/backoffice/internal/session"
	"github.com/solara-studio/backoffice/internal/storage/postgres"
	"github.com/solara-studio/backoffice/pkg/logger"
)

const usageText = `Usage: backoffice <command> [flags]

Commands:
  login     -email -password   authenticate and persist the session
  logout                       discard the persisted session
  whoami                       print the current identity
  users     <list|get|create|update|delete> [flags]
  tickets   <list|get|create|update|delete|stats> [flags]
  quotes    <list|get|create|update|delete|stats> [flags]
  reviews   <list|get|create|update|delete> [flags]
  pages     <list|get|create|update|delete> [flags]
`

func main() {
	log := logger.NewDefault("backoffice")
	cfg := config.LoadClient()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cli, err := newCLI(cfg, log)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()
	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
	os.Exit(1)
}

// cli bundles the session, the routing facades and the local application.
type cli struct {
	cfg     config.Client
	log     *logger.Logger
	session *session.Holder
	app     *app.Application
	gateway *remote.Client

	users   *dispatch.Users
	tickets *dispatch.Tickets
	quotes  *dispatch.Quotes
	reviews *dispatch.Reviews
	pages   *dispatch.Pages
}

func newCLI(cfg config.Client, log *logger.Logger) (*cli, error) {
	holder, err := session.New(cfg.SessionPath, nil, log)
	if err != nil {
		return nil, err
	}
	if err := holder.Restore(); err != nil {
		return nil, err
	}

	// Local services back every command in local mode and, when a
	// database is configured, serve as the fallback target in remote mode.
	stores := app.Stores{}
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		store := postgres.New(db)
		stores = app.Stores{Users: store, Tickets: store, Quotes: store, Reviews: store, Pages: store}
	}
	secret := cfg.TokenSecret
	if secret == "" {
		// Local sessions are confined to this machine; the gateway never
		// accepts tokens signed with this value.
		secret = "backoffice-local-dev"
	}
	application, err := app.New(stores, app.Options{TokenSecret: secret}, log)
	if err != nil {
		return nil, err
	}

	mode := dispatch.ModeLocal
	var gateway *remote.Client
	if cfg.GatewayURL != "" {
		mode = dispatch.ModeRemote
		gateway, err = remote.New(remote.Config{
			BaseURL: cfg.GatewayURL,
			Timeout: cfg.RemoteTimeout,
			Tokens:  holder,
		})
		if err != nil {
			return nil, err
		}
	}

	d := dispatch.New(mode, cfg.RemoteTimeout, log)
	if mode == dispatch.ModeRemote && cfg.DatabaseURL == "" {
		// Fallback needs a persistent local store behind it.
		d.DisableFallback()
		log.Info("no database configured, gateway errors will not fall back to local services")
	}
	c := &cli{
		cfg:     cfg,
		log:     log,
		session: holder,
		app:     application,
		gateway: gateway,
	}
	if gateway != nil {
		c.users = dispatch.NewUsers(d, application.Users, gateway.Users())
		c.tickets = dispatch.NewTickets(d, application.Tickets, gateway.Tickets())
		c.quotes = dispatch.NewQuotes(d, application.Quotes, gateway.Quotes())
		c.reviews = dispatch.NewReviews(d, application.Reviews, gateway.Reviews())
		c.pages = dispatch.NewPages(d, application.Pages, gateway.Pages())
	} else {
		c.users = dispatch.NewUsers(d, application.Users, nil)
		c.tickets = dispatch.NewTickets(d, application.Tickets, nil)
		c.quotes = dispatch.NewQuotes(d, application.Quotes, nil)
		c.reviews = dispatch.NewReviews(d, application.Reviews, nil)
		c.pages = dispatch.NewPages(d, application.Pages, nil)
	}
	return c, nil
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.session.Clear()
	case "whoami":
		return c.whoami()
	case "users":
		return c.runUsers(ctx, args)
	case "tickets":
		return c.runTickets(ctx, args)
	case "quotes":
		return c.runQuotes(ctx, args)
	case "reviews":
		return c.runReviews(ctx, args)
	case "pages":
		return c.runPages(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	var token string
	if c.gateway != nil {
		result, err := c.gateway.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		token = result.Token
	} else {
		result, err := c.app.Auth.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		token = result.Token
	}
	if err := c.session.Save(token); err != nil {
		return err
	}
	claims := c.session.Claims()
	fmt.Printf("logged in as %s (%s)\n", claims.Email, claims.Role)
	return nil
}

func (c *cli) whoami() error {
	if !c.session.IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	claims := c.session.Claims()
	return printJSON(map[string]interface{}{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
		"admin":   c.session.IsAdmin(),
	})
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// optString returns nil when the flag was never set, so unset flags do not
// overwrite fields during partial updates.
func optString(fs *flag.FlagSet, name string, value *string) *string {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	return value
}

func optInt(fs *flag.FlagSet, name string, value *int) *int {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	return value
}

func optBool(fs *flag.FlagSet, name string, value *bool) *bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	return value
}
