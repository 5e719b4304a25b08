// Package httpapi exposes the back-office resources over HTTP. Each
// resource has one endpoint multiplexed on method; records are addressed
// with an identifying query parameter.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	app "github.com/solara-studio/backoffice/internal/app"
	"github.com/solara-studio/backoffice/internal/app/services/pages"
	"github.com/solara-studio/backoffice/internal/app/services/quotes"
	"github.com/solara-studio/backoffice/internal/app/services/reviews"
	"github.com/solara-studio/backoffice/internal/app/services/tickets"
	"github.com/solara-studio/backoffice/internal/app/services/users"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/metrics"
	"github.com/solara-studio/backoffice/internal/middleware"
	"github.com/solara-studio/backoffice/internal/storage"
	"github.com/solara-studio/backoffice/pkg/logger"
)

// Config controls the middleware around the resource handlers.
type Config struct {
	CORSOrigins       []string
	RequestsPerSecond int
	Burst             int
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
	log *logger.Logger
}

// NewHandler returns the gateway router with its middleware chain:
// logging, metrics, CORS, rate limiting and bearer authentication.
// /api/admin/login, /healthz and /metrics are unauthenticated.
func NewHandler(application *app.Application, cfg Config, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, log: log}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.health)
	router.Handle("/metrics", metrics.Handler())
	router.HandleFunc("/api/admin/login", h.login)
	router.HandleFunc("/api/admin/users", h.users)
	router.HandleFunc("/api/admin/tickets", h.tickets)
	router.HandleFunc("/api/admin/quotes", h.quotes)
	router.HandleFunc("/api/admin/reviews", h.reviews)
	router.HandleFunc("/api/admin/pages", h.pages)

	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.MetricsMiddleware())

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 50
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 100
	}

	limiter := middleware.NewRateLimiter(rps, burst, log)
	limiter.StartCleanup(10 * time.Minute)

	// Auth runs before the limiter so authenticated traffic is keyed by
	// user id; everything else is keyed by client IP.
	var chain http.Handler = router
	chain = limiter.Handler(chain)
	authMW := middleware.NewAuthMiddleware(application.Auth, log, []string{
		"/api/admin/login", "/healthz", "/metrics",
	})
	chain = authMW.Handler(chain)
	if len(cfg.CORSOrigins) > 0 {
		chain = middleware.NewCORSMiddleware(cfg.CORSOrigins).Handler(chain)
	}
	return chain
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// login is the only credential-accepting endpoint.
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
		return
	}
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, apperr.Validation("malformed request body"))
		return
	}
	result, err := h.app.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) users(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))

	switch r.Method {
	case http.MethodGet:
		if id != "" {
			u, err := h.app.Users.Get(r.Context(), id)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, u)
			return
		}
		list, err := h.app.Users.List(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in users.CreateInput
		if err := decodeJSON(r.Body, &in); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		created, err := h.app.Users.Create(r.Context(), in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		var patch users.Patch
		if err := decodeJSON(r.Body, &patch); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		updated, err := h.app.Users.Update(r.Context(), id, patch)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		if err := h.app.Users.Delete(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
	}
}

func (h *handler) tickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))

	switch r.Method {
	case http.MethodGet:
		if query.Get("stats") == "true" {
			stats, err := h.app.Tickets.Stats(r.Context())
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, stats)
			return
		}
		if id != "" {
			t, err := h.app.Tickets.Get(r.Context(), id)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, t)
			return
		}
		filter := storage.TicketFilter{
			Status:     ticket.Status(query.Get("status")),
			AssigneeID: strings.TrimSpace(query.Get("assignee_id")),
		}
		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Limit = limit
		list, err := h.app.Tickets.List(r.Context(), filter)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in tickets.CreateInput
		if err := decodeJSON(r.Body, &in); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		created, err := h.app.Tickets.Create(r.Context(), in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		var patch tickets.Patch
		if err := decodeJSON(r.Body, &patch); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		updated, err := h.app.Tickets.Update(r.Context(), id, patch)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		if err := h.app.Tickets.Delete(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
	}
}

func (h *handler) quotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))

	switch r.Method {
	case http.MethodGet:
		if query.Get("stats") == "true" {
			stats, err := h.app.Quotes.Stats(r.Context())
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, stats)
			return
		}
		if id != "" {
			q, err := h.app.Quotes.Get(r.Context(), id)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, q)
			return
		}
		filter := storage.QuoteFilter{Status: quote.Status(query.Get("status"))}
		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Limit = limit
		list, err := h.app.Quotes.List(r.Context(), filter)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in quotes.CreateInput
		if err := decodeJSON(r.Body, &in); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		created, err := h.app.Quotes.Create(r.Context(), in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		var patch quotes.Patch
		if err := decodeJSON(r.Body, &patch); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		updated, err := h.app.Quotes.Update(r.Context(), id, patch)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		if err := h.app.Quotes.Delete(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
	}
}

func (h *handler) reviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := strings.TrimSpace(query.Get("id"))

	switch r.Method {
	case http.MethodGet:
		if id != "" {
			rv, err := h.app.Reviews.Get(r.Context(), id)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, rv)
			return
		}
		filter := storage.ReviewFilter{Status: review.Status(query.Get("status"))}
		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Limit = limit
		list, err := h.app.Reviews.List(r.Context(), filter)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in reviews.CreateInput
		if err := decodeJSON(r.Body, &in); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		created, err := h.app.Reviews.Create(r.Context(), in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		var patch reviews.Patch
		if err := decodeJSON(r.Body, &patch); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		updated, err := h.app.Reviews.Update(r.Context(), id, patch)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if id == "" {
			h.writeError(w, r, apperr.Validation("id query parameter is required"))
			return
		}
		if err := h.app.Reviews.Delete(r.Context(), id); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
	}
}

// pages key on the natural slug instead of a numeric id; the contract is
// otherwise identical.
func (h *handler) pages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	slug := strings.TrimSpace(query.Get("slug"))

	switch r.Method {
	case http.MethodGet:
		if slug != "" {
			p, err := h.app.Pages.Get(r.Context(), slug)
			if err != nil {
				h.writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, p)
			return
		}
		filter := storage.PageFilter{}
		if raw := query.Get("published"); raw != "" {
			published := raw == "true"
			filter.Published = &published
		}
		limit, err := parseLimit(query.Get("limit"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Limit = limit
		list, err := h.app.Pages.List(r.Context(), filter)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case http.MethodPost:
		var in pages.CreateInput
		if err := decodeJSON(r.Body, &in); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		created, err := h.app.Pages.Create(r.Context(), in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodPut:
		if slug == "" {
			h.writeError(w, r, apperr.Validation("slug query parameter is required"))
			return
		}
		var patch pages.Patch
		if err := decodeJSON(r.Body, &patch); err != nil {
			h.writeError(w, r, apperr.Validation("malformed request body"))
			return
		}
		updated, err := h.app.Pages.Update(r.Context(), slug, patch)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if slug == "" {
			h.writeError(w, r, apperr.Validation("slug query parameter is required"))
			return
		}
		if err := h.app.Pages.Delete(r.Context(), slug); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})

	default:
		h.writeError(w, r, apperr.MethodNotAllowed(r.Method))
	}
}

// helpers ---------------------------------------------------------------------

func parseLimit(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperr.Validation("limit must be a non-negative integer")
	}
	return limit, nil
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError translates an error into its taxonomy response. Internal
// detail is logged server-side and never leaks to the client.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := apperr.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = apperr.Internal("internal error", err)
	}
	if serviceErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.WithError(err).WithFields(map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}
	writeJSON(w, serviceErr.HTTPStatus, map[string]string{
		"code":  string(serviceErr.Code),
		"error": serviceErr.Message,
	})
}
