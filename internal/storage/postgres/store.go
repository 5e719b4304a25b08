// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperr "github.com/solara-studio/backoffice/internal/errors"

	"github.com/solara-studio/backoffice/internal/domain/page"
	"github.com/solara-studio/backoffice/internal/domain/quote"
	"github.com/solara-studio/backoffice/internal/domain/review"
	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	"github.com/solara-studio/backoffice/internal/storage"
)

// Store implements the storage interfaces over a shared sqlx handle. The
// pool serializes connection acquisition; queries run independently.
type Store struct {
	db *sqlx.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.TicketStore = (*Store)(nil)
var _ storage.QuoteStore = (*Store)(nil)
var _ storage.ReviewStore = (*Store)(nil)
var _ storage.PageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// translate maps driver errors onto the shared taxonomy. Unique and foreign
// key violations are caller mistakes, not server faults.
func translate(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(notFoundMsg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return apperr.Validation("uniqueness constraint violated: " + pqErr.Constraint)
		case "23503":
			return apperr.Validation("referenced record does not exist: " + pqErr.Constraint)
		}
	}
	return apperr.Internal("storage failure", err)
}

func marshalMeta(meta map[string]interface{}) ([]byte, error) {
	if len(meta) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(meta)
}

func unmarshalMeta(raw []byte) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(raw, &meta); err != nil || len(meta) == 0 {
		return nil
	}
	return meta
}

// users -----------------------------------------------------------------------

type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r userRow) toDomain() user.User {
	return user.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Role:         user.Role(r.Role),
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const userColumns = `id, email, name, password_hash, role, active, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return user.User{}, translate(err, "")
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	existing, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, role = $5, active = $6, updated_at = $7
		WHERE id = $1
	`, u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.Active, u.UpdatedAt)
	if err != nil {
		return user.User{}, translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return user.User{}, apperr.NotFound(fmt.Sprintf("user %s not found", u.ID))
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return user.User{}, translate(err, fmt.Sprintf("user %s not found", id))
	}
	return row.toDomain(), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var row userRow
	err := s.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return user.User{}, translate(err, fmt.Sprintf("user with email %s not found", email))
	}
	return row.toDomain(), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate(err, "")
	}
	out := make([]user.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound(fmt.Sprintf("user %s not found", id))
	}
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, translate(err, "")
	}
	return count, nil
}

// tickets ---------------------------------------------------------------------

type ticketRow struct {
	ID             string         `db:"id"`
	Number         string         `db:"number"`
	Subject        string         `db:"subject"`
	Body           string         `db:"body"`
	RequesterEmail string         `db:"requester_email"`
	AssigneeID     sql.NullString `db:"assignee_id"`
	Status         string         `db:"status"`
	Priority       string         `db:"priority"`
	Metadata       []byte         `db:"metadata"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r ticketRow) toDomain() ticket.Ticket {
	return ticket.Ticket{
		ID:             r.ID,
		Number:         r.Number,
		Subject:        r.Subject,
		Body:           r.Body,
		RequesterEmail: r.RequesterEmail,
		AssigneeID:     r.AssigneeID.String,
		Status:         ticket.Status(r.Status),
		Priority:       r.Priority,
		Metadata:       unmarshalMeta(r.Metadata),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const ticketColumns = `id, number, subject, body, requester_email, assignee_id, status, priority, metadata, created_at, updated_at`

func (s *Store) CreateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Number == "" {
		var seq int64
		if err := s.db.GetContext(ctx, &seq, `SELECT nextval('ticket_number_seq')`); err != nil {
			return ticket.Ticket{}, translate(err, "")
		}
		t.Number = fmt.Sprintf("TKT-%d", seq)
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	metaJSON, err := marshalMeta(t.Metadata)
	if err != nil {
		return ticket.Ticket{}, apperr.Internal("encode metadata", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tickets (id, number, subject, body, requester_email, assignee_id, status, priority, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, t.ID, t.Number, t.Subject, t.Body, t.RequesterEmail, nullable(t.AssigneeID), string(t.Status), t.Priority, metaJSON, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return ticket.Ticket{}, translate(err, "")
	}
	return t, nil
}

func (s *Store) UpdateTicket(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	existing, err := s.GetTicket(ctx, t.ID)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.Number = existing.Number
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()

	metaJSON, err := marshalMeta(t.Metadata)
	if err != nil {
		return ticket.Ticket{}, apperr.Internal("encode metadata", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tickets
		SET subject = $2, body = $3, requester_email = $4, assignee_id = $5, status = $6, priority = $7, metadata = $8, updated_at = $9
		WHERE id = $1
	`, t.ID, t.Subject, t.Body, t.RequesterEmail, nullable(t.AssigneeID), string(t.Status), t.Priority, metaJSON, t.UpdatedAt)
	if err != nil {
		return ticket.Ticket{}, translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ticket.Ticket{}, apperr.NotFound(fmt.Sprintf("ticket %s not found", t.ID))
	}
	return t, nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	var row ticketRow
	err := s.db.GetContext(ctx, &row, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	if err != nil {
		return ticket.Ticket{}, translate(err, fmt.Sprintf("ticket %s not found", id))
	}
	return row.toDomain(), nil
}

func (s *Store) ListTickets(ctx context.Context, filter storage.TicketFilter) ([]ticket.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AssigneeID != "" {
		args = append(args, filter.AssigneeID)
		conds = append(conds, fmt.Sprintf("assignee_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []ticketRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, "")
	}
	out := make([]ticket.Ticket, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound(fmt.Sprintf("ticket %s not found", id))
	}
	return nil
}

func (s *Store) TicketStats(ctx context.Context) (ticket.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return ticket.Stats{}, translate(err, "")
	}
	defer rows.Close()

	var stats ticket.Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return ticket.Stats{}, translate(err, "")
		}
		stats.Total += count
		switch ticket.Status(status) {
		case ticket.StatusOpen:
			stats.Open = count
		case ticket.StatusInProgress:
			stats.InProgress = count
		case ticket.StatusResolved:
			stats.Resolved = count
		case ticket.StatusClosed:
			stats.Closed = count
		}
	}
	if err := rows.Err(); err != nil {
		return ticket.Stats{}, translate(err, "")
	}
	return stats, nil
}

// quotes ----------------------------------------------------------------------

type quoteRow struct {
	ID          string    `db:"id"`
	ContactName string    `db:"contact_name"`
	Email       string    `db:"email"`
	Company     string    `db:"company"`
	ProjectKind string    `db:"project_kind"`
	Budget      string    `db:"budget"`
	Message     string    `db:"message"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r quoteRow) toDomain() quote.Quote {
	return quote.Quote{
		ID:          r.ID,
		ContactName: r.ContactName,
		Email:       r.Email,
		Company:     r.Company,
		ProjectKind: r.ProjectKind,
		Budget:      r.Budget,
		Message:     r.Message,
		Status:      quote.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const quoteColumns = `id, contact_name, email, company, project_kind, budget, message, status, created_at, updated_at`

func (s *Store) CreateQuote(ctx context.Context, q quote.Quote) (quote.Quote, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, contact_name, email, company, project_kind, budget, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, q.ID, q.ContactName, q.Email, q.Company, q.ProjectKind, q.Budget, q.Message, string(q.Status), q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return quote.Quote{}, translate(err, "")
	}
	return q, nil
}

func (s *Store) UpdateQuote(ctx context.Context, q quote.Quote) (quote.Quote, error) {
	existing, err := s.GetQuote(ctx, q.ID)
	if err != nil {
		return quote.Quote{}, err
	}
	q.CreatedAt = existing.CreatedAt
	q.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE quotes
		SET contact_name = $2, email = $3, company = $4, project_kind = $5, budget = $6, message = $7, status = $8, updated_at = $9
		WHERE id = $1
	`, q.ID, q.ContactName, q.Email, q.Company, q.ProjectKind, q.Budget, q.Message, string(q.Status), q.UpdatedAt)
	if err != nil {
		return quote.Quote{}, translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return quote.Quote{}, apperr.NotFound(fmt.Sprintf("quote %s not found", q.ID))
	}
	return q, nil
}

func (s *Store) GetQuote(ctx context.Context, id string) (quote.Quote, error) {
	var row quoteRow
	err := s.db.GetContext(ctx, &row, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	if err != nil {
		return quote.Quote{}, translate(err, fmt.Sprintf("quote %s not found", id))
	}
	return row.toDomain(), nil
}

func (s *Store) ListQuotes(ctx context.Context, filter storage.QuoteFilter) ([]quote.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []quoteRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, "")
	}
	out := make([]quote.Quote, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound(fmt.Sprintf("quote %s not found", id))
	}
	return nil
}

func (s *Store) QuoteStats(ctx context.Context) (quote.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM quotes GROUP BY status`)
	if err != nil {
		return quote.Stats{}, translate(err, "")
	}
	defer rows.Close()

	var stats quote.Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return quote.Stats{}, translate(err, "")
		}
		stats.Total += count
		switch quote.Status(status) {
		case quote.StatusNew:
			stats.New = count
		case quote.StatusContacted:
			stats.Contacted = count
		case quote.StatusAccepted:
			stats.Accepted = count
		case quote.StatusDeclined:
			stats.Declined = count
		}
	}
	if err := rows.Err(); err != nil {
		return quote.Stats{}, translate(err, "")
	}
	return stats, nil
}

// reviews ---------------------------------------------------------------------

type reviewRow struct {
	ID        string    `db:"id"`
	Author    string    `db:"author"`
	Rating    int       `db:"rating"`
	Body      string    `db:"body"`
	Source    string    `db:"source"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r reviewRow) toDomain() review.Review {
	return review.Review{
		ID:        r.ID,
		Author:    r.Author,
		Rating:    r.Rating,
		Body:      r.Body,
		Source:    r.Source,
		Status:    review.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const reviewColumns = `id, author, rating, body, source, status, created_at, updated_at`

func (s *Store) CreateReview(ctx context.Context, rv review.Review) (review.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, author, rating, body, source, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rv.ID, rv.Author, rv.Rating, rv.Body, rv.Source, string(rv.Status), rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return review.Review{}, translate(err, "")
	}
	return rv, nil
}

func (s *Store) UpdateReview(ctx context.Context, rv review.Review) (review.Review, error) {
	existing, err := s.GetReview(ctx, rv.ID)
	if err != nil {
		return review.Review{}, err
	}
	rv.CreatedAt = existing.CreatedAt
	rv.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET author = $2, rating = $3, body = $4, source = $5, status = $6, updated_at = $7
		WHERE id = $1
	`, rv.ID, rv.Author, rv.Rating, rv.Body, rv.Source, string(rv.Status), rv.UpdatedAt)
	if err != nil {
		return review.Review{}, translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return review.Review{}, apperr.NotFound(fmt.Sprintf("review %s not found", rv.ID))
	}
	return rv, nil
}

func (s *Store) GetReview(ctx context.Context, id string) (review.Review, error) {
	var row reviewRow
	err := s.db.GetContext(ctx, &row, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err != nil {
		return review.Review{}, translate(err, fmt.Sprintf("review %s not found", id))
	}
	return row.toDomain(), nil
}

func (s *Store) ListReviews(ctx context.Context, filter storage.ReviewFilter) ([]review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []reviewRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, "")
	}
	out := make([]review.Review, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound(fmt.Sprintf("review %s not found", id))
	}
	return nil
}

// pages -----------------------------------------------------------------------

type pageRow struct {
	Slug        string    `db:"slug"`
	Title       string    `db:"title"`
	Body        string    `db:"body"`
	Description string    `db:"description"`
	Published   bool      `db:"published"`
	Metadata    []byte    `db:"metadata"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r pageRow) toDomain() page.Page {
	return page.Page{
		Slug:        r.Slug,
		Title:       r.Title,
		Body:        r.Body,
		Description: r.Description,
		Published:   r.Published,
		Metadata:    unmarshalMeta(r.Metadata),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const pageColumns = `slug, title, body, description, published, metadata, created_at, updated_at`

func (s *Store) CreatePage(ctx context.Context, p page.Page) (page.Page, error) {
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	metaJSON, err := marshalMeta(p.Metadata)
	if err != nil {
		return page.Page{}, apperr.Internal("encode metadata", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (slug, title, body, description, published, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.Slug, p.Title, p.Body, p.Description, p.Published, metaJSON, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return page.Page{}, translate(err, "")
	}
	return p, nil
}

func (s *Store) UpdatePage(ctx context.Context, p page.Page) (page.Page, error) {
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	existing, err := s.GetPage(ctx, p.Slug)
	if err != nil {
		return page.Page{}, err
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	metaJSON, err := marshalMeta(p.Metadata)
	if err != nil {
		return page.Page{}, apperr.Internal("encode metadata", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET title = $2, body = $3, description = $4, published = $5, metadata = $6, updated_at = $7
		WHERE slug = $1
	`, p.Slug, p.Title, p.Body, p.Description, p.Published, metaJSON, p.UpdatedAt)
	if err != nil {
		return page.Page{}, translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return page.Page{}, apperr.NotFound(fmt.Sprintf("page %s not found", p.Slug))
	}
	return p, nil
}

func (s *Store) GetPage(ctx context.Context, slug string) (page.Page, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var row pageRow
	err := s.db.GetContext(ctx, &row, `SELECT `+pageColumns+` FROM pages WHERE slug = $1`, slug)
	if err != nil {
		return page.Page{}, translate(err, fmt.Sprintf("page %s not found", slug))
	}
	return row.toDomain(), nil
}

func (s *Store) ListPages(ctx context.Context, filter storage.PageFilter) ([]page.Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages`
	var args []interface{}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		query += " WHERE published = $1"
	}
	query += " ORDER BY slug"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []pageRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translate(err, "")
	}
	out := make([]page.Page, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) DeletePage(ctx context.Context, slug string) error {
	slug = strings.ToLower(strings.TrimSpace(slug))
	result, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE slug = $1`, slug)
	if err != nil {
		return translate(err, "")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.NotFound(fmt.Sprintf("page %s not found", slug))
	}
	return nil
}
