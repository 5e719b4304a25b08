package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/solara-studio/backoffice/internal/domain/ticket"
	"github.com/solara-studio/backoffice/internal/domain/user"
	apperr "github.com/solara-studio/backoffice/internal/errors"
	"github.com/solara-studio/backoffice/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetUserMapsRow(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "active", "created_at", "updated_at"}).
		AddRow("u1", "alice@example.com", "Alice", "hash", "admin", true, now, now)
	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").WithArgs("u1").WillReturnRows(rows)

	got, err := store.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "alice@example.com" || got.Role != user.RoleAdmin || !got.Active {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetUser(context.Background(), "missing")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUniqueViolationIsValidation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT nextval").WillReturnRows(
		sqlmock.NewRows([]string{"nextval"}).AddRow(int64(1001)))
	mock.ExpectExec("INSERT INTO tickets").WillReturnError(
		&pq.Error{Code: "23505", Constraint: "tickets_number_key"})

	_, err := store.CreateTicket(context.Background(), ticket.Ticket{
		Subject: "dup",
		Status:  ticket.StatusOpen,
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation for unique violation, got %v", err)
	}
}

func TestForeignKeyViolationIsValidation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT nextval").WillReturnRows(
		sqlmock.NewRows([]string{"nextval"}).AddRow(int64(1002)))
	mock.ExpectExec("INSERT INTO tickets").WillReturnError(
		&pq.Error{Code: "23503", Constraint: "tickets_assignee_id_fkey"})

	_, err := store.CreateTicket(context.Background(), ticket.Ticket{
		Subject:    "orphan",
		Status:     ticket.StatusOpen,
		AssigneeID: "ghost",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation for fk violation, got %v", err)
	}
}

func TestDeleteTicketReportsMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM tickets WHERE id =").WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteTicket(context.Background(), "missing")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTicketsBuildsFilteredQuery(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "number", "subject", "body", "requester_email", "assignee_id",
		"status", "priority", "metadata", "created_at", "updated_at",
	}).AddRow("t1", "TKT-1001", "s", "b", "v@example.com", nil, "open", "", []byte("{}"), now, now)

	mock.ExpectQuery("SELECT .+ FROM tickets WHERE status = .+ LIMIT").
		WithArgs("open", 5).WillReturnRows(rows)

	list, err := store.ListTickets(context.Background(), storage.TicketFilter{
		Status: ticket.StatusOpen,
		Limit:  5,
	})
	if err != nil {
		t.Fatalf("list tickets: %v", err)
	}
	if len(list) != 1 || list[0].Number != "TKT-1001" || list[0].AssigneeID != "" {
		t.Fatalf("unexpected listing: %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTicketStats(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow("open", 3).
		AddRow("closed", 1)
	mock.ExpectQuery("SELECT status, COUNT").WillReturnRows(rows)

	stats, err := store.TicketStats(context.Background())
	if err != nil {
		t.Fatalf("ticket stats: %v", err)
	}
	if stats.Total != 4 || stats.Open != 3 || stats.Closed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
