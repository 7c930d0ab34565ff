package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"pickem/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newAuditMock(t *testing.T) (*AuditSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewAuditSQLite(db), mock
}

func TestAuditAppend_Success_WithDefaults(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	// generated id and timestamp are unknown; type is normalized
	mock.ExpectExec(regexp.QuoteMeta(insertAuditEventSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "SIGNUP", "alice", `{"a":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.AuditEvent{
		Type:     "  signup ",
		Username: "alice",
		Metadata: map[string]any{"a": 1},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAuditAppend_FormatsTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	at := time.Date(2025, 2, 9, 18, 30, 0, 0, time.FixedZone("EST", -5*3600))
	mock.ExpectExec(regexp.QuoteMeta(insertAuditEventSQL)).
		WithArgs("ev-1", "2025-02-09 23:30:00", "LOGIN", "bob", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(ctx(t), models.AuditEvent{EventID: "ev-1", OccurredAt: at, Type: models.EventLogin, Username: "bob"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAuditAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	mock.ExpectExec("INSERT INTO user_events").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.AuditEvent{Type: "login", Username: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestAuditList_NoFilters_And_MetadataParsing(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"a": "b"})

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "username", "meta"}).
		AddRow("1", now, "SIGNUP", "alice", string(js)).
		AddRow("2", "2025-01-01 11:00:00", "LOGIN", "alice", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectAuditEventSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "1" || got[1].EventID != "2" {
		t.Fatalf("unexpected events: %+v", got)
	}
	if !got[0].OccurredAt.Equal(now) || !got[1].OccurredAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("timestamps not parsed: %v, %v", got[0].OccurredAt, got[1].OccurredAt)
	}
	b1, _ := json.Marshal(got[0].Metadata)
	if string(b1) != string(js) {
		t.Fatalf("metadata mismatch: %s vs %s", string(b1), string(js))
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAuditList_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	from := time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	query := selectAuditEventSQL + ` WHERE occurred_at >= ? AND occurred_at <= ? AND type = ? ORDER BY occurred_at ASC`

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "username", "meta"}).
		AddRow("2", from, "LOGIN_FAILED", "bob", nil).
		AddRow("3", to, "LOGIN_FAILED", "bob", "not-json")

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-01-01 11:00:00", "2025-01-01 12:00:00", "LOGIN_FAILED").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), from, to, " login_failed ", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].EventID != "2" || got[1].EventID != "3" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if got[1].Metadata != "not-json" {
		t.Fatalf("malformed metadata should be kept raw, got %#v", got[1].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestAuditList_BadTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "username", "meta"}).
		AddRow("x", 123, "LOGIN", "bob", nil)

	mock.ExpectQuery(regexp.QuoteMeta(selectAuditEventSQL + ` ORDER BY occurred_at ASC`)).
		WillReturnRows(rows)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, "", ""); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestAuditList_QueryError(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	mock.ExpectQuery("SELECT id, occurred_at").WillReturnError(sql.ErrConnDone)

	if _, err := repo.List(ctx(t), time.Time{}, time.Time{}, "", ""); !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected ErrConnDone, got %v", err)
	}
}

func TestAuditList_UsernameFilter(t *testing.T) {
	t.Parallel()
	repo, mock := newAuditMock(t)

	query := selectAuditEventSQL + ` WHERE username = ? ORDER BY occurred_at ASC`
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "type", "username", "meta"}).
		AddRow("7", "2025-01-01 11:00:00", "LOGIN", "alice", nil)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.List(ctx(t), time.Time{}, time.Time{}, "", "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
