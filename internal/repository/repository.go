package repository

import (
	"context"
	"database/sql"
	"time"

	"pickem/internal/models"
)

// Users is the persistence contract for accounts.
type Users interface {
	Create(ctx context.Context, u *models.User) (int64, error)
	FindAll(ctx context.Context) ([]models.User, error)
	// FindByUsername returns (nil, nil) when no row matches.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
	RemoveByUsername(ctx context.Context, username string) (int64, error)
	RemoveAll(ctx context.Context) error
}

type AuditRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	// List filters by inclusive time range, type and username; empty values match everything.
	List(ctx context.Context, from, to time.Time, typ, username string) ([]models.AuditEvent, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Repository struct {
	Users Users
	Audit AuditRepo
	DB    Pinger
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Audit: NewAuditSQLite(db),
		DB:    db,
	}
}
