package service

import (
	"context"

	"pickem/internal/config"
	"pickem/internal/logger"
	"pickem/internal/models"
	"pickem/internal/repository"
)

// Authorization covers everything that creates or checks credentials.
type Authorization interface {
	SignUp(ctx context.Context, payload map[string]any) (models.PublicUser, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	Refresh(ctx context.Context, id Identity) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// Users exposes the public, read-only view of accounts.
type Users interface {
	ListAll(ctx context.Context) ([]models.PublicUser, error)
	GetByUsername(ctx context.Context, username string) (models.PublicUser, error)
}

// AuditLog exposes the account audit trail with filtering access.
type AuditLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
}

type Health interface {
	Ping(ctx context.Context) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Users
	AuditLog
	Health
}

// NewService wires the repository layer into concrete services. cfg is shared
// read-only by the hasher and the token issuer/verifier.
func NewService(repos *repository.Repository, cfg *config.Config, log *logger.Logger) *Service {
	hasher := NewBcryptHasher(cfg)
	tokens := NewJWTTokens(cfg)
	audit := NewAuditLogService(repos.Audit)
	registrar := NewUserRegistrar(NewValidator(), hasher, repos.Users)

	return &Service{
		Authorization: NewAuthService(registrar, repos.Users, hasher, tokens, audit, log),
		Users:         NewUserDirectoryService(repos.Users),
		AuditLog:      audit,
		Health:        NewHealthService(repos.DB),
	}
}
