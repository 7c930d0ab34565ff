package service

import (
	"context"
	"sync"
	"unicode/utf8"

	"pickem/internal/logger"
	"pickem/internal/models"
	"pickem/internal/repository"

	"github.com/pkg/errors"
)

// Domain errors for auth flows. Both surface as Unauthorized.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// Tokens both issues and verifies bearer tokens.
type Tokens interface {
	TokenIssuer
	TokenVerifier
}

// AuditRecorder receives account events. Failures never fail the caller.
type AuditRecorder interface {
	Record(ctx context.Context, typ, username string, meta any) error
}

// AuthService handles signup, login, refresh and token parsing.
type AuthService struct {
	registrar *UserRegistrar
	users     repository.Users
	hasher    PasswordHasher
	tokens    Tokens
	audit     AuditRecorder
	log       *logger.Logger

	// decoy hash verified when there is no stored one, so every rejection costs a bcrypt compare
	decoyOnce sync.Once
	decoyHash string
}

const decoyPassword = "pickem-decoy-password"

func NewAuthService(registrar *UserRegistrar, users repository.Users, hasher PasswordHasher, tokens Tokens, audit AuditRecorder, log *logger.Logger) *AuthService {
	return &AuthService{
		registrar: registrar,
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		audit:     audit,
		log:       log,
	}
}

// SignUp registers a user from a raw JSON payload.
func (s *AuthService) SignUp(ctx context.Context, payload map[string]any) (models.PublicUser, error) {
	u, err := s.registrar.Register(ctx, payload)
	if err != nil {
		return models.PublicUser{}, err
	}
	s.record(ctx, models.EventSignup, u.Username, nil)
	return u, nil
}

// GenerateToken validates credentials and returns a signed token.
// Unknown user and wrong password are indistinguishable to the caller.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	// no account can have such a name; nothing to look up or audit
	if utf8.RuneCountInString(username) > maxUsernameLen {
		s.verifyDecoy(password)
		return "", NewUnauthorized(ErrUserNotFound)
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", NewInternal(errors.Wrap(err, "find user"))
	}
	if u == nil {
		s.verifyDecoy(password)
		s.record(ctx, models.EventLoginFailed, username, map[string]any{"cause": "unknown_user"})
		return "", NewUnauthorized(ErrUserNotFound)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		s.record(ctx, models.EventLoginFailed, username, map[string]any{"cause": "bad_password"})
		return "", NewUnauthorized(ErrInvalidPassword)
	}

	token, err := s.tokens.Issue(Identity{Username: u.Username, Name: u.Name})
	if err != nil {
		return "", NewInternal(err)
	}
	s.record(ctx, models.EventLogin, u.Username, nil)
	return token, nil
}

// Refresh issues a fresh token for an identity that already passed verification.
func (s *AuthService) Refresh(ctx context.Context, id Identity) (string, error) {
	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", NewInternal(err)
	}
	s.record(ctx, models.EventRefresh, id.Username, nil)
	return token, nil
}

// ParseToken verifies accessToken and returns the identity it carries.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return Identity{}, NewUnauthorized(err)
	}
	return claims.User, nil
}

func (s *AuthService) verifyDecoy(password string) {
	s.decoyOnce.Do(func() {
		if h, err := s.hasher.Hash(decoyPassword); err == nil {
			s.decoyHash = h
		}
	})
	_ = s.hasher.Verify(password, s.decoyHash)
}

func (s *AuthService) record(ctx context.Context, typ, username string, meta any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, typ, username, meta); err != nil && s.log != nil {
		s.log.Warnw("audit_append_failed", "type", typ, "username", username, "err", err)
	}
}
