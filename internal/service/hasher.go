package service

import (
	"strings"

	"pickem/internal/config"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores (recent x/crypto: rejects) input past 72 bytes.
const maxHashInputBytes = 72

var errEmptyPassword = errors.New("password is empty")

// PasswordHasher is one-way: Verify is the only way back to a yes/no answer.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

func NewBcryptHasher(cfg *config.Config) *BcryptHasher {
	return &BcryptHasher{cost: cfg.Auth.BcryptCost}
}

// Hash returns a salted bcrypt hash of the first 72 bytes of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(hashInput(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), hashInput(password)) == nil
}

func hashInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxHashInputBytes {
		b = b[:maxHashInputBytes]
	}
	return b
}
