package service

import (
	"context"

	"pickem/internal/models"
	"pickem/internal/repository"

	"github.com/pkg/errors"
)

// UserRegistrar turns a raw signup payload into a stored user.
// Steps: validate, check username, hash, persist, project. No retries.
type UserRegistrar struct {
	validator *Validator
	hasher    PasswordHasher
	users     repository.Users
}

func NewUserRegistrar(v *Validator, hasher PasswordHasher, users repository.Users) *UserRegistrar {
	return &UserRegistrar{validator: v, hasher: hasher, users: users}
}

// Register returns the public projection of the new user. Failures are either
// Validation errors (reported as-is) or Internal.
func (r *UserRegistrar) Register(ctx context.Context, payload map[string]any) (models.PublicUser, error) {
	in, err := r.validator.Validate(payload)
	if err != nil {
		return models.PublicUser{}, err
	}

	// fast path; the unique index below is what actually guarantees it
	n, err := r.users.CountByUsername(ctx, in.Username)
	if err != nil {
		return models.PublicUser{}, NewInternal(errors.Wrap(err, "count username"))
	}
	if n > 0 {
		return models.PublicUser{}, NewValidationError(FieldUsername, msgUsernameTaken)
	}

	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return models.PublicUser{}, NewInternal(errors.Wrap(err, "hash password"))
	}

	u := &models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         in.Name,
		Points:       0,
		Picks:        map[string]string{},
	}
	if _, err := r.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return models.PublicUser{}, NewValidationError(FieldUsername, msgUsernameTaken)
		}
		return models.PublicUser{}, NewInternal(errors.Wrap(err, "create user"))
	}

	return u.Public(), nil
}
