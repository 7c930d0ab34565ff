package service

import (
	"context"
	"sort"

	"pickem/internal/models"
	"pickem/internal/repository"

	"github.com/pkg/errors"
)

// UserDirectoryService serves the read side of accounts.
type UserDirectoryService struct {
	users repository.Users
}

func NewUserDirectoryService(users repository.Users) *UserDirectoryService {
	return &UserDirectoryService{users: users}
}

// ListAll returns every user ordered by points, highest first.
func (s *UserDirectoryService) ListAll(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, NewInternal(errors.Wrap(err, "list users"))
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})

	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// GetByUsername returns one user. A missing user is an Internal error, not a 404.
func (s *UserDirectoryService) GetByUsername(ctx context.Context, username string) (models.PublicUser, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return models.PublicUser{}, NewInternal(errors.Wrap(err, "find user"))
	}
	if u == nil {
		return models.PublicUser{}, NewInternal(errors.Wrapf(ErrUserNotFound, "username %q", username))
	}
	return u.Public(), nil
}
