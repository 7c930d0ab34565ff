package service

import (
	"context"

	"pickem/internal/models"
)

// mockUserRepo is a lightweight in-test mock for repository.Users.
// Unset Fn fields fall back to zero results.
type mockUserRepo struct {
	CreateFn         func(u *models.User) (int64, error)
	FindAllFn        func() ([]models.User, error)
	FindByUsernameFn func(username string) (*models.User, error)
	CountFn          func(username string) (int, error)

	created   []models.User
	findCalls []string
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) (int64, error) {
	m.created = append(m.created, *u)
	if m.CreateFn == nil {
		return int64(len(m.created)), nil
	}
	return m.CreateFn(u)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	if m.FindAllFn == nil {
		return nil, nil
	}
	return m.FindAllFn()
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.findCalls = append(m.findCalls, username)
	if m.FindByUsernameFn == nil {
		return nil, nil
	}
	return m.FindByUsernameFn(username)
}

func (m *mockUserRepo) CountByUsername(ctx context.Context, username string) (int, error) {
	if m.CountFn == nil {
		return 0, nil
	}
	return m.CountFn(username)
}

func (m *mockUserRepo) RemoveByUsername(ctx context.Context, username string) (int64, error) {
	return 0, nil
}

func (m *mockUserRepo) RemoveAll(ctx context.Context) error { return nil }

// stubHasher is a reversible PasswordHasher for tests that don't exercise bcrypt.
type stubHasher struct {
	err error
}

func (h stubHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h stubHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }
