package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pickem/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	userColumns = `id, username, password_hash, name, points, picks`

	insertUserSQL           = `INSERT INTO users (username, password_hash, name, points, picks) VALUES (?, ?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	selectAllUsersSQL       = `SELECT ` + userColumns + ` FROM users ORDER BY points DESC, id ASC`
	countByUsernameSQL      = `SELECT COUNT(*) FROM users WHERE username = ?`
	deleteByUsernameSQL     = `DELETE FROM users WHERE username = ?`
	deleteAllUsersSQL       = `DELETE FROM users`
)

// marshalPicks stores picks as a JSON object; nil becomes "{}".
func marshalPicks(picks map[string]string) (string, error) {
	if picks == nil {
		return "{}", nil
	}
	b, err := json.Marshal(picks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalPicks(s string) (map[string]string, error) {
	picks := map[string]string{}
	if s == "" {
		return picks, nil
	}
	if err := json.Unmarshal([]byte(s), &picks); err != nil {
		return nil, err
	}
	return picks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u     models.User
		picks string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Points, &picks); err != nil {
		return nil, err
	}
	p, err := unmarshalPicks(picks)
	if err != nil {
		return nil, fmt.Errorf("decode picks for user %q: %w", u.Username, err)
	}
	u.Picks = p
	return &u, nil
}

// Create inserts a new user and returns its ID.
// A duplicate username yields ErrUsernameTaken.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	picks, err := marshalPicks(u.Picks)
	if err != nil {
		return 0, fmt.Errorf("encode picks for user %q: %w", u.Username, err)
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.Name, u.Points, picks)
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	u.ID = lastID
	return lastID, nil
}

// FindAll returns every user, highest points first.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectAllUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 32)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// FindByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

func (r *UserRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countByUsernameSQL, username).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user %q: %w", username, err)
	}
	return n, nil
}

// RemoveByUsername deletes the matching user and reports how many rows went away.
func (r *UserRepository) RemoveByUsername(ctx context.Context, username string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteByUsernameSQL, username)
	if err != nil {
		return 0, fmt.Errorf("delete user %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected deleting user %q: %w", username, err)
	}
	return n, nil
}

func (r *UserRepository) RemoveAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllUsersSQL); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
