package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stash/internal/services"
)

const userColumns = "id, username, hashed_password, created_at"

// CreateUser inserts a new account. A duplicate username returns an error
// matching services.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, username, hashedPassword string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}
	if hashedPassword == "" {
		return nil, errors.New("hashed password required")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (username, hashed_password, created_at) VALUES (?, ?, ?)`,
		username, hashedPassword, timestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, services.Wrap(services.ErrConflict, "store", "create user", username, err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.UserByID(ctx, id)
}

// UserByUsername returns the account with the given username, or nil.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.userRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// UserByID returns the account with the given identifier, or nil.
func (s *Store) UserByID(ctx context.Context, id int64) (*User, error) {
	return s.userRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *Store) userRow(ctx context.Context, query string, args ...any) (*User, error) {
	row := s.db.QueryRowContext(ctx, query, args...)

	var (
		id         int64
		username   string
		hashed     string
		createdRaw string
	)
	err := row.Scan(&id, &username, &hashed, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user := &User{ID: id, Username: username, HashedPassword: hashed}
	if created, err := parseTimeString(createdRaw); err == nil {
		user.CreatedAt = created
	}
	return user, nil
}
