package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// User identifies a Navidrome account annotations belong to.
type User struct {
	ID      string
	Name    string
	IsAdmin bool
}

const userColumns = "id, user_name, is_admin"

func scanUser(scanner interface{ Scan(dest ...any) error }) (*User, error) {
	var (
		id      string
		name    sql.NullString
		isAdmin sql.NullBool
	)
	if err := scanner.Scan(&id, &name, &isAdmin); err != nil {
		return nil, err
	}
	return &User{ID: id, Name: name.String, IsAdmin: isAdmin.Bool}, nil
}

// Users lists all accounts ordered by name.
func (s *Store) Users(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM user ORDER BY user_name`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UserByID fetches one account; nil means no such user.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM user WHERE id = ?`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
