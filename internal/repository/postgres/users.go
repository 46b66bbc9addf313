package postgres

import (
	"context"
	"database/sql"
	"errors"

	"edusync/internal/model"
	"edusync/internal/repository"
)

// Users is the PostgreSQL implementation of repository.UserRepository.
type Users struct {
	*crudTable[model.User]
}

var _ repository.UserRepository = (*Users)(nil)

// NewUsers creates the users repository.
func NewUsers(db *sql.DB) *Users {
	return &Users{crudTable: newCrudTable[model.User](
		db,
		"users",
		[]string{"user_id", "name", "email", "role", "password_hash"},
		"",
		scanUser,
		func(u *model.User) []any {
			return []any{u.UserID, u.Name, u.Email, u.Role, u.PasswordHash}
		},
	)}
}

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(&u.UserID, &u.Name, &u.Email, &u.Role, &u.PasswordHash); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches a user by email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT user_id, name, email, role, password_hash
		FROM users
		WHERE email = $1
	`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
