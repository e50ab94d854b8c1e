package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/milasset/internal/model"
)

const userColumns = `id, name, email, role, base_id, password_hash, avatar IS NOT NULL, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	u := &model.User{}
	var baseID sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &baseID, &u.PasswordHash, &u.HasAvatar, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.BaseID = baseID.String
	return u, nil
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email, ignoring case.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns the user directory.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY CAST(id AS INTEGER), id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserPassword sets a user's password hash. An empty hash turns the
// account back into a demo account.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// SetUserAvatar stores a processed JPEG avatar for a user.
func SetUserAvatar(ctx context.Context, db *sql.DB, id string, image []byte) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET avatar = ? WHERE id = ?`,
		image, id,
	)
	if err != nil {
		return fmt.Errorf("setting user avatar: %w", err)
	}
	return nil
}

// GetUserAvatar returns a user's avatar, or nil if none is set.
func GetUserAvatar(ctx context.Context, db *sql.DB, id string) ([]byte, error) {
	var image []byte
	err := db.QueryRowContext(ctx,
		`SELECT avatar FROM users WHERE id = ?`, id,
	).Scan(&image)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user avatar: %w", err)
	}
	return image, nil
}
