package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Setting keys.
const (
	SettingJWTSecret  = "jwt_secret"
	SettingSessionTTL = "session_ttl_hours"
)

// DefaultSessionTTL applies until an admin changes it.
const DefaultSessionTTL = 24 * time.Hour

// MaxSessionTTLHours is the longest session lifetime that can be stored.
const MaxSessionTTLHours = 24 * 365

// GetSetting returns the value stored under key, or "" if it is unset.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// GetSessionTTL returns how long issued session tokens stay valid.
func GetSessionTTL(ctx context.Context, db *sql.DB) (time.Duration, error) {
	value, err := GetSetting(ctx, db, SettingSessionTTL)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return DefaultSessionTTL, nil
	}
	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 || hours > MaxSessionTTLHours {
		return DefaultSessionTTL, nil
	}
	return time.Duration(hours) * time.Hour, nil
}

// SetSessionTTL stores the session lifetime in whole hours.
func SetSessionTTL(ctx context.Context, db *sql.DB, hours int) error {
	if hours <= 0 || hours > MaxSessionTTLHours {
		return fmt.Errorf("session lifetime must be between 1 and %d hours", MaxSessionTTLHours)
	}
	return SetSetting(ctx, db, SettingSessionTTL, strconv.Itoa(hours))
}

// GetJWTSecret returns the token signing secret, generating one on first use.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		SettingJWTSecret, hex.EncodeToString(buf),
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}

	secret, err := GetSetting(ctx, db, SettingJWTSecret)
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", fmt.Errorf("jwt secret missing after insert")
	}
	return secret, nil
}
