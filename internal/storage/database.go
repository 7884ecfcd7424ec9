package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pasquale/wortschatz/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// CreateUser inserts a new learner and returns it with its assigned id.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	now := time.Now()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, username, email, passwordHash, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user %s: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for user %s: %w", username, err)
	}
	return &domain.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// FindUserByUsername retrieves a learner by username.
func (db *DB) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?
	`, username)

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	return &u, nil
}

// UsernameExists reports whether a learner with the username is registered.
func (db *DB) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check username %s: %w", username, err)
	}
	return n > 0, nil
}

// EmailExists reports whether a learner with the email is registered.
func (db *DB) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return n > 0, nil
}

// SeenNoteIDs returns the full set of note ids already served to the learner.
func (db *DB) SeenNoteIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT anki_note_id FROM seen_words WHERE user_id = ?
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seen words for user %d: %w", userID, err)
	}
	defer rows.Close()

	seen := make(map[int64]struct{})
	for rows.Next() {
		var noteID int64
		if err := rows.Scan(&noteID); err != nil {
			return nil, fmt.Errorf("failed to scan seen word row: %w", err)
		}
		seen[noteID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seen words for user %d: %w", userID, err)
	}
	return seen, nil
}

// RecordSeen appends the note ids to the learner's seen set in one
// transaction. A note already recorded for the learner is absorbed by the
// unique constraint rather than failing the batch.
func (db *DB) RecordSeen(ctx context.Context, userID int64, noteIDs []int64) error {
	if len(noteIDs) == 0 {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seen-words transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, noteID := range noteIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO seen_words (user_id, anki_note_id, added_at)
			VALUES (?, ?, ?)
		`, userID, noteID, now)
		if err != nil {
			return fmt.Errorf("failed to record seen word %d for user %d: %w", noteID, userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen words for user %d: %w", userID, err)
	}
	return nil
}
