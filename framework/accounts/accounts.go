// Package accounts stores registered users in sqlite and checks their
// credentials. Values reaching it have already passed the submission gate.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrExists is returned when the username or email is already registered.
	ErrExists = errors.New("account already exists")
	// ErrInvalidCredentials is returned when authentication fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned by lookups that match no account.
	ErrNotFound = errors.New("account not found")
)

// User is a registered account.
type User struct {
	ID          string
	Username    string
	Email       string
	CreatedAt   time.Time
	LastLoginAt time.Time // zero until the first login
}

// Store is the account repository.
type Store struct {
	db   *sql.DB
	cost int
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (and migrates) the store at path. Use MemoryPath for a
// throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Register creates an account. Usernames and emails are unique; emails are
// compared lower-cased.
func (s *Store) Register(ctx context.Context, username, email, password string) (*User, error) {
	email = strings.ToLower(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email and password are required")
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username = ? OR email = ?", username, email).Scan(&one)
	if err == nil {
		return nil, ErrExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO users(id, username, email, password_hash, created_at) VALUES(?, ?, ?, ?, ?)
`, u.ID, u.Username, u.Email, hash, u.CreatedAt.Unix()); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrExists
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username and password and records the login.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, hash, err := s.lookup(ctx, "username", username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, hash) {
		return nil, ErrInvalidCredentials
	}

	u.LastLoginAt = s.now().UTC().Truncate(time.Second)
	if _, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = ? WHERE id = ?", u.LastLoginAt.Unix(), u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Lookup finds an account by id.
func (s *Store) Lookup(ctx context.Context, id string) (*User, error) {
	u, _, err := s.lookup(ctx, "id", id)
	return u, err
}

// Count returns the number of accounts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// lookup selects one user by a fixed column name.
func (s *Store) lookup(ctx context.Context, column, value string) (*User, string, error) {
	var query string
	switch column {
	case "id":
		query = "SELECT id, username, email, password_hash, created_at, last_login_at FROM users WHERE id = ?"
	case "username":
		query = "SELECT id, username, email, password_hash, created_at, last_login_at FROM users WHERE username = ?"
	default:
		return nil, "", errors.New("accounts: unsupported lookup column " + column)
	}

	var (
		u         User
		hash      string
		createdAt int64
		lastLogin sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, query, value).Scan(&u.ID, &u.Username, &u.Email, &hash, &createdAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	if lastLogin.Valid {
		u.LastLoginAt = time.Unix(lastLogin.Int64, 0).UTC()
	}
	return &u, hash, nil
}
