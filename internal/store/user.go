package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/google/uuid"
)

// ErrEmailTaken is returned when an insert loses the race against another
// registration for the same email.
var ErrEmailTaken = errors.New("email already registered")

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userCols = `id, email, COALESCE(password_hash, ''), name, COALESCE(avatar, ''), COALESCE(google_id, ''), provider, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Avatar, &u.GoogleID, &u.Provider, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateLocal inserts a password-based account. Email must already be
// lowercased by the caller.
func (s *UserStore) CreateLocal(email, passwordHash, name string) (*model.User, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, password_hash, name, provider) VALUES (?, ?, ?, ?, ?)`,
		id, email, passwordHash, name, model.ProviderLocal,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetByID(id)
}

// CreateGoogle inserts an account with no password, backed by a Google
// identity.
func (s *UserStore) CreateGoogle(googleID, email, name, avatar string) (*model.User, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, avatar, google_id, provider) VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, name, nullable(avatar), googleID, model.ProviderGoogle,
	)
	if err != nil {
		return nil, fmt.Errorf("insert google user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByGoogleID(googleID string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE google_id = ?`, googleID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by google id: %w", err)
	}
	return u, nil
}

// LinkGoogle attaches a Google identity to an existing account, marking it
// as a federated account while keeping any local password.
func (s *UserStore) LinkGoogle(id, googleID, avatar string) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET google_id = ?, avatar = ?, provider = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		googleID, nullable(avatar), model.ProviderGoogle, id,
	)
	if err != nil {
		return nil, fmt.Errorf("link google: %w", err)
	}
	return s.GetByID(id)
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The driver exposes no typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
