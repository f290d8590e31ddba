package store

import (
	"database/sql"
	"fmt"

	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/google/uuid"
)

// ErrProfileLimit is returned when an account already owns the maximum
// number of profiles.
var ErrProfileLimit = fmt.Errorf("maximum %d profiles allowed", model.MaxProfilesPerUser)

type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileCols = `id, user_id, name, age, created_at, updated_at`

func scanProfile(scanner interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	err := scanner.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a profile for the user. The count check and insert run in
// one transaction so concurrent creates cannot race past the cap.
func (s *ProfileStore) Create(userID, name string, age int) (*model.Profile, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM profiles WHERE user_id = ?`, userID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	if count >= model.MaxProfilesPerUser {
		return nil, ErrProfileLimit
	}

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO profiles (id, user_id, name, age) VALUES (?, ?, ?, ?)`,
		id, userID, name, age,
	); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetByID(userID, id)
}

// List returns all profiles owned by the user.
func (s *ProfileStore) List(userID string) ([]model.Profile, error) {
	rows, err := s.db.Query(`SELECT `+profileCols+` FROM profiles WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// GetByID returns the profile only if it belongs to userID. A profile
// owned by another account looks identical to a missing one.
func (s *ProfileStore) GetByID(userID, id string) (*model.Profile, error) {
	row := s.db.QueryRow(`SELECT `+profileCols+` FROM profiles WHERE id = ? AND user_id = ?`, id, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update replaces name and age. Callers resolve partial updates against
// the existing record before calling.
func (s *ProfileStore) Update(userID, id, name string, age int) (*model.Profile, error) {
	_, err := s.db.Exec(
		`UPDATE profiles SET name = ?, age = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		name, age, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.GetByID(userID, id)
}

func (s *ProfileStore) Delete(userID, id string) error {
	_, err := s.db.Exec(`DELETE FROM profiles WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Count returns how many profiles the user owns.
func (s *ProfileStore) Count(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM profiles WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}
