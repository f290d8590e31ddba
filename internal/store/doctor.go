package store

import (
	"database/sql"
	"fmt"

	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/google/uuid"
)

type DoctorStore struct {
	db *sql.DB
}

func NewDoctorStore(db *sql.DB) *DoctorStore {
	return &DoctorStore{db: db}
}

const doctorCols = `id, user_id, name, specialty, phone, email, created_at, updated_at`

func scanDoctor(scanner interface{ Scan(...any) error }) (*model.Doctor, error) {
	var d model.Doctor
	err := scanner.Scan(&d.ID, &d.UserID, &d.Name, &d.Specialty, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DoctorStore) Create(userID, name, specialty, phone, email string) (*model.Doctor, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO doctors (id, user_id, name, specialty, phone, email) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, name, specialty, phone, email,
	)
	if err != nil {
		return nil, fmt.Errorf("insert doctor: %w", err)
	}
	return s.GetByID(userID, id)
}

func (s *DoctorStore) List(userID string) ([]model.Doctor, error) {
	rows, err := s.db.Query(`SELECT `+doctorCols+` FROM doctors WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []model.Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, *d)
	}
	return doctors, rows.Err()
}

func (s *DoctorStore) GetByID(userID, id string) (*model.Doctor, error) {
	row := s.db.QueryRow(`SELECT `+doctorCols+` FROM doctors WHERE id = ? AND user_id = ?`, id, userID)
	d, err := scanDoctor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *DoctorStore) Update(userID, id, name, specialty, phone, email string) (*model.Doctor, error) {
	_, err := s.db.Exec(
		`UPDATE doctors SET name = ?, specialty = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		name, specialty, phone, email, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return s.GetByID(userID, id)
}

func (s *DoctorStore) Delete(userID, id string) error {
	_, err := s.db.Exec(`DELETE FROM doctors WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}
