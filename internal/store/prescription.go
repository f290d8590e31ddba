package store

import (
	"database/sql"
	"fmt"

	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/google/uuid"
)

type PrescriptionStore struct {
	db *sql.DB
}

func NewPrescriptionStore(db *sql.DB) *PrescriptionStore {
	return &PrescriptionStore{db: db}
}

const prescriptionCols = `r.id, r.profile_id, r.file_name, r.doctor_name, r.issued_on, r.notes, r.created_at`

func scanPrescription(scanner interface{ Scan(...any) error }) (*model.Prescription, error) {
	var p model.Prescription
	err := scanner.Scan(&p.ID, &p.ProfileID, &p.FileName, &p.DoctorName, &p.IssuedOn, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PrescriptionStore) Create(profileID, fileName, doctorName, issuedOn, notes string) (*model.Prescription, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO prescriptions (id, profile_id, file_name, doctor_name, issued_on, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		id, profileID, fileName, doctorName, issuedOn, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert prescription: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+prescriptionCols+` FROM prescriptions r WHERE r.id = ?`, id)
	p, err := scanPrescription(row)
	if err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

// ListByProfile returns prescriptions for one profile, newest first.
func (s *PrescriptionStore) ListByProfile(profileID string) ([]model.Prescription, error) {
	rows, err := s.db.Query(
		`SELECT `+prescriptionCols+` FROM prescriptions r WHERE r.profile_id = ? ORDER BY r.created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []model.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, *p)
	}
	return prescriptions, rows.Err()
}

// GetForUser returns the prescription only if its profile belongs to userID.
func (s *PrescriptionStore) GetForUser(userID, id string) (*model.Prescription, error) {
	row := s.db.QueryRow(
		`SELECT `+prescriptionCols+` FROM prescriptions r
		 JOIN profiles p ON p.id = r.profile_id
		 WHERE r.id = ? AND p.user_id = ?`,
		id, userID,
	)
	p, err := scanPrescription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

func (s *PrescriptionStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM prescriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	return nil
}
