package store

import (
	"database/sql"
	"fmt"

	"github.com/RajSapale04/Meditrack/internal/model"
	"github.com/google/uuid"
)

type MedicationStore struct {
	db *sql.DB
}

func NewMedicationStore(db *sql.DB) *MedicationStore {
	return &MedicationStore{db: db}
}

const medicationCols = `m.id, m.profile_id, m.name, m.dosage, m.frequency, m.timing, m.food_timing, m.duration, m.start_date, m.end_date, m.status, m.doctor_id, m.notes, m.created_at, m.updated_at`

func scanMedication(scanner interface{ Scan(...any) error }) (*model.Medication, error) {
	var m model.Medication
	err := scanner.Scan(&m.ID, &m.ProfileID, &m.Name, &m.Dosage, &m.Frequency, &m.Timing, &m.FoodTiming, &m.Duration, &m.StartDate, &m.EndDate, &m.Status, &m.DoctorID, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a medication under a profile. Ownership of the profile is
// checked by the caller via ProfileStore.
func (s *MedicationStore) Create(m *model.Medication) (*model.Medication, error) {
	m.ID = uuid.NewString()
	if m.Status == "" {
		m.Status = model.MedicationActive
	}
	_, err := s.db.Exec(
		`INSERT INTO medications (id, profile_id, name, dosage, frequency, timing, food_timing, duration, start_date, end_date, status, doctor_id, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProfileID, m.Name, m.Dosage, m.Frequency, m.Timing, m.FoodTiming, m.Duration, m.StartDate, m.EndDate, m.Status, m.DoctorID, m.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert medication: %w", err)
	}
	return s.getByID(m.ID)
}

// ListByProfile returns all medications for one profile, newest course first.
func (s *MedicationStore) ListByProfile(profileID string) ([]model.Medication, error) {
	rows, err := s.db.Query(
		`SELECT `+medicationCols+` FROM medications m WHERE m.profile_id = ? ORDER BY m.created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("query medications: %w", err)
	}
	defer rows.Close()

	var meds []model.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		meds = append(meds, *m)
	}
	return meds, rows.Err()
}

// GetForUser returns the medication only if its profile belongs to userID.
func (s *MedicationStore) GetForUser(userID, id string) (*model.Medication, error) {
	row := s.db.QueryRow(
		`SELECT `+medicationCols+` FROM medications m
		 JOIN profiles p ON p.id = m.profile_id
		 WHERE m.id = ? AND p.user_id = ?`,
		id, userID,
	)
	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return m, nil
}

// Update replaces all mutable fields. Partial updates are resolved by the
// caller against the existing record.
func (s *MedicationStore) Update(m *model.Medication) (*model.Medication, error) {
	_, err := s.db.Exec(
		`UPDATE medications SET name = ?, dosage = ?, frequency = ?, timing = ?, food_timing = ?, duration = ?, start_date = ?, end_date = ?, status = ?, doctor_id = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		m.Name, m.Dosage, m.Frequency, m.Timing, m.FoodTiming, m.Duration, m.StartDate, m.EndDate, m.Status, m.DoctorID, m.Notes, m.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update medication: %w", err)
	}
	return s.getByID(m.ID)
}

func (s *MedicationStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM medications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	return nil
}

func (s *MedicationStore) getByID(id string) (*model.Medication, error) {
	row := s.db.QueryRow(`SELECT `+medicationCols+` FROM medications m WHERE m.id = ?`, id)
	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return m, nil
}
