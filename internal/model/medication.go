package model

import "time"

const (
	MedicationActive    = "active"
	MedicationCompleted = "completed"
	MedicationPaused    = "paused"
)

// Medication is a course of medicine attached to a profile. Dates are
// stored as YYYY-MM-DD strings and may be empty for open-ended courses.
type Medication struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	Name       string    `json:"name"`
	Dosage     string    `json:"dosage"`
	Frequency  string    `json:"frequency"`
	Timing     string    `json:"timing"`
	FoodTiming string    `json:"food_timing"`
	Duration   string    `json:"duration"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Status     string    `json:"status"`
	DoctorID   *string   `json:"doctor_id"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidMedicationStatus reports whether s is one of the allowed status values.
func ValidMedicationStatus(s string) bool {
	return s == MedicationActive || s == MedicationCompleted || s == MedicationPaused
}
