package model

import "time"

// Prescription is an uploaded prescription record for a profile. Only
// metadata is kept; content extraction is handled elsewhere, if at all.
type Prescription struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	FileName   string    `json:"file_name"`
	DoctorName string    `json:"doctor_name"`
	IssuedOn   string    `json:"issued_on"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
