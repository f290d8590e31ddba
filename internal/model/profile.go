package model

import "time"

// MaxProfilesPerUser caps how many dependent profiles one account may own.
const MaxProfilesPerUser = 6

// Profile is a dependent family member owned by a user account.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
