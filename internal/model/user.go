package model

import "time"

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is a registered account. PasswordHash is empty for Google-only
// accounts and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar,omitempty"`
	GoogleID     string    `json:"-"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
