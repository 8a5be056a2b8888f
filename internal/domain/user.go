package domain

import (
	"strings"
	"time"
)

// User represents a registered account.
//
// PasswordHash is empty for externally-authenticated accounts. Playback
// resume state (last played audio and offset) is not stored here; it lives
// in the resume store keyed by user id.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate validates user data.
func (u *User) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.DisplayName == "" {
		return ErrInvalidName
	}
	if len(u.DisplayName) > 100 {
		return ErrNameTooLong
	}
	return nil
}

// ResumeState is the per-user playback resume pointer.
type ResumeState struct {
	AudioID    string    `json:"audio_id"`
	OffsetSecs int       `json:"offset_secs"`
	UpdatedAt  time.Time `json:"updated_at"`
}
