package domain

import "time"

// Profile identifies an agent for display and attribution. Comments and audit
// entries reference profiles; a missing profile is tolerated at read time.
type Profile struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
