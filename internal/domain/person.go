package domain

import "time"

// Person represents a registered renter of the fleet.
type Person struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
