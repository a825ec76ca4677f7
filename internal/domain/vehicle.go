package domain

import "time"

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityRented    Availability = "rented"
)

// Vehicle represents a rentable asset tracked by the system.
// RentedBy is set if and only if Availability is AvailabilityRented.
type Vehicle struct {
	ID           int64
	Brand        string
	Model        string
	Year         int
	Availability Availability
	RentedBy     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
