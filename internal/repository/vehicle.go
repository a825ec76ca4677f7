package repository

import (
	"context"

	"fleet-rental/internal/domain"
)

// VehicleRepository exposes persistence operations for Vehicle records.
//
// MarkRented and MarkReturned are conditional updates: they mutate the row
// only when its current state matches the expected precondition and report
// whether a row was matched. This is the serialization point that keeps two
// racing rent requests from both succeeding on the same vehicle.
type VehicleRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, vehicle *domain.Vehicle) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	UpdateDetails(ctx context.Context, id int64, brand, model string, year int) error
	// Delete removes a vehicle only while it is available; it reports
	// whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// MarkRented flips an available vehicle to rented by the given renter.
	MarkRented(ctx context.Context, id int64, renter string) (bool, error)
	// MarkReturned flips a vehicle back to available, but only when it is
	// currently rented by the given renter.
	MarkReturned(ctx context.Context, id int64, renter string) (bool, error)
}
