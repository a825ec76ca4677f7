package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
)

var (
	// ErrVehicleNotFound indicates the referenced vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrVehicleUnavailable is returned when renting a vehicle that is
	// already rented out.
	ErrVehicleUnavailable = errors.New("vehicle already rented")
	// ErrNotRenter is returned when returning a vehicle rented by someone
	// else (or not rented at all).
	ErrNotRenter = errors.New("vehicle not rented by requester")
	// ErrVehicleRented blocks destructive operations on a rented vehicle.
	ErrVehicleRented = errors.New("vehicle is currently rented")
)

// RentalService coordinates the vehicle fleet and the rental lifecycle.
//
// Rent and Return are the only operations that change a vehicle's
// availability. Both delegate the state check and write to a single
// conditional repository update, so two racing requests on the same vehicle
// resolve to exactly one winner.
type RentalService interface {
	CreateVehicle(ctx context.Context, brand, model string, year int) (*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int64, brand, model string, year int) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
	Rent(ctx context.Context, id int64, renter string) (*domain.Vehicle, error)
	Return(ctx context.Context, id int64, renter string) (*domain.Vehicle, error)
}

type rentalService struct {
	vehicles repository.VehicleRepository
}

func NewRentalService(vehicles repository.VehicleRepository) RentalService {
	return &rentalService{vehicles: vehicles}
}

func (s *rentalService) CreateVehicle(ctx context.Context, brand, model string, year int) (*domain.Vehicle, error) {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)

	if brand == "" {
		return nil, fmt.Errorf("%w: brand is required", ErrValidation)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrValidation)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrValidation)
	}

	vehicle := &domain.Vehicle{
		Brand: brand,
		Model: model,
		Year:  year,
	}
	if _, err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *rentalService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func (s *rentalService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *rentalService) UpdateVehicle(ctx context.Context, id int64, brand, model string, year int) (*domain.Vehicle, error) {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)

	if brand == "" {
		return nil, fmt.Errorf("%w: brand is required", ErrValidation)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model is required", ErrValidation)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year is required", ErrValidation)
	}

	if err := s.vehicles.UpdateDetails(ctx, id, brand, model, year); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return s.GetVehicle(ctx, id)
}

func (s *rentalService) DeleteVehicle(ctx context.Context, id int64) error {
	deleted, err := s.vehicles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	// The conditional delete refuses rented vehicles; look at the row to
	// tell a rented vehicle from a missing one.
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return err
	}
	return ErrVehicleRented
}

func (s *rentalService) Rent(ctx context.Context, id int64, renter string) (*domain.Vehicle, error) {
	renter = strings.TrimSpace(renter)
	if renter == "" {
		return nil, fmt.Errorf("%w: renter is required", ErrValidation)
	}

	rented, err := s.vehicles.MarkRented(ctx, id, renter)
	if err != nil {
		return nil, err
	}
	if !rented {
		// Losing the conditional update means either the vehicle does not
		// exist or someone else holds it.
		if _, err := s.GetVehicle(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrVehicleUnavailable
	}

	return s.GetVehicle(ctx, id)
}

func (s *rentalService) Return(ctx context.Context, id int64, renter string) (*domain.Vehicle, error) {
	renter = strings.TrimSpace(renter)
	if renter == "" {
		return nil, fmt.Errorf("%w: renter is required", ErrValidation)
	}

	returned, err := s.vehicles.MarkReturned(ctx, id, renter)
	if err != nil {
		return nil, err
	}
	if !returned {
		if _, err := s.GetVehicle(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotRenter
	}

	return s.GetVehicle(ctx, id)
}
