package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
)

const createVehiclesTable = `
CREATE TABLE IF NOT EXISTS vehicles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	brand TEXT NOT NULL,
	model TEXT NOT NULL,
	year INTEGER NOT NULL,
	availability TEXT NOT NULL DEFAULT 'available',
	rented_by TEXT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createVehiclesTable); err != nil {
		return fmt.Errorf("create vehicles table: %w", err)
	}
	return nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (int64, error) {
	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	// New vehicles always enter the fleet available; renter binding happens
	// only through MarkRented.
	vehicle.Availability = domain.AvailabilityAvailable
	vehicle.RentedBy = nil

	res, err := r.db.ExecContext(ctx, `
INSERT INTO vehicles (brand, model, year, availability, rented_by, created_at, updated_at)
VALUES (?, ?, ?, ?, NULL, ?, ?)`,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		string(vehicle.Availability),
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("vehicle last insert id: %w", err)
	}
	vehicle.ID = id
	return id, nil
}

func (r *VehicleRepository) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, brand, model, year, availability, rented_by, created_at, updated_at
FROM vehicles
WHERE id = ?`,
		id,
	)
	return scanVehicle(row)
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, brand, model, year, availability, rented_by, created_at, updated_at
FROM vehicles
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) UpdateDetails(ctx context.Context, id int64, brand, model string, year int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE vehicles
SET brand=?, model=?, year=?, updated_at=?
WHERE id=?`,
		brand,
		model,
		year,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update vehicle details: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update vehicle details rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM vehicles
WHERE id=? AND availability=?`,
		id,
		string(domain.AvailabilityAvailable),
	)
	if err != nil {
		return false, fmt.Errorf("delete vehicle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete vehicle rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *VehicleRepository) MarkRented(ctx context.Context, id int64, renter string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE vehicles
SET availability=?, rented_by=?, updated_at=?
WHERE id=? AND availability=?`,
		string(domain.AvailabilityRented),
		renter,
		time.Now().UTC(),
		id,
		string(domain.AvailabilityAvailable),
	)
	if err != nil {
		return false, fmt.Errorf("mark vehicle rented: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark rented rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *VehicleRepository) MarkReturned(ctx context.Context, id int64, renter string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE vehicles
SET availability=?, rented_by=NULL, updated_at=?
WHERE id=? AND availability=? AND rented_by=?`,
		string(domain.AvailabilityAvailable),
		time.Now().UTC(),
		id,
		string(domain.AvailabilityRented),
		renter,
	)
	if err != nil {
		return false, fmt.Errorf("mark vehicle returned: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark returned rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanVehicle(row interface {
	Scan(dest ...any) error
}) (*domain.Vehicle, error) {
	var (
		vehicle      domain.Vehicle
		availability string
		rentedBy     sql.NullString
	)
	if err := row.Scan(
		&vehicle.ID,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.Year,
		&availability,
		&rentedBy,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	vehicle.Availability = domain.Availability(availability)
	if rentedBy.Valid {
		vehicle.RentedBy = &rentedBy.String
	}
	return &vehicle, nil
}
