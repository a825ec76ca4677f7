package repository

import (
	"context"

	"fleet-rental/internal/domain"
)

// PersonRepository defines persistence operations for Person entities.
type PersonRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, person *domain.Person) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
}
