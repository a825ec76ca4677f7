package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-rental/internal/auth"
	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPersonExists is returned when registering with an email that is
	// already taken.
	ErrPersonExists = errors.New("person already registered")
)

// PersonService describes person lifecycle operations.
type PersonService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Person, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Person, error)
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
}

type personService struct {
	people repository.PersonRepository
	hasher *auth.PasswordHasher
}

func NewPersonService(people repository.PersonRepository, hasher *auth.PasswordHasher) PersonService {
	return &personService{
		people: people,
		hasher: hasher,
	}
}

func (s *personService) Register(ctx context.Context, name, email, password string) (*domain.Person, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	person := &domain.Person{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if _, err := s.people.Create(ctx, person); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrPersonExists
		}
		return nil, err
	}

	return sanitizePerson(person), nil
}

func (s *personService) Authenticate(ctx context.Context, email, password string) (*domain.Person, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	person, err := s.people.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, person.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizePerson(person), nil
}

func (s *personService) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizePerson(person), nil
}

func (s *personService) List(ctx context.Context) ([]domain.Person, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]domain.Person, len(people))
	for i := range people {
		sanitized[i] = *sanitizePerson(&people[i])
	}
	return sanitized, nil
}

func sanitizePerson(person *domain.Person) *domain.Person {
	if person == nil {
		return nil
	}
	return &domain.Person{
		ID:        person.ID,
		Name:      person.Name,
		Email:     person.Email,
		CreatedAt: person.CreatedAt,
		UpdatedAt: person.UpdatedAt,
	}
}
