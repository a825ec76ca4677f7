package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
)

const createPeopleTable = `
CREATE TABLE IF NOT EXISTS people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) repository.PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPeopleTable); err != nil {
		return fmt.Errorf("create people table: %w", err)
	}
	return nil
}

func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) (int64, error) {
	now := time.Now().UTC()
	person.CreatedAt = now
	person.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO people (name, email, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		person.Name,
		person.Email,
		person.PasswordHash,
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, repository.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("person last insert id: %w", err)
	}
	person.ID = id
	return id, nil
}

func (r *PersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM people
WHERE email = ?`,
		email,
	)
	return scanPerson(row)
}

func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM people
WHERE id = ?`,
		id,
	)
	return scanPerson(row)
}

func (r *PersonRepository) List(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, password_hash, created_at, updated_at
FROM people
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []domain.Person
	for rows.Next() {
		var person domain.Person
		if err := rows.Scan(
			&person.ID,
			&person.Name,
			&person.Email,
			&person.PasswordHash,
			&person.CreatedAt,
			&person.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

func scanPerson(row interface {
	Scan(dest ...any) error
}) (*domain.Person, error) {
	var person domain.Person
	if err := row.Scan(
		&person.ID,
		&person.Name,
		&person.Email,
		&person.PasswordHash,
		&person.CreatedAt,
		&person.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}
	return &person, nil
}
