package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
)

func TestPersonRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	people, _ := initRepos(t, newTestDB(t))

	person := &domain.Person{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fakehash",
	}
	id, err := people.Create(ctx, person)
	require.NoError(t, err)
	assert.Positive(t, id)

	byEmail, err := people.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "Alice", byEmail.Name)
	assert.Equal(t, "$2a$10$fakehash", byEmail.PasswordHash)

	byID, err := people.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestPersonRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	people, _ := initRepos(t, newTestDB(t))

	_, err := people.Create(ctx, &domain.Person{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = people.Create(ctx, &domain.Person{Name: "Other Alice", Email: "alice@example.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// the rejected insert must not change the store
	all, err := people.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Alice", all[0].Name)
}

func TestPersonRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	people, _ := initRepos(t, newTestDB(t))

	_, err := people.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = people.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
