package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-rental/internal/auth"
	"fleet-rental/internal/repository"
	"fleet-rental/internal/repository/sqlite"
)

func newTestRepos(t *testing.T) (repository.PersonRepository, repository.VehicleRepository) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	people := sqlite.NewPersonRepository(db)
	vehicles := sqlite.NewVehicleRepository(db)
	require.NoError(t, people.Init(ctx))
	require.NoError(t, vehicles.Init(ctx))
	return people, vehicles
}

func TestPersonService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	people, _ := newTestRepos(t)
	svc := NewPersonService(people, auth.NewPasswordHasher())

	person, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", person.Email)
	assert.Empty(t, person.PasswordHash, "hash must never leave the service")

	authed, err := svc.Authenticate(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, person.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)
}

func TestPersonService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	people, _ := newTestRepos(t)
	svc := NewPersonService(people, auth.NewPasswordHasher())

	_, err := svc.Register(ctx, "", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "Alice", "  ", "secret123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "Alice", "alice@example.com", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPersonService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	people, _ := newTestRepos(t)
	svc := NewPersonService(people, auth.NewPasswordHasher())

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, ErrPersonExists)
}

func TestPersonService_AuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	people, _ := newTestRepos(t)
	svc := NewPersonService(people, auth.NewPasswordHasher())

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	// wrong password and unknown email are indistinguishable
	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPersonService_ListStripsHashes(t *testing.T) {
	ctx := context.Background()
	people, _ := newTestRepos(t)
	svc := NewPersonService(people, auth.NewPasswordHasher())

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@example.com", "secret456")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, person := range all {
		assert.Empty(t, person.PasswordHash)
	}
}
