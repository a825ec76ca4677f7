package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func initRepos(t *testing.T, db *sql.DB) (*PersonRepository, *VehicleRepository) {
	t.Helper()

	ctx := context.Background()
	people := NewPersonRepository(db).(*PersonRepository)
	vehicles := NewVehicleRepository(db).(*VehicleRepository)
	require.NoError(t, people.Init(ctx))
	require.NoError(t, vehicles.Init(ctx))
	return people, vehicles
}
