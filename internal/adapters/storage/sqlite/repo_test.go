package sqlite

import (
	"path/filepath"
	"testing"

	"pet-adoption/internal/adapters/storage/storagetest"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"

	"github.com/stretchr/testify/require"
)

func TestSQLiteRepos(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (pets.Repository, adoptions.Repository) {
		db, err := Open(filepath.Join(t.TempDir(), "pets.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return NewPetsRepo(db), NewAdoptionsRepo(db)
	})
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, 1, applied)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}
