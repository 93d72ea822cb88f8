package memory

import (
	"testing"

	"pet-adoption/internal/adapters/storage/storagetest"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

func TestMemoryRepos(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (pets.Repository, adoptions.Repository) {
		db := NewDB()
		return NewPetRepo(db), NewAdoptionRepo(db)
	})
}
