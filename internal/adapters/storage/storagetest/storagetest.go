// Package storagetest es la batería de contrato que todo adapter de storage tiene que pasar.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Factory devuelve repos vacíos que comparten el mismo backend.
type Factory func(t *testing.T) (pets.Repository, adoptions.Repository)

func Run(t *testing.T, newRepos Factory) {
	t.Run("ListFiltersByStatusInInsertionOrder", func(t *testing.T) { listFilters(t, newRepos) })
	t.Run("GetByIDNotFound", func(t *testing.T) { getNotFound(t, newRepos) })
	t.Run("CreateRequestRequiresPet", func(t *testing.T) { requestRequiresPet(t, newRepos) })
	t.Run("ApproveAdoptsAndConsumes", func(t *testing.T) { approveAdopts(t, newRepos) })
	t.Run("ApproveTwiceIsNoop", func(t *testing.T) { approveTwice(t, newRepos) })
	t.Run("ConcurrentApproveAppliesOnce", func(t *testing.T) { approveConcurrent(t, newRepos) })
	t.Run("DeleteCascadesRequests", func(t *testing.T) { deleteCascades(t, newRepos) })
}

var base = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func newPet(name string, offset int) pets.Pet {
	return pets.Pet{
		ID:             uuid.NewString(),
		Name:           name,
		Breed:          "Lab",
		Photo:          name + ".jpg",
		MedicalHistory: pets.DefaultMedicalHistory,
		Status:         pets.StatusAvailable,
		CreatedAt:      base.Add(time.Duration(offset) * time.Minute),
	}
}

func newRequest(petID string, offset int) adoptions.Request {
	return adoptions.Request{
		ID:          uuid.NewString(),
		PetID:       petID,
		AdopterName: "Ann",
		Email:       "ann@x.co",
		IDProof:     "id.png",
		CreatedAt:   base.Add(time.Duration(offset) * time.Minute),
	}
}

func listFilters(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	rex, milo, luna := newPet("Rex", 0), newPet("Milo", 1), newPet("Luna", 2)
	for _, p := range []pets.Pet{rex, milo, luna} {
		require.NoError(t, petRepo.Create(ctx, p))
	}

	req := newRequest(milo.ID, 3)
	require.NoError(t, reqRepo.Create(ctx, req))
	_, err := reqRepo.Approve(ctx, req.ID)
	require.NoError(t, err)

	all, err := petRepo.List(ctx, pets.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"Rex", "Milo", "Luna"}, names(all))

	available, err := petRepo.List(ctx, pets.ListFilter{Status: pets.StatusAvailable})
	require.NoError(t, err)
	require.Equal(t, []string{"Rex", "Luna"}, names(available))

	got, err := petRepo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.Equal(t, rex.Name, got.Name)
	require.Equal(t, rex.MedicalHistory, got.MedicalHistory)
	require.True(t, rex.CreatedAt.Equal(got.CreatedAt))
}

func getNotFound(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	_, err := petRepo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, pets.ErrNotFound)

	_, err = reqRepo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, adoptions.ErrNotFound)
}

func requestRequiresPet(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	_, reqRepo := newRepos(t)

	err := reqRepo.Create(ctx, newRequest(uuid.NewString(), 0))
	require.ErrorIs(t, err, pets.ErrNotFound)

	all, err := reqRepo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func approveAdopts(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	rex := newPet("Rex", 0)
	require.NoError(t, petRepo.Create(ctx, rex))
	req := newRequest(rex.ID, 1)
	require.NoError(t, reqRepo.Create(ctx, req))

	res, err := reqRepo.Approve(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.True(t, res.PetAdopted)
	require.Equal(t, rex.ID, res.PetID)

	got, err := petRepo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.Equal(t, pets.StatusAdopted, got.Status)

	_, err = reqRepo.GetByID(ctx, req.ID)
	require.ErrorIs(t, err, adoptions.ErrNotFound)
}

func approveTwice(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	rex := newPet("Rex", 0)
	require.NoError(t, petRepo.Create(ctx, rex))
	req := newRequest(rex.ID, 1)
	require.NoError(t, reqRepo.Create(ctx, req))

	first, err := reqRepo.Approve(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, first.Applied)

	second, err := reqRepo.Approve(ctx, req.ID)
	require.NoError(t, err)
	require.False(t, second.Applied)

	unknown, err := reqRepo.Approve(ctx, uuid.NewString())
	require.NoError(t, err)
	require.False(t, unknown.Applied)
}

func approveConcurrent(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	rex := newPet("Rex", 0)
	require.NoError(t, petRepo.Create(ctx, rex))
	req := newRequest(rex.ID, 1)
	require.NoError(t, reqRepo.Create(ctx, req))

	const workers = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := reqRepo.Approve(ctx, req.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if res.Applied {
				applied++
			}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Equal(t, 1, applied)

	got, err := petRepo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	require.Equal(t, pets.StatusAdopted, got.Status)
}

func deleteCascades(t *testing.T, newRepos Factory) {
	ctx := context.Background()
	petRepo, reqRepo := newRepos(t)

	rex, milo := newPet("Rex", 0), newPet("Milo", 1)
	require.NoError(t, petRepo.Create(ctx, rex))
	require.NoError(t, petRepo.Create(ctx, milo))
	require.NoError(t, reqRepo.Create(ctx, newRequest(rex.ID, 2)))
	require.NoError(t, reqRepo.Create(ctx, newRequest(rex.ID, 3)))
	keep := newRequest(milo.ID, 4)
	require.NoError(t, reqRepo.Create(ctx, keep))

	require.NoError(t, petRepo.Delete(ctx, rex.ID))
	require.ErrorIs(t, petRepo.Delete(ctx, rex.ID), pets.ErrNotFound)

	left, err := reqRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, keep.ID, left[0].ID)

	byPet, err := reqRepo.ListByPet(ctx, rex.ID)
	require.NoError(t, err)
	require.Empty(t, byPet)
}

func names(in []pets.Pet) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		out = append(out, p.Name)
	}
	return out
}
