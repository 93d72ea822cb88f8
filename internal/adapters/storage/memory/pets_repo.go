package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption/internal/domain/pets"
)

type petRepo struct {
	db *DB
}

func NewPetRepo(db *DB) pets.Repository {
	return &petRepo{db: db}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.db.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.db.pets[p.ID] = p
	r.db.petOrder = append(r.db.petOrder, p.ID)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.db.petOrder))
	for _, id := range r.db.petOrder {
		p := r.db.pets[id]
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete borra la mascota y en cascada sus solicitudes.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.pets[id]; !ok {
		return pets.ErrNotFound
	}

	for _, reqID := range append([]string(nil), r.db.requestOrder...) {
		if r.db.requests[reqID].PetID != id {
			continue
		}
		delete(r.db.requests, reqID)
		r.db.requestOrder = removeID(r.db.requestOrder, reqID)
	}

	delete(r.db.pets, id)
	r.db.petOrder = removeID(r.db.petOrder, id)
	return nil
}
