package memory

import (
	"context"
	"errors"
	"strings"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

type adoptionRepo struct {
	db *DB
}

func NewAdoptionRepo(db *DB) adoptions.Repository {
	return &adoptionRepo{db: db}
}

func (r *adoptionRepo) Create(ctx context.Context, req adoptions.Request) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.db.requests[req.ID]; exists {
		return errors.New("request already exists")
	}
	// sin huérfanos: la mascota tiene que existir al crear
	if _, ok := r.db.pets[req.PetID]; !ok {
		return pets.ErrNotFound
	}

	r.db.requests[req.ID] = req
	r.db.requestOrder = append(r.db.requestOrder, req.ID)
	return nil
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	req, ok := r.db.requests[id]
	if !ok {
		return adoptions.Request{}, adoptions.ErrNotFound
	}
	return req, nil
}

func (r *adoptionRepo) List(ctx context.Context) ([]adoptions.Request, error) {
	return r.list(""), nil
}

func (r *adoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	if petID == "" {
		return []adoptions.Request{}, nil
	}
	return r.list(petID), nil
}

func (r *adoptionRepo) list(petID string) []adoptions.Request {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]adoptions.Request, 0, len(r.db.requestOrder))
	for _, id := range r.db.requestOrder {
		req := r.db.requests[id]
		if petID != "" && req.PetID != petID {
			continue
		}
		out = append(out, req)
	}
	return out
}

func (r *adoptionRepo) Approve(ctx context.Context, requestID string) (adoptions.Approval, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	req, ok := r.db.requests[requestID]
	if !ok {
		return adoptions.Approval{}, nil
	}

	res := adoptions.Approval{Applied: true, RequestID: req.ID, PetID: req.PetID}
	if p, ok := r.db.pets[req.PetID]; ok {
		p.Status = pets.StatusAdopted
		r.db.pets[p.ID] = p
		res.PetAdopted = true
	}

	delete(r.db.requests, requestID)
	r.db.requestOrder = removeID(r.db.requestOrder, requestID)
	return res, nil
}
