package adoptions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/uploads"
)

// -------------------------
// Fakes
// -------------------------

// testStore hace de tabla de mascotas y de solicitudes, con el mismo contrato
// que los adapters reales (Create exige mascota, Approve atómico).
type testStore struct {
	mu   sync.Mutex
	pets map[string]pets.Pet
	reqs map[string]Request
}

func newTestStore() *testStore {
	return &testStore{pets: map[string]pets.Pet{}, reqs: map[string]Request{}}
}

func (s *testStore) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

type testRepo struct{ s *testStore }

func (r testRepo) Create(ctx context.Context, req Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[req.PetID]; !ok {
		return pets.ErrNotFound
	}
	r.s.reqs[req.ID] = req
	return nil
}

func (r testRepo) GetByID(ctx context.Context, id string) (Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.reqs[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (r testRepo) List(ctx context.Context) ([]Request, error) {
	return r.ListByPet(ctx, "")
}

func (r testRepo) ListByPet(ctx context.Context, petID string) ([]Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]Request, 0, len(r.s.reqs))
	for _, req := range r.s.reqs {
		if petID == "" || req.PetID == petID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r testRepo) Approve(ctx context.Context, requestID string) (Approval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.reqs[requestID]
	if !ok {
		return Approval{}, nil
	}
	delete(r.s.reqs, requestID)

	res := Approval{Applied: true, RequestID: requestID, PetID: req.PetID}
	if p, ok := r.s.pets[req.PetID]; ok {
		p.Status = pets.StatusAdopted
		r.s.pets[req.PetID] = p
		res.PetAdopted = true
	}
	return res, nil
}

type testFiles struct {
	saved []string
}

func (f *testFiles) Save(ctx context.Context, att *uploads.Attachment) (string, error) {
	if att == nil {
		return "", uploads.ErrNoFileProvided
	}
	f.saved = append(f.saved, att.Filename)
	return att.Filename, nil
}

func proof(name string) *uploads.Attachment {
	return &uploads.Attachment{Filename: name, Content: strings.NewReader("pdf")}
}

func newTestService() (*Service, *testStore, *testFiles) {
	store := newTestStore()
	store.pets["rex"] = pets.Pet{ID: "rex", Name: "Rex", Status: pets.StatusAvailable}
	files := &testFiles{}
	return NewService(testRepo{s: store}, store, files), store, files
}

// -------------------------
// Tests
// -------------------------

func TestSubmit_CreatesRequest(t *testing.T) {
	svc, store, files := newTestService()

	req, err := svc.Submit(context.Background(), SubmitInput{
		PetID:       "rex",
		AdopterName: " Ann ",
		Email:       "ann@x.co",
		IDProof:     proof("ann.pdf"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if req.ID == "" || req.PetID != "rex" || req.AdopterName != "Ann" || req.Email != "ann@x.co" || req.IDProof != "ann.pdf" {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt set")
	}
	if _, ok := store.reqs[req.ID]; !ok || len(files.saved) != 1 {
		t.Fatalf("expected request and file persisted")
	}
}

func TestSubmit_InvalidEmailWritesNothing(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@b", "", "ann@x.c", " ann@x.co ", "ann@x.co\n"} {
		svc, store, files := newTestService()

		_, err := svc.Submit(context.Background(), SubmitInput{PetID: "rex", AdopterName: "Ann", Email: email, IDProof: proof("id.pdf")})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
		if len(store.reqs) != 0 || len(files.saved) != 0 {
			t.Fatalf("email %q: nothing must be stored", email)
		}
	}
}

func TestSubmit_UnknownPet(t *testing.T) {
	svc, _, files := newTestService()

	_, err := svc.Submit(context.Background(), SubmitInput{PetID: "ghost", Email: "ann@x.co", IDProof: proof("id.pdf")})
	if !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}
	if len(files.saved) != 0 {
		t.Fatalf("no file must be written for unknown pet")
	}
}

func TestSubmit_AdoptedPetRejected(t *testing.T) {
	svc, store, files := newTestService()
	store.pets["max"] = pets.Pet{ID: "max", Name: "Max", Status: pets.StatusAdopted}

	_, err := svc.Submit(context.Background(), SubmitInput{PetID: "max", Email: "ann@x.co", IDProof: proof("id.pdf")})
	if !errors.Is(err, ErrPetNotAvailable) {
		t.Fatalf("expected ErrPetNotAvailable, got %v", err)
	}
	if len(store.reqs) != 0 || len(files.saved) != 0 {
		t.Fatalf("nothing must be stored for adopted pet")
	}
}

func TestSubmit_MissingFile(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Submit(context.Background(), SubmitInput{PetID: "rex", Email: "ann@x.co"})
	if !errors.Is(err, uploads.ErrNoFileProvided) {
		t.Fatalf("expected ErrNoFileProvided, got %v", err)
	}
	if len(store.reqs) != 0 {
		t.Fatalf("no request without attachment")
	}
}

func TestApprove_AdoptsAndConsumes(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	req, err := svc.Submit(ctx, SubmitInput{PetID: "rex", AdopterName: "Ann", Email: "ann@x.co", IDProof: proof("id.pdf")})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	res, err := svc.Approve(ctx, req.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !res.Applied || !res.PetAdopted || res.PetID != "rex" {
		t.Fatalf("unexpected approval %+v", res)
	}
	if store.pets["rex"].Status != pets.StatusAdopted {
		t.Fatalf("expected rex adopted")
	}
	if _, err := svc.GetByID(ctx, req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected request consumed, got %v", err)
	}

	// segunda vez: no-op sin error
	res, err = svc.Approve(ctx, req.ID)
	if err != nil || res.Applied {
		t.Fatalf("expected no-op, got %+v err=%v", res, err)
	}
}

func TestApprove_UnknownAndBlankAreNoOps(t *testing.T) {
	svc, _, _ := newTestService()

	for _, id := range []string{"missing", "", "   "} {
		res, err := svc.Approve(context.Background(), id)
		if err != nil || res.Applied {
			t.Fatalf("id %q: expected no-op, got %+v err=%v", id, res, err)
		}
	}
}

func TestListByPet(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	store.pets["luna"] = pets.Pet{ID: "luna", Name: "Luna", Status: pets.StatusAvailable}

	for _, petID := range []string{"rex", "rex", "luna"} {
		if _, err := svc.Submit(ctx, SubmitInput{PetID: petID, Email: "ann@x.co", IDProof: proof("id.pdf")}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	rex, err := svc.ListByPet(ctx, "rex")
	if err != nil || len(rex) != 2 {
		t.Fatalf("expected 2 requests for rex, got %d err=%v", len(rex), err)
	}
	all, err := svc.List(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 requests, got %d err=%v", len(all), err)
	}
}
