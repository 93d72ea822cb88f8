package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/platform/validate"

	"github.com/google/uuid"
)

var (
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetNotAvailable = errors.New("pet is not available for adoption")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrNotFound        = errors.New("adoption request not found")
)

// PetLookup evita depender del servicio de catálogo completo.
type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type FileStore interface {
	Save(ctx context.Context, att *uploads.Attachment) (string, error)
}

type Service struct {
	repo  Repository
	pets  PetLookup
	files FileStore
	now   func() time.Time
}

func NewService(repo Repository, petLookup PetLookup, files FileStore) *Service {
	return &Service{
		repo:  repo,
		pets:  petLookup,
		files: files,
		now:   time.Now,
	}
}

type SubmitInput struct {
	PetID       string
	AdopterName string
	Email       string
	IDProof     *uploads.Attachment
}

// Submit crea una solicitud para una mascota Available. IDProof se guarda en el
// FileStore del servicio, que no debe ser público.
// Orden importa: el email se valida antes de tocar disco, así un email inválido
// nunca deja archivo ni solicitud.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Request, error) {
	pet, err := s.pets.GetByID(ctx, strings.TrimSpace(in.PetID))
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Request{}, ErrPetNotFound
		}
		return Request{}, err
	}
	if !pet.IsAvailable() {
		return Request{}, ErrPetNotAvailable
	}

	// sin recortes: el email se guarda tal como se validó
	email := in.Email
	if !validate.IsAuthenticEmail(email) {
		return Request{}, ErrInvalidEmail
	}

	ref, err := s.files.Save(ctx, in.IDProof)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:          uuid.NewString(),
		PetID:       pet.ID,
		AdopterName: strings.TrimSpace(in.AdopterName),
		Email:       email,
		IDProof:     ref,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		// la mascota se borró entre el lookup y el insert
		if errors.Is(err, pets.ErrNotFound) {
			return Request{}, ErrPetNotFound
		}
		return Request{}, err
	}
	return req, nil
}

// Approve consume la solicitud y adopta la mascota, atómico en el repositorio.
// Id desconocido (o ya aprobado) es un no-op a propósito: no se reporta como error.
func (s *Service) Approve(ctx context.Context, requestID string) (Approval, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return Approval{}, nil
	}
	return s.repo.Approve(ctx, requestID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Request, error) {
	req, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return req, nil
}

func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Request, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}
