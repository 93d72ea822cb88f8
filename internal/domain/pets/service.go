package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/platform/uploads"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

// FileStore es lo único que el catálogo necesita del upload handler.
type FileStore interface {
	Save(ctx context.Context, att *uploads.Attachment) (string, error)
}

type Service struct {
	repo  Repository
	files FileStore
	now   func() time.Time
}

func NewService(repo Repository, files FileStore) *Service {
	return &Service{
		repo:  repo,
		files: files,
		now:   time.Now,
	}
}

type AddInput struct {
	Name           string
	Breed          string
	MedicalHistory string
	Photo          *uploads.Attachment
}

// Add guarda la foto y publica la mascota como Available.
// Los errores del upload (ErrNoFileProvided / ErrWrite) se devuelven tal cual.
func (s *Service) Add(ctx context.Context, in AddInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	photo, err := s.files.Save(ctx, in.Photo)
	if err != nil {
		return Pet{}, err
	}

	medical := strings.TrimSpace(in.MedicalHistory)
	if medical == "" {
		medical = DefaultMedicalHistory
	}

	p := Pet{
		ID:             uuid.NewString(),
		Name:           name,
		Breed:          strings.TrimSpace(in.Breed),
		Photo:          photo,
		MedicalHistory: medical,
		Status:         StatusAvailable,
		CreatedAt:      s.now().UTC(),
	}

	// si falla el insert la foto queda huérfana en disco; no se referencia, así que es solo espacio
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx, ListFilter{Status: StatusAvailable})
}

func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx, ListFilter{})
}

// Remove borra la mascota y, por cascada del repositorio, sus solicitudes.
func (s *Service) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
