package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context) ([]Request, error)
	ListByPet(ctx context.Context, petID string) ([]Request, error)

	// Approve borra la solicitud y marca la mascota como Adopted en una sola transacción.
	// Si la solicitud no existe devuelve Approval{Applied: false} sin error.
	Approve(ctx context.Context, requestID string) (Approval, error)
}
