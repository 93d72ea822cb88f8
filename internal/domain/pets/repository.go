package pets

import "context"

// Repository persiste mascotas. Delete debe borrar también las solicitudes de adopción
// de la mascota en la misma transacción.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, filter ListFilter) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}

// ListFilter vacío = todas. Orden: inserción (created_at asc).
type ListFilter struct {
	Status Status
}
