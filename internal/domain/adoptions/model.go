package adoptions

import "time"

// Request es una solicitud de adopción pendiente. No tiene estado propio:
// existir = Pending; al aprobarse se consume (se borra).
type Request struct {
	ID    string
	PetID string

	AdopterName string
	Email       string
	IDProof     string // referencia del documento de identidad en uploads

	CreatedAt time.Time
}

// Approval describe el resultado de Approve.
// Applied=false significa que la solicitud ya no existía (no-op).
type Approval struct {
	Applied   bool
	RequestID string
	PetID     string

	// PetAdopted=false si la mascota ya no existía al aprobar.
	PetAdopted bool
}
