package pets

import "time"

// Status del ciclo de vida de una mascota. Available -> Adopted, sin vuelta atrás.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusAdopted   Status = "Adopted"
)

// DefaultMedicalHistory se usa cuando el admin no completa el historial.
const DefaultMedicalHistory = "Healthy, vaccinated, and ready for a home."

// Pet es una mascota publicada para adopción.
type Pet struct {
	ID string

	Name  string
	Breed string
	Photo string // referencia (nombre de archivo) en el directorio de uploads

	MedicalHistory string
	Status         Status

	CreatedAt time.Time
}

func (p Pet) IsAvailable() bool {
	return p.Status == StatusAvailable
}
