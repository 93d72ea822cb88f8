package memory

import (
	"sync"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

// DB guarda ambas tablas bajo un único lock: así la cascada y la aprobación
// son atómicas igual que en los adapters SQL.
type DB struct {
	mu sync.RWMutex

	pets     map[string]pets.Pet
	petOrder []string

	requests     map[string]adoptions.Request
	requestOrder []string
}

func NewDB() *DB {
	return &DB{
		pets:     make(map[string]pets.Pet),
		requests: make(map[string]adoptions.Request),
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
