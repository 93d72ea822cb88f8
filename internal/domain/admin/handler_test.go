package admin

import (
	"testing"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

func TestBuildDashboard_ResolvesPetNames(t *testing.T) {
	allPets := []pets.Pet{
		{ID: "rex", Name: "Rex", Status: pets.StatusAvailable},
		{ID: "luna", Name: "Luna", Status: pets.StatusAdopted},
	}
	requests := []adoptions.Request{
		{ID: "r1", PetID: "rex", AdopterName: "Ann"},
		{ID: "r2", PetID: "luna", AdopterName: "Bob"},
		{ID: "r3", PetID: "gone", AdopterName: "Cid"},
	}

	got := buildDashboard(allPets, requests)

	if len(got.Pets) != 2 || len(got.Requests) != 3 {
		t.Fatalf("unexpected dashboard %+v", got)
	}
	if got.Requests[0].PetName != "Rex" || got.Requests[1].PetName != "Luna" {
		t.Fatalf("pet names not resolved: %+v", got.Requests)
	}
	if got.Requests[2].PetName != "" {
		t.Fatalf("unknown pet must render blank, got %q", got.Requests[2].PetName)
	}
	if got.Requests[0].AdopterName != "Ann" {
		t.Fatalf("request fields must be promoted, got %+v", got.Requests[0])
	}
}
