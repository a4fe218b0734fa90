package entity

import (
	"errors"
	"testing"
)

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry[HouseID, *House]("house")

	stark := &House{ID: "stark", Name: "Stark"}
	lannister := &House{ID: "lannister", Name: "Lannister"}

	if err := r.Add(stark.ID, stark); err != nil {
		t.Fatalf("Failed to add house: %v", err)
	}
	if err := r.Add(lannister.ID, lannister); err != nil {
		t.Fatalf("Failed to add house: %v", err)
	}

	got, err := r.Get("lannister")
	if err != nil {
		t.Fatalf("Expected house, got error: %v", err)
	}
	if got != lannister {
		t.Errorf("Expected lannister, got %v", got)
	}

	if r.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", r.Len())
	}
	if !r.Has("stark") || r.Has("tully") {
		t.Error("Has reported wrong membership")
	}
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry[RegionID, *Region]("region")
	if err := r.Add("winterfell", &Region{ID: "winterfell"}); err != nil {
		t.Fatalf("Failed to add region: %v", err)
	}
	if err := r.Add("winterfell", &Region{ID: "winterfell"}); err == nil {
		t.Error("Expected error for duplicate id")
	}
	if r.Len() != 1 {
		t.Errorf("Duplicate add must not change the registry, got %d entries", r.Len())
	}
}

func TestRegistry_Miss(t *testing.T) {
	r := NewRegistry[OrderID, *Order]("order")

	_, err := r.Get(42)
	if err == nil {
		t.Fatal("Expected error for missing id")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected *NotFoundError, got %T", err)
	}
	if nf.Registry != "order" || nf.ID != "42" {
		t.Errorf("Unexpected error details: %+v", nf)
	}
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry[UnitTypeID, *UnitType]("unit type")
	ids := []UnitTypeID{"siege-engine", "footman", "ship", "knight"}
	for _, id := range ids {
		if err := r.Add(id, &UnitType{ID: id}); err != nil {
			t.Fatalf("Failed to add %s: %v", id, err)
		}
	}

	keys := r.Keys()
	values := r.Values()
	for i, id := range ids {
		if keys[i] != id {
			t.Errorf("Key %d: expected %s, got %s", i, id, keys[i])
		}
		if values[i].ID != id {
			t.Errorf("Value %d: expected %s, got %s", i, id, values[i].ID)
		}
	}

	// Callers must not be able to reorder the registry through Keys.
	keys[0] = "mutated"
	if r.Keys()[0] != "siege-engine" {
		t.Error("Keys returned the internal slice")
	}
}

func TestRegistry_GetAll(t *testing.T) {
	r := NewRegistry[HouseID, *House]("house")
	for _, h := range []*House{{ID: "stark"}, {ID: "tyrell"}, {ID: "martell"}} {
		if err := r.Add(h.ID, h); err != nil {
			t.Fatalf("Failed to add house: %v", err)
		}
	}

	got, err := r.GetAll([]HouseID{"martell", "stark"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "martell" || got[1].ID != "stark" {
		t.Errorf("Expected [martell stark], got %v", got)
	}

	if _, err := r.GetAll([]HouseID{"stark", "tully"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
