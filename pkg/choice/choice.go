// Package choice models a pending in-turn decision owned by one house, such
// as picking which vassal house to command.
package choice

import (
	"context"
	"errors"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

var (
	// ErrNotInControl is returned when the viewer does not control the acting house.
	ErrNotInControl = errors.New("viewer does not control the acting house")
	// ErrInvalidTarget is returned for a target outside the claimable set.
	ErrInvalidTarget = errors.New("target is not a valid choice")
	// ErrClosed is returned once the decision has no acting house left.
	ErrClosed = errors.New("decision is closed")
)

// Viewer is whoever is looking at the decision.
type Viewer interface {
	Controls(house entity.HouseID) bool
}

// Houses is a Viewer controlling a fixed set of houses.
type Houses []entity.HouseID

func (h Houses) Controls(house entity.HouseID) bool {
	for _, id := range h {
		if id == house {
			return true
		}
	}
	return false
}

// Delegate is the authoritative state of one pending decision.
type Delegate interface {
	// ActingHouse returns the house whose decision is pending, or nil when
	// the decision is over.
	ActingHouse() *entity.House
	IsControlledBy(viewer Viewer) bool
	ClaimableTargets() []*entity.House
	Choose(ctx context.Context, viewer Viewer, target *entity.House) error
}
