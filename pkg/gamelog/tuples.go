package gamelog

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

// RegionUnits pairs a region with an ordered list of unit types.
// On the wire it is the two-element array [region, [unitType, ...]].
type RegionUnits struct {
	Region entity.RegionID
	Units  []entity.UnitTypeID
}

func (p RegionUnits) MarshalJSON() ([]byte, error) {
	units := p.Units
	if units == nil {
		units = []entity.UnitTypeID{}
	}
	return json.Marshal([2]any{p.Region, units})
}

func (p *RegionUnits) UnmarshalJSON(data []byte) error {
	parts, err := splitTuple(data, 2)
	if err != nil {
		return err
	}
	if err := decodeStrict(parts[0], &p.Region, "[0]"); err != nil {
		return err
	}
	return decodeStrict(parts[1], &p.Units, "[1]")
}

// BidGroup is one bid value with the houses that bid it, in record order.
// On the wire it is [bid, [house, ...]].
type BidGroup struct {
	Bid    int
	Houses []entity.HouseID
}

func (g BidGroup) MarshalJSON() ([]byte, error) {
	houses := g.Houses
	if houses == nil {
		houses = []entity.HouseID{}
	}
	return json.Marshal([2]any{g.Bid, houses})
}

func (g *BidGroup) UnmarshalJSON(data []byte) error {
	parts, err := splitTuple(data, 2)
	if err != nil {
		return err
	}
	if err := decodeStrict(parts[0], &g.Bid, "[0]"); err != nil {
		return err
	}
	return decodeStrict(parts[1], &g.Houses, "[1]")
}

// HouseCardChoice is [house, houseCard]; the card belongs to that house.
type HouseCardChoice struct {
	House     entity.HouseID
	HouseCard entity.HouseCardID
}

func (c HouseCardChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.House, c.HouseCard})
}

func (c *HouseCardChoice) UnmarshalJSON(data []byte) error {
	parts, err := splitTuple(data, 2)
	if err != nil {
		return err
	}
	if err := decodeStrict(parts[0], &c.House, "[0]"); err != nil {
		return err
	}
	return decodeStrict(parts[1], &c.HouseCard, "[1]")
}

// Recruit is a single mustering: a new unit To in Region, optionally upgraded
// From an existing unit.
type Recruit struct {
	Region entity.RegionID    `json:"region"`
	From   *entity.UnitTypeID `json:"from,omitempty"`
	To     entity.UnitTypeID  `json:"to"`
}

// MusteringGroup is [originRegion, [recruit, ...]]: the recruits paid for by
// one castle or stronghold.
type MusteringGroup struct {
	Origin   entity.RegionID
	Recruits []Recruit
}

func (g MusteringGroup) MarshalJSON() ([]byte, error) {
	recruits := g.Recruits
	if recruits == nil {
		recruits = []Recruit{}
	}
	return json.Marshal([2]any{g.Origin, recruits})
}

func (g *MusteringGroup) UnmarshalJSON(data []byte) error {
	parts, err := splitTuple(data, 2)
	if err != nil {
		return err
	}
	if err := decodeStrict(parts[0], &g.Origin, "[0]"); err != nil {
		return err
	}
	return decodeStrict(parts[1], &g.Recruits, "[1]")
}

// CombatStats is one side of a combat. A nil HouseCard means the side had no
// card (e.g. a neutral force or a house with an empty hand).
type CombatStats struct {
	House              entity.HouseID      `json:"house"`
	Region             entity.RegionID     `json:"region"`
	Army               int                 `json:"army"`
	OrderBonus         int                 `json:"orderBonus"`
	Support            int                 `json:"support"`
	Garrison           int                 `json:"garrison"`
	HouseCard          *entity.HouseCardID `json:"houseCard,omitempty"`
	ValyrianSteelBlade int                 `json:"valyrianSteelBlade"`
	Total              int                 `json:"total"`
}

func splitTuple(data []byte, n int) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("expected %d-element array: %w", n, err)
	}
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d-element array, got %d elements", n, len(parts))
	}
	return parts, nil
}
