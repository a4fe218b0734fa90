package entity

import "strconv"

// Identifier types. Each entity kind gets its own id type so a region id can
// never be looked up in the house registry by accident.
type (
	HouseID            string
	HouseCardID        string
	RegionID           string
	UnitTypeID         string
	OrderTypeID        string
	WesterosCardTypeID string
	WildlingCardTypeID string
	OrderID            int
	WildlingCardID     int
)

func (id OrderID) String() string        { return strconv.Itoa(int(id)) }
func (id WildlingCardID) String() string { return strconv.Itoa(int(id)) }

// House is a playable (or vassal) house in the session.
type House struct {
	ID         HouseID                            `json:"id"`
	Name       string                             `json:"name"`
	HouseCards *Registry[HouseCardID, *HouseCard] `json:"-"`
}

// HouseCard is a leader card held by one house.
type HouseCard struct {
	ID             HouseCardID `json:"id"`
	Name           string      `json:"name"`
	CombatStrength int         `json:"combatStrength,omitempty"`
	SwordIcons     int         `json:"swordIcons,omitempty"`
	TowerIcons     int         `json:"towerIcons,omitempty"`
	Ability        string      `json:"ability,omitempty"`
}

// RegionType distinguishes land areas from sea areas and ports.
type RegionType string

const (
	RegionLand RegionType = "land"
	RegionSea  RegionType = "sea"
	RegionPort RegionType = "port"
)

// Region is an area of the game board.
type Region struct {
	ID          RegionID   `json:"id"`
	Name        string     `json:"name"`
	Type        RegionType `json:"type,omitempty"`
	SupplyIcons int        `json:"supplyIcons,omitempty"`
	CrownIcons  int        `json:"crownIcons,omitempty"`
	Castle      string     `json:"castle,omitempty"` // "", "castle" or "stronghold"
}

// UnitType is a kind of unit (footman, knight, ship, siege engine).
type UnitType struct {
	ID             UnitTypeID `json:"id"`
	Name           string     `json:"name"`
	CombatStrength int        `json:"combatStrength,omitempty"`
}

// OrderType is the printed face of an order token.
type OrderType struct {
	ID    OrderTypeID `json:"id"`
	Name  string      `json:"name"`
	Star  bool        `json:"star,omitempty"`
	Bonus int         `json:"bonus,omitempty"`
}

// Order is a physical order token. Several tokens share one OrderType.
type Order struct {
	ID   OrderID    `json:"id"`
	Type *OrderType `json:"type,omitempty"`
}

// WesterosCardType is a card of one of the three Westeros decks.
type WesterosCardType struct {
	ID          WesterosCardTypeID `json:"id"`
	Name        string             `json:"name"`
	Deck        int                `json:"deck,omitempty"`
	Description string             `json:"description,omitempty"`
}

// WildlingCardType is the printed content of a wildling card.
type WildlingCardType struct {
	ID          WildlingCardTypeID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
}

// WildlingCard is one card of the wildling deck.
type WildlingCard struct {
	ID   WildlingCardID    `json:"id"`
	Type *WildlingCardType `json:"type,omitempty"`
}
