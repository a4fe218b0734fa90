package entity

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds every entity registry of one game session.
type Catalog struct {
	Name              string
	Houses            *Registry[HouseID, *House]
	Regions           *Registry[RegionID, *Region]
	UnitTypes         *Registry[UnitTypeID, *UnitType]
	OrderTypes        *Registry[OrderTypeID, *OrderType]
	Orders            *Registry[OrderID, *Order]
	WesterosCardTypes *Registry[WesterosCardTypeID, *WesterosCardType]
	WildlingCardTypes *Registry[WildlingCardTypeID, *WildlingCardType]
	WildlingCards     *Registry[WildlingCardID, *WildlingCard]
}

// NewCatalog creates a catalog with empty registries.
func NewCatalog(name string) *Catalog {
	return &Catalog{
		Name:              name,
		Houses:            NewRegistry[HouseID, *House]("house"),
		Regions:           NewRegistry[RegionID, *Region]("region"),
		UnitTypes:         NewRegistry[UnitTypeID, *UnitType]("unit type"),
		OrderTypes:        NewRegistry[OrderTypeID, *OrderType]("order type"),
		Orders:            NewRegistry[OrderID, *Order]("order"),
		WesterosCardTypes: NewRegistry[WesterosCardTypeID, *WesterosCardType]("westeros card type"),
		WildlingCardTypes: NewRegistry[WildlingCardTypeID, *WildlingCardType]("wildling card type"),
		WildlingCards:     NewRegistry[WildlingCardID, *WildlingCard]("wildling card"),
	}
}

// HouseCard looks up a card in the given house's hand.
func (c *Catalog) HouseCard(house HouseID, card HouseCardID) (*HouseCard, error) {
	h, err := c.Houses.Get(house)
	if err != nil {
		return nil, err
	}
	return h.HouseCards.Get(card)
}

// catalogFile is the on-disk YAML layout of a catalog.
type catalogFile struct {
	Name              string             `yaml:"name"`
	Houses            []houseSpec        `yaml:"houses"`
	Regions           []regionSpec       `yaml:"regions"`
	UnitTypes         []unitTypeSpec     `yaml:"unitTypes"`
	OrderTypes        []orderTypeSpec    `yaml:"orderTypes"`
	Orders            []orderSpec        `yaml:"orders"`
	WesterosCardTypes []westerosCardSpec `yaml:"westerosCardTypes"`
	WildlingCardTypes []wildlingTypeSpec `yaml:"wildlingCardTypes"`
	WildlingCards     []wildlingCardSpec `yaml:"wildlingCards"`
}

type houseSpec struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	HouseCards []houseCardSpec `yaml:"houseCards"`
}

type houseCardSpec struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	CombatStrength int    `yaml:"combatStrength"`
	SwordIcons     int    `yaml:"swordIcons"`
	TowerIcons     int    `yaml:"towerIcons"`
	Ability        string `yaml:"ability"`
}

type regionSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	SupplyIcons int    `yaml:"supplyIcons"`
	CrownIcons  int    `yaml:"crownIcons"`
	Castle      string `yaml:"castle"`
}

type unitTypeSpec struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	CombatStrength int    `yaml:"combatStrength"`
}

type orderTypeSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Star  bool   `yaml:"star"`
	Bonus int    `yaml:"bonus"`
}

type orderSpec struct {
	ID   int    `yaml:"id"`
	Type string `yaml:"type"`
}

type westerosCardSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Deck        int    `yaml:"deck"`
	Description string `yaml:"description"`
}

type wildlingTypeSpec struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type wildlingCardSpec struct {
	ID   int    `yaml:"id"`
	Type string `yaml:"type"`
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog builds a catalog from YAML. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return f.build()
}

func (f *catalogFile) build() (*Catalog, error) {
	c := NewCatalog(strings.TrimSpace(f.Name))
	if c.Name == "" {
		return nil, fmt.Errorf("catalog name is required")
	}
	if len(f.Houses) == 0 {
		return nil, fmt.Errorf("at least one house is required")
	}

	for i, hs := range f.Houses {
		if err := requireIDName("house", i, hs.ID, hs.Name); err != nil {
			return nil, err
		}
		h := &House{
			ID:         HouseID(hs.ID),
			Name:       hs.Name,
			HouseCards: NewRegistry[HouseCardID, *HouseCard](hs.ID + " house card"),
		}
		for j, cs := range hs.HouseCards {
			if err := requireIDName(hs.ID+" house card", j, cs.ID, cs.Name); err != nil {
				return nil, err
			}
			card := &HouseCard{
				ID:             HouseCardID(cs.ID),
				Name:           cs.Name,
				CombatStrength: cs.CombatStrength,
				SwordIcons:     cs.SwordIcons,
				TowerIcons:     cs.TowerIcons,
				Ability:        cs.Ability,
			}
			if err := h.HouseCards.Add(card.ID, card); err != nil {
				return nil, err
			}
		}
		if err := c.Houses.Add(h.ID, h); err != nil {
			return nil, err
		}
	}

	for i, rs := range f.Regions {
		if err := requireIDName("region", i, rs.ID, rs.Name); err != nil {
			return nil, err
		}
		rt := RegionType(rs.Type)
		switch rt {
		case RegionLand, RegionSea, RegionPort:
		case "":
			rt = RegionLand
		default:
			return nil, fmt.Errorf("region %s: unknown type %q", rs.ID, rs.Type)
		}
		r := &Region{
			ID:          RegionID(rs.ID),
			Name:        rs.Name,
			Type:        rt,
			SupplyIcons: rs.SupplyIcons,
			CrownIcons:  rs.CrownIcons,
			Castle:      rs.Castle,
		}
		if err := c.Regions.Add(r.ID, r); err != nil {
			return nil, err
		}
	}

	for i, us := range f.UnitTypes {
		if err := requireIDName("unit type", i, us.ID, us.Name); err != nil {
			return nil, err
		}
		u := &UnitType{ID: UnitTypeID(us.ID), Name: us.Name, CombatStrength: us.CombatStrength}
		if err := c.UnitTypes.Add(u.ID, u); err != nil {
			return nil, err
		}
	}

	for i, ts := range f.OrderTypes {
		if err := requireIDName("order type", i, ts.ID, ts.Name); err != nil {
			return nil, err
		}
		ot := &OrderType{ID: OrderTypeID(ts.ID), Name: ts.Name, Star: ts.Star, Bonus: ts.Bonus}
		if err := c.OrderTypes.Add(ot.ID, ot); err != nil {
			return nil, err
		}
	}

	for _, ords := range f.Orders {
		ot, err := c.OrderTypes.Get(OrderTypeID(ords.Type))
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", ords.ID, err)
		}
		o := &Order{ID: OrderID(ords.ID), Type: ot}
		if err := c.Orders.Add(o.ID, o); err != nil {
			return nil, err
		}
	}

	for i, ws := range f.WesterosCardTypes {
		if err := requireIDName("westeros card type", i, ws.ID, ws.Name); err != nil {
			return nil, err
		}
		if ws.Deck < 0 || ws.Deck > 2 {
			return nil, fmt.Errorf("westeros card type %s: deck %d out of range", ws.ID, ws.Deck)
		}
		wt := &WesterosCardType{ID: WesterosCardTypeID(ws.ID), Name: ws.Name, Deck: ws.Deck, Description: ws.Description}
		if err := c.WesterosCardTypes.Add(wt.ID, wt); err != nil {
			return nil, err
		}
	}

	for i, ws := range f.WildlingCardTypes {
		if err := requireIDName("wildling card type", i, ws.ID, ws.Name); err != nil {
			return nil, err
		}
		wt := &WildlingCardType{ID: WildlingCardTypeID(ws.ID), Name: ws.Name, Description: ws.Description}
		if err := c.WildlingCardTypes.Add(wt.ID, wt); err != nil {
			return nil, err
		}
	}

	for _, ws := range f.WildlingCards {
		wt, err := c.WildlingCardTypes.Get(WildlingCardTypeID(ws.Type))
		if err != nil {
			return nil, fmt.Errorf("wildling card %d: %w", ws.ID, err)
		}
		wc := &WildlingCard{ID: WildlingCardID(ws.ID), Type: wt}
		if err := c.WildlingCards.Add(wc.ID, wc); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func requireIDName(kind string, index int, id, name string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s %d id is required", kind, index)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s %s name is required", kind, id)
	}
	return nil
}
