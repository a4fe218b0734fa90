// Package entitytest provides a small, fully populated catalog for tests.
package entitytest

import (
	"testing"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

// CatalogYAML is a trimmed base-game catalog.
const CatalogYAML = `
name: test-base
houses:
  - id: stark
    name: Stark
    houseCards:
      - {id: eddard-stark, name: Eddard Stark, combatStrength: 4, swordIcons: 2}
      - {id: robb-stark, name: Robb Stark, combatStrength: 3}
      - {id: roose-bolton, name: Roose Bolton, combatStrength: 2}
  - id: lannister
    name: Lannister
    houseCards:
      - {id: tywin-lannister, name: Tywin Lannister, combatStrength: 4}
      - {id: tyrion-lannister, name: Tyrion Lannister, combatStrength: 1}
      - {id: jaime-lannister, name: Jaime Lannister, combatStrength: 2, swordIcons: 1}
  - id: greyjoy
    name: Greyjoy
    houseCards:
      - {id: euron-crows-eye, name: Euron Crow's Eye, combatStrength: 4, swordIcons: 1}
  - id: tyrell
    name: Tyrell
    houseCards:
      - {id: loras-tyrell, name: Loras Tyrell, combatStrength: 3, swordIcons: 2}
      - {id: queen-of-thorns, name: Queen of Thorns, combatStrength: 0}
  - id: baratheon
    name: Baratheon
    houseCards:
      - {id: stannis-baratheon, name: Stannis Baratheon, combatStrength: 4}
  - id: martell
    name: Martell
    houseCards:
      - {id: arianne-martell, name: Arianne Martell, combatStrength: 1, towerIcons: 1}
regions:
  - {id: winterfell, name: Winterfell, type: land, supplyIcons: 1, crownIcons: 1, castle: stronghold}
  - {id: white-harbor, name: White Harbor, type: land, castle: castle}
  - {id: castle-black, name: Castle Black, type: land, crownIcons: 1}
  - {id: lannisport, name: Lannisport, type: land, supplyIcons: 2, crownIcons: 1, castle: stronghold}
  - {id: stoney-sept, name: Stoney Sept, type: land, crownIcons: 1}
  - {id: riverrun, name: Riverrun, type: land, supplyIcons: 1, crownIcons: 1, castle: stronghold}
  - {id: highgarden, name: Highgarden, type: land, supplyIcons: 2, castle: stronghold}
  - {id: kings-landing, name: King's Landing, type: land, crownIcons: 2, castle: stronghold}
  - {id: pyke, name: Pyke, type: land, supplyIcons: 1, crownIcons: 1, castle: stronghold}
  - {id: the-narrow-sea, name: The Narrow Sea, type: sea}
  - {id: bay-of-ice, name: Bay of Ice, type: sea}
unitTypes:
  - {id: footman, name: Footman, combatStrength: 1}
  - {id: knight, name: Knight, combatStrength: 2}
  - {id: ship, name: Ship, combatStrength: 1}
  - {id: siege-engine, name: Siege Engine, combatStrength: 4}
orderTypes:
  - {id: march, name: March, bonus: 0}
  - {id: march-plus-one, name: March +1, star: true, bonus: 1}
  - {id: defense-plus-one, name: Defense +1, bonus: 1}
  - {id: support, name: Support, bonus: 0}
  - {id: raid, name: Raid, bonus: 0}
  - {id: consolidate-power-star, name: Consolidate Power, star: true}
orders:
  - {id: 0, type: march}
  - {id: 1, type: march-plus-one}
  - {id: 2, type: defense-plus-one}
  - {id: 3, type: support}
  - {id: 4, type: raid}
  - {id: 5, type: consolidate-power-star}
westerosCardTypes:
  - {id: supply, name: Supply, deck: 0}
  - {id: mustering, name: Mustering, deck: 0}
  - {id: winter-is-coming, name: Winter is Coming, deck: 0}
  - {id: clash-of-kings, name: Clash of Kings, deck: 1}
  - {id: dark-wings-dark-words, name: "Dark Wings, Dark Words", deck: 1}
  - {id: wildlings-attack, name: Wildlings Attack, deck: 2}
  - {id: put-to-the-sword, name: Put to the Sword, deck: 2}
wildlingCardTypes:
  - {id: crow-killers, name: Crow Killers}
  - {id: silence-at-the-wall, name: Silence at the Wall}
wildlingCards:
  - {id: 0, type: crow-killers}
  - {id: 1, type: silence-at-the-wall}
`

// Catalog parses CatalogYAML and fails the test on error.
func Catalog(t testing.TB) *entity.Catalog {
	t.Helper()
	c, err := entity.ParseCatalog([]byte(CatalogYAML))
	if err != nil {
		t.Fatalf("Failed to parse test catalog: %v", err)
	}
	return c
}

// House returns a house of the test catalog by id.
func House(t testing.TB, c *entity.Catalog, id entity.HouseID) *entity.House {
	t.Helper()
	h, err := c.Houses.Get(id)
	if err != nil {
		t.Fatalf("Failed to get house %s: %v", id, err)
	}
	return h
}
