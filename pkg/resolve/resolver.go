// Package resolve turns log records into views that hold the catalog
// entities their ids name. Resolution looks only at the record being resolved
// and the catalog, so it is deterministic and safe for concurrent use.
package resolve

import (
	"errors"
	"fmt"
	"time"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// Resolver resolves records against one catalog.
type Resolver struct {
	catalog *entity.Catalog
}

func New(catalog *entity.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Catalog returns the catalog the resolver reads from.
func (r *Resolver) Catalog() *entity.Catalog {
	return r.catalog
}

// Resolve returns the view of e. Any id missing from the catalog is an
// *UnresolvedError; no partial view is returned.
func (r *Resolver) Resolve(e gamelog.Event) (View, error) {
	if e == nil {
		return nil, errors.New("resolve: nil event")
	}
	v := &visitor{catalog: r.catalog, kind: e.Kind()}
	if err := e.Accept(v); err != nil {
		return nil, err
	}
	return v.view, nil
}

// ResolvedEntry is an entry ready for presentation. Err is set, and View is
// nil, when the entry could not be resolved.
type ResolvedEntry struct {
	Time time.Time
	Kind gamelog.Kind
	View View
	Err  error
}

func (r *Resolver) ResolveEntry(entry gamelog.Entry) (ResolvedEntry, error) {
	if entry.Unknown != nil && entry.Event == nil {
		return ResolvedEntry{Time: entry.Time, Kind: entry.Kind()}, entry.Unknown
	}
	if entry.Event == nil {
		return ResolvedEntry{Time: entry.Time}, errors.New("resolve: entry has no event")
	}
	view, err := r.Resolve(entry.Event)
	if err != nil {
		return ResolvedEntry{}, err
	}
	return ResolvedEntry{Time: entry.Time, Kind: entry.Event.Kind(), View: view}, nil
}

// ResolveAll resolves entries in order. A failing entry keeps its slot with
// Err set so the others still render.
func (r *Resolver) ResolveAll(entries []gamelog.Entry) []ResolvedEntry {
	out := make([]ResolvedEntry, len(entries))
	for i, entry := range entries {
		re, err := r.ResolveEntry(entry)
		if err != nil {
			re = ResolvedEntry{Time: entry.Time, Kind: entry.Kind(), Err: err}
		}
		out[i] = re
	}
	return out
}

// visitor resolves a single record; a fresh one is used per call.
type visitor struct {
	catalog *entity.Catalog
	kind    gamelog.Kind
	view    View
}

var _ gamelog.Visitor = (*visitor)(nil)

func (v *visitor) fail(field string, err error) error {
	return &UnresolvedError{Kind: v.kind, Field: field, Err: err}
}

func lookup[K comparable, V any](v *visitor, r *entity.Registry[K, V], field string, id K) (V, error) {
	e, err := r.Get(id)
	if err != nil {
		return e, v.fail(field, err)
	}
	return e, nil
}

func lookupAll[K comparable, V any](v *visitor, r *entity.Registry[K, V], field string, ids []K) ([]V, error) {
	out := make([]V, 0, len(ids))
	for i, id := range ids {
		e, err := lookup(v, r, fmt.Sprintf("%s[%d]", field, i), id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func lookupMaybe[K comparable, V any](v *visitor, r *entity.Registry[K, V], field string, id *K) (Maybe[V], error) {
	if id == nil {
		return None[V](), nil
	}
	e, err := lookup(v, r, field, *id)
	if err != nil {
		return None[V](), err
	}
	return Some(e), nil
}

func (v *visitor) house(field string, id entity.HouseID) (*entity.House, error) {
	return lookup(v, v.catalog.Houses, field, id)
}

func (v *visitor) houses(field string, ids []entity.HouseID) ([]*entity.House, error) {
	return lookupAll(v, v.catalog.Houses, field, ids)
}

func (v *visitor) region(field string, id entity.RegionID) (*entity.Region, error) {
	return lookup(v, v.catalog.Regions, field, id)
}

func (v *visitor) order(field string, id entity.OrderID) (*entity.Order, error) {
	return lookup(v, v.catalog.Orders, field, id)
}

func (v *visitor) westerosCardType(field string, id entity.WesterosCardTypeID) (*entity.WesterosCardType, error) {
	return lookup(v, v.catalog.WesterosCardTypes, field, id)
}

// houseCard looks the card up in the given house's hand only.
func (v *visitor) houseCard(field string, house *entity.House, id entity.HouseCardID) (*entity.HouseCard, error) {
	return lookup(v, house.HouseCards, field, id)
}

func (v *visitor) regionUnits(field string, pairs []gamelog.RegionUnits) ([]RegionUnits, error) {
	out := make([]RegionUnits, 0, len(pairs))
	for i, p := range pairs {
		at := fmt.Sprintf("%s[%d]", field, i)
		region, err := v.region(at+".region", p.Region)
		if err != nil {
			return nil, err
		}
		units, err := lookupAll(v, v.catalog.UnitTypes, at+".units", p.Units)
		if err != nil {
			return nil, err
		}
		out = append(out, RegionUnits{Region: region, Units: units})
	}
	return out, nil
}

// bids resolves bid groups. Groups sharing a bid value are merged into the
// first one, so each bid appears once and groups keep first-occurrence order.
func (v *visitor) bids(field string, groups []gamelog.BidGroup) (BidResults, error) {
	out := make(BidResults, 0, len(groups))
	index := make(map[int]int, len(groups))
	for i, g := range groups {
		houses, err := v.houses(fmt.Sprintf("%s[%d].houses", field, i), g.Houses)
		if err != nil {
			return nil, err
		}
		if at, ok := index[g.Bid]; ok {
			out[at].Houses = append(out[at].Houses, houses...)
			continue
		}
		index[g.Bid] = len(out)
		out = append(out, BidGroup{Bid: g.Bid, Houses: houses})
	}
	return out, nil
}

func (v *visitor) VisitTurnBegin(e *gamelog.TurnBegin) error {
	v.view = &TurnBeginView{Turn: e.Turn}
	return nil
}

func (v *visitor) VisitSupportDeclared(e *gamelog.SupportDeclared) error {
	supporter, err := v.house("supporter", e.Supporter)
	if err != nil {
		return err
	}
	supported, err := lookupMaybe(v, v.catalog.Houses, "supported", e.Supported)
	if err != nil {
		return err
	}
	v.view = &SupportDeclaredView{Supporter: supporter, Supported: supported}
	return nil
}

func (v *visitor) VisitAttack(e *gamelog.Attack) error {
	attacker, err := v.house("attacker", e.Attacker)
	if err != nil {
		return err
	}
	attacked, err := lookupMaybe(v, v.catalog.Houses, "attacked", e.Attacked)
	if err != nil {
		return err
	}
	from, err := v.region("attackingRegion", e.AttackingRegion)
	if err != nil {
		return err
	}
	to, err := v.region("attackedRegion", e.AttackedRegion)
	if err != nil {
		return err
	}
	units, err := lookupAll(v, v.catalog.UnitTypes, "units", e.Units)
	if err != nil {
		return err
	}
	v.view = &AttackView{
		Attacker:        attacker,
		Attacked:        attacked,
		AttackingRegion: from,
		AttackedRegion:  to,
		Units:           units,
	}
	return nil
}

func (v *visitor) VisitMarchResolved(e *gamelog.MarchResolved) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	start, err := v.region("startingRegion", e.StartingRegion)
	if err != nil {
		return err
	}
	moves, err := v.regionUnits("moves", e.Moves)
	if err != nil {
		return err
	}
	v.view = &MarchResolvedView{House: house, StartingRegion: start, Moves: moves}
	return nil
}

func (v *visitor) VisitWesterosCardExecuted(e *gamelog.WesterosCardExecuted) error {
	card, err := v.westerosCardType("westerosCardType", e.WesterosCardType)
	if err != nil {
		return err
	}
	v.view = &WesterosCardExecutedView{WesterosCardType: card}
	return nil
}

func (v *visitor) VisitWesterosCardsDrawn(e *gamelog.WesterosCardsDrawn) error {
	cards, err := lookupAll(v, v.catalog.WesterosCardTypes, "westerosCardTypes", e.WesterosCardTypes)
	if err != nil {
		return err
	}
	v.view = &WesterosCardsDrawnView{WesterosCardTypes: cards, AddedWildlingStrength: e.AddedWildlingStrength}
	return nil
}

func (v *visitor) VisitCombatResult(e *gamelog.CombatResult) error {
	winner, err := v.house("winner", e.Winner)
	if err != nil {
		return err
	}
	sides := make([]CombatSide, 0, len(e.Stats))
	for i, s := range e.Stats {
		at := fmt.Sprintf("stats[%d]", i)
		house, err := v.house(at+".house", s.House)
		if err != nil {
			return err
		}
		region, err := v.region(at+".region", s.Region)
		if err != nil {
			return err
		}
		card := None[*entity.HouseCard]()
		if s.HouseCard != nil {
			c, err := v.houseCard(at+".houseCard", house, *s.HouseCard)
			if err != nil {
				return err
			}
			card = Some(c)
		}
		sides = append(sides, CombatSide{
			House:              house,
			Region:             region,
			Army:               s.Army,
			OrderBonus:         s.OrderBonus,
			Support:            s.Support,
			Garrison:           s.Garrison,
			HouseCard:          card,
			ValyrianSteelBlade: s.ValyrianSteelBlade,
			Total:              s.Total,
		})
	}
	v.view = &CombatResultView{Winner: winner, Stats: sides}
	return nil
}

func (v *visitor) VisitWildlingCardRevealed(e *gamelog.WildlingCardRevealed) error {
	card, err := lookup(v, v.catalog.WildlingCards, "wildlingCard", e.WildlingCard)
	if err != nil {
		return err
	}
	if card.Type == nil {
		return v.fail("wildlingCard", fmt.Errorf("wildling card %s has no type", card.ID))
	}
	v.view = &WildlingCardRevealedView{WildlingCard: card, CardType: card.Type}
	return nil
}

func (v *visitor) VisitWildlingBidding(e *gamelog.WildlingBidding) error {
	results, err := v.bids("results", e.Results)
	if err != nil {
		return err
	}
	v.view = &WildlingBiddingView{Results: results, NightsWatchVictory: e.NightsWatchVictory}
	return nil
}

func (v *visitor) VisitLowestBidderChosen(e *gamelog.LowestBidderChosen) error {
	h, err := v.house("lowestBidder", e.LowestBidder)
	if err != nil {
		return err
	}
	v.view = &LowestBidderChosenView{LowestBidder: h}
	return nil
}

func (v *visitor) VisitHighestBidderChosen(e *gamelog.HighestBidderChosen) error {
	h, err := v.house("highestBidder", e.HighestBidder)
	if err != nil {
		return err
	}
	v.view = &HighestBidderChosenView{HighestBidder: h}
	return nil
}

func (v *visitor) VisitPlayerMustered(e *gamelog.PlayerMustered) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	musterings := make([]Mustering, 0, len(e.Musterings))
	for i, g := range e.Musterings {
		at := fmt.Sprintf("musterings[%d]", i)
		origin, err := v.region(at+".origin", g.Origin)
		if err != nil {
			return err
		}
		recruits := make([]Recruit, 0, len(g.Recruits))
		for j, r := range g.Recruits {
			rat := fmt.Sprintf("%s.recruits[%d]", at, j)
			region, err := v.region(rat+".region", r.Region)
			if err != nil {
				return err
			}
			from, err := lookupMaybe(v, v.catalog.UnitTypes, rat+".from", r.From)
			if err != nil {
				return err
			}
			to, err := lookup(v, v.catalog.UnitTypes, rat+".to", r.To)
			if err != nil {
				return err
			}
			recruits = append(recruits, Recruit{Region: region, From: from, To: to})
		}
		musterings = append(musterings, Mustering{Origin: origin, Recruits: recruits})
	}
	v.view = &PlayerMusteredView{House: house, Musterings: musterings}
	return nil
}

func (v *visitor) VisitWinnerDeclared(e *gamelog.WinnerDeclared) error {
	h, err := v.house("winner", e.Winner)
	if err != nil {
		return err
	}
	v.view = &WinnerDeclaredView{Winner: h}
	return nil
}

func (v *visitor) VisitRavenHolderWildlingCardPutBottom(e *gamelog.RavenHolderWildlingCardPutBottom) error {
	h, err := v.house("ravenHolder", e.RavenHolder)
	if err != nil {
		return err
	}
	v.view = &RavenHolderWildlingCardPutBottomView{RavenHolder: h}
	return nil
}

func (v *visitor) VisitRavenHolderWildlingCardPutTop(e *gamelog.RavenHolderWildlingCardPutTop) error {
	h, err := v.house("ravenHolder", e.RavenHolder)
	if err != nil {
		return err
	}
	v.view = &RavenHolderWildlingCardPutTopView{RavenHolder: h}
	return nil
}

func (v *visitor) VisitRaidDone(e *gamelog.RaidDone) error {
	raider, err := v.house("raider", e.Raider)
	if err != nil {
		return err
	}
	raiderRegion, err := v.region("raiderRegion", e.RaiderRegion)
	if err != nil {
		return err
	}
	view := &RaidDoneView{Raider: raider, RaiderRegion: raiderRegion}

	switch {
	case e.Raidee == nil && e.RaidedRegion == nil && e.OrderRaided == nil:
	case e.Raidee != nil && e.RaidedRegion != nil && e.OrderRaided != nil:
		raidee, err := v.house("raidee", *e.Raidee)
		if err != nil {
			return err
		}
		region, err := v.region("raidedRegion", *e.RaidedRegion)
		if err != nil {
			return err
		}
		order, err := v.order("orderRaided", *e.OrderRaided)
		if err != nil {
			return err
		}
		view.Raid = &RaidTarget{Raidee: raidee, RaidedRegion: region, OrderRaided: order}
	default:
		return v.fail("raidee", errors.New("raidee, raidedRegion and orderRaided must be all set or all absent"))
	}

	v.view = view
	return nil
}

func (v *visitor) VisitAThroneOfBladesChoice(e *gamelog.AThroneOfBladesChoice) error {
	h, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	v.view = &AThroneOfBladesChoiceView{House: h, Choice: e.Choice}
	return nil
}

func (v *visitor) VisitDarkWingsDarkWordsChoice(e *gamelog.DarkWingsDarkWordsChoice) error {
	h, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	v.view = &DarkWingsDarkWordsChoiceView{House: h, Choice: e.Choice}
	return nil
}

func (v *visitor) VisitPutToTheSwordChoice(e *gamelog.PutToTheSwordChoice) error {
	h, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	v.view = &PutToTheSwordChoiceView{House: h, Choice: e.Choice}
	return nil
}

func (v *visitor) VisitWinterIsComing(e *gamelog.WinterIsComing) error {
	card, err := v.westerosCardType("drawnCardType", e.DrawnCardType)
	if err != nil {
		return err
	}
	v.view = &WinterIsComingView{DrawnCardType: card}
	return nil
}

func (v *visitor) VisitWesterosPhaseBegan(*gamelog.WesterosPhaseBegan) error {
	v.view = &WesterosPhaseBeganView{}
	return nil
}

func (v *visitor) VisitPlanningPhaseBegan(*gamelog.PlanningPhaseBegan) error {
	v.view = &PlanningPhaseBeganView{}
	return nil
}

func (v *visitor) VisitActionPhaseBegan(*gamelog.ActionPhaseBegan) error {
	v.view = &ActionPhaseBeganView{}
	return nil
}

func (v *visitor) VisitCombatValyrianSwordUsed(e *gamelog.CombatValyrianSwordUsed) error {
	h, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	v.view = &CombatValyrianSwordUsedView{House: h}
	return nil
}

func (v *visitor) VisitCombatHouseCardChosen(e *gamelog.CombatHouseCardChosen) error {
	choices := make([]CardChoice, 0, len(e.HouseCards))
	for i, c := range e.HouseCards {
		at := fmt.Sprintf("houseCards[%d]", i)
		house, err := v.house(at+".house", c.House)
		if err != nil {
			return err
		}
		card, err := v.houseCard(at+".houseCard", house, c.HouseCard)
		if err != nil {
			return err
		}
		choices = append(choices, CardChoice{House: house, HouseCard: card})
	}
	v.view = &CombatHouseCardChosenView{HouseCards: choices}
	return nil
}

func (v *visitor) VisitClashOfKingsFinalOrdering(e *gamelog.ClashOfKingsFinalOrdering) error {
	order, err := v.houses("finalOrder", e.FinalOrder)
	if err != nil {
		return err
	}
	v.view = &ClashOfKingsFinalOrderingView{Track: e.TrackerI, FinalOrder: order}
	return nil
}

func (v *visitor) VisitClashOfKingsBiddingDone(e *gamelog.ClashOfKingsBiddingDone) error {
	results, err := v.bids("results", e.Results)
	if err != nil {
		return err
	}
	v.view = &ClashOfKingsBiddingDoneView{Track: e.TrackerI, Results: results}
	return nil
}

func (v *visitor) VisitWildlingStrengthTriggerWildlingAttack(e *gamelog.WildlingStrengthTriggerWildlingAttack) error {
	v.view = &WildlingStrengthTriggerWildlingAttackView{WildlingStrength: e.WildlingStrength}
	return nil
}

func (v *visitor) VisitMarchOrderRemoved(e *gamelog.MarchOrderRemoved) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	region, err := v.region("region", e.Region)
	if err != nil {
		return err
	}
	v.view = &MarchOrderRemovedView{House: house, Region: region}
	return nil
}

func (v *visitor) VisitStarredConsolidatePowerForPowerTokens(e *gamelog.StarredConsolidatePowerForPowerTokens) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	region, err := v.region("region", e.Region)
	if err != nil {
		return err
	}
	v.view = &StarredConsolidatePowerForPowerTokensView{House: house, Region: region, PowerTokenCount: e.PowerTokenCount}
	return nil
}

func (v *visitor) VisitArmiesReconciled(e *gamelog.ArmiesReconciled) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	armies, err := v.regionUnits("armies", e.Armies)
	if err != nil {
		return err
	}
	v.view = &ArmiesReconciledView{House: house, Armies: armies}
	return nil
}

func (v *visitor) VisitTyrionLannisterChoiceMade(e *gamelog.TyrionLannisterChoiceMade) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	affected, err := v.house("affectedHouse", e.AffectedHouse)
	if err != nil {
		return err
	}
	v.view = &TyrionLannisterChoiceMadeView{House: house, AffectedHouse: affected, ChooseToReplace: e.ChooseToReplace}
	return nil
}

func (v *visitor) VisitTyrionLannisterHouseCardReplaced(e *gamelog.TyrionLannisterHouseCardReplaced) error {
	affected, err := v.house("affectedHouse", e.AffectedHouse)
	if err != nil {
		return err
	}
	card, err := lookupMaybe(v, affected.HouseCards, "newHouseCard", e.NewHouseCard)
	if err != nil {
		return err
	}
	v.view = &TyrionLannisterHouseCardReplacedView{AffectedHouse: affected, NewHouseCard: card}
	return nil
}

func (v *visitor) VisitArianneMartellPreventMovement(e *gamelog.ArianneMartellPreventMovement) error {
	h, err := v.house("enemyHouse", e.EnemyHouse)
	if err != nil {
		return err
	}
	v.view = &ArianneMartellPreventMovementView{EnemyHouse: h}
	return nil
}

func (v *visitor) VisitRooseBoltonHouseCardsReturned(e *gamelog.RooseBoltonHouseCardsReturned) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	cards, err := lookupAll(v, house.HouseCards, "houseCards", e.HouseCards)
	if err != nil {
		return err
	}
	v.view = &RooseBoltonHouseCardsReturnedView{House: house, HouseCards: cards}
	return nil
}

func (v *visitor) VisitLorasTyrellAttackOrderMoved(e *gamelog.LorasTyrellAttackOrderMoved) error {
	order, err := v.order("order", e.Order)
	if err != nil {
		return err
	}
	region, err := v.region("region", e.Region)
	if err != nil {
		return err
	}
	v.view = &LorasTyrellAttackOrderMovedView{Order: order, Region: region}
	return nil
}

func (v *visitor) VisitQueenOfThornsNoOrderAvailable(e *gamelog.QueenOfThornsNoOrderAvailable) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	affected, err := v.house("affectedHouse", e.AffectedHouse)
	if err != nil {
		return err
	}
	v.view = &QueenOfThornsNoOrderAvailableView{House: house, AffectedHouse: affected}
	return nil
}

func (v *visitor) VisitQueenOfThornsOrderRemoved(e *gamelog.QueenOfThornsOrderRemoved) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	affected, err := v.house("affectedHouse", e.AffectedHouse)
	if err != nil {
		return err
	}
	region, err := v.region("region", e.Region)
	if err != nil {
		return err
	}
	order, err := v.order("orderRemoved", e.OrderRemoved)
	if err != nil {
		return err
	}
	v.view = &QueenOfThornsOrderRemovedView{House: house, AffectedHouse: affected, Region: region, OrderRemoved: order}
	return nil
}

func (v *visitor) VisitTywinLannisterPowerTokensGained(e *gamelog.TywinLannisterPowerTokensGained) error {
	h, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	v.view = &TywinLannisterPowerTokensGainedView{House: h, PowerTokensGained: e.PowerTokensGained}
	return nil
}

func (v *visitor) VisitVassalClaimed(e *gamelog.VassalClaimed) error {
	house, err := v.house("house", e.House)
	if err != nil {
		return err
	}
	vassal, err := v.house("vassal", e.Vassal)
	if err != nil {
		return err
	}
	v.view = &VassalClaimedView{House: house, Vassal: vassal}
	return nil
}
