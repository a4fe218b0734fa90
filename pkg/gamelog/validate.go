package gamelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

func required[T ~string](field string, id T) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func optional[T ~string](field string, id *T) error {
	if id == nil {
		return nil
	}
	return required(field, *id)
}

func nonNegative(field string, n int) error {
	if n < 0 {
		return fmt.Errorf("%s must not be negative, got %d", field, n)
	}
	return nil
}

func nonEmpty[T any](field string, items []T) error {
	if len(items) == 0 {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}

func eachRequired[T ~string](field string, ids []T) error {
	for i, id := range ids {
		if err := required(fmt.Sprintf("%s[%d]", field, i), id); err != nil {
			return err
		}
	}
	return nil
}

func distinctHouses(field string, ids []entity.HouseID) error {
	seen := make(map[entity.HouseID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s lists house %s twice", field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateRegionUnits(field string, pairs []RegionUnits) error {
	for i, p := range pairs {
		at := fmt.Sprintf("%s[%d]", field, i)
		if err := errors.Join(
			required(at+".region", p.Region),
			nonEmpty(at+".units", p.Units),
			eachRequired(at+".units", p.Units),
		); err != nil {
			return err
		}
	}
	return nil
}

func validateBids(field string, groups []BidGroup) error {
	var all []entity.HouseID
	for i, g := range groups {
		at := fmt.Sprintf("%s[%d]", field, i)
		if err := errors.Join(
			nonNegative(at+".bid", g.Bid),
			nonEmpty(at+".houses", g.Houses),
			eachRequired(at+".houses", g.Houses),
		); err != nil {
			return err
		}
		all = append(all, g.Houses...)
	}
	return distinctHouses(field, all)
}

func (e *TurnBegin) Validate() error {
	if e.Turn < 1 {
		return fmt.Errorf("turn must be at least 1, got %d", e.Turn)
	}
	return nil
}

func (e *SupportDeclared) Validate() error {
	return errors.Join(
		required("supporter", e.Supporter),
		optional("supported", e.Supported),
	)
}

func (e *Attack) Validate() error {
	return errors.Join(
		required("attacker", e.Attacker),
		optional("attacked", e.Attacked),
		required("attackingRegion", e.AttackingRegion),
		required("attackedRegion", e.AttackedRegion),
		nonEmpty("units", e.Units),
		eachRequired("units", e.Units),
	)
}

func (e *MarchResolved) Validate() error {
	return errors.Join(
		required("house", e.House),
		required("startingRegion", e.StartingRegion),
		validateRegionUnits("moves", e.Moves),
	)
}

func (e *WesterosCardExecuted) Validate() error {
	return required("westerosCardType", e.WesterosCardType)
}

func (e *WesterosCardsDrawn) Validate() error {
	return errors.Join(
		nonEmpty("westerosCardTypes", e.WesterosCardTypes),
		eachRequired("westerosCardTypes", e.WesterosCardTypes),
		nonNegative("addedWildlingStrength", e.AddedWildlingStrength),
	)
}

func (e *CombatResult) Validate() error {
	if err := errors.Join(required("winner", e.Winner), nonEmpty("stats", e.Stats)); err != nil {
		return err
	}
	winnerFound := false
	for i, s := range e.Stats {
		at := fmt.Sprintf("stats[%d]", i)
		if err := errors.Join(
			required(at+".house", s.House),
			required(at+".region", s.Region),
			optional(at+".houseCard", s.HouseCard),
			nonNegative(at+".army", s.Army),
			nonNegative(at+".support", s.Support),
			nonNegative(at+".garrison", s.Garrison),
			nonNegative(at+".valyrianSteelBlade", s.ValyrianSteelBlade),
		); err != nil {
			return err
		}
		if s.House == e.Winner {
			winnerFound = true
		}
	}
	if !winnerFound {
		return fmt.Errorf("winner %s is not a combatant", e.Winner)
	}
	return nil
}

func (e *WildlingCardRevealed) Validate() error { return nil }

func (e *WildlingBidding) Validate() error {
	return validateBids("results", e.Results)
}

func (e *LowestBidderChosen) Validate() error {
	return required("lowestBidder", e.LowestBidder)
}

func (e *HighestBidderChosen) Validate() error {
	return required("highestBidder", e.HighestBidder)
}

func (e *PlayerMustered) Validate() error {
	if err := required("house", e.House); err != nil {
		return err
	}
	for i, g := range e.Musterings {
		at := fmt.Sprintf("musterings[%d]", i)
		if err := required(at+".origin", g.Origin); err != nil {
			return err
		}
		for j, r := range g.Recruits {
			rat := fmt.Sprintf("%s.recruits[%d]", at, j)
			if err := errors.Join(
				required(rat+".region", r.Region),
				optional(rat+".from", r.From),
				required(rat+".to", r.To),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *WinnerDeclared) Validate() error {
	return required("winner", e.Winner)
}

func (e *RavenHolderWildlingCardPutBottom) Validate() error {
	return required("ravenHolder", e.RavenHolder)
}

func (e *RavenHolderWildlingCardPutTop) Validate() error {
	return required("ravenHolder", e.RavenHolder)
}

func (e *RaidDone) Validate() error {
	if err := errors.Join(
		required("raider", e.Raider),
		required("raiderRegion", e.RaiderRegion),
		optional("raidee", e.Raidee),
		optional("raidedRegion", e.RaidedRegion),
	); err != nil {
		return err
	}
	set := 0
	for _, present := range []bool{e.Raidee != nil, e.RaidedRegion != nil, e.OrderRaided != nil} {
		if present {
			set++
		}
	}
	if set != 0 && set != 3 {
		return errors.New("raidee, raidedRegion and orderRaided must be all set or all absent")
	}
	return nil
}

func (e *AThroneOfBladesChoice) Validate() error {
	if !e.Choice.Valid() {
		return fmt.Errorf("choice %d out of range", e.Choice)
	}
	return required("house", e.House)
}

func (e *DarkWingsDarkWordsChoice) Validate() error {
	if !e.Choice.Valid() {
		return fmt.Errorf("choice %d out of range", e.Choice)
	}
	return required("house", e.House)
}

func (e *PutToTheSwordChoice) Validate() error {
	if !e.Choice.Valid() {
		return fmt.Errorf("choice %d out of range", e.Choice)
	}
	return required("house", e.House)
}

func (e *WinterIsComing) Validate() error {
	return required("drawnCardType", e.DrawnCardType)
}

func (e *WesterosPhaseBegan) Validate() error { return nil }
func (e *PlanningPhaseBegan) Validate() error { return nil }
func (e *ActionPhaseBegan) Validate() error   { return nil }

func (e *CombatValyrianSwordUsed) Validate() error {
	return required("house", e.House)
}

func (e *CombatHouseCardChosen) Validate() error {
	if err := nonEmpty("houseCards", e.HouseCards); err != nil {
		return err
	}
	houses := make([]entity.HouseID, 0, len(e.HouseCards))
	for i, c := range e.HouseCards {
		at := fmt.Sprintf("houseCards[%d]", i)
		if err := errors.Join(required(at+".house", c.House), required(at+".houseCard", c.HouseCard)); err != nil {
			return err
		}
		houses = append(houses, c.House)
	}
	return distinctHouses("houseCards", houses)
}

func (e *ClashOfKingsFinalOrdering) Validate() error {
	if !e.TrackerI.Valid() {
		return fmt.Errorf("trackerI %d out of range", e.TrackerI)
	}
	return errors.Join(
		nonEmpty("finalOrder", e.FinalOrder),
		eachRequired("finalOrder", e.FinalOrder),
		distinctHouses("finalOrder", e.FinalOrder),
	)
}

func (e *ClashOfKingsBiddingDone) Validate() error {
	if !e.TrackerI.Valid() {
		return fmt.Errorf("trackerI %d out of range", e.TrackerI)
	}
	return validateBids("results", e.Results)
}

func (e *WildlingStrengthTriggerWildlingAttack) Validate() error {
	return nonNegative("wildlingStrength", e.WildlingStrength)
}

func (e *MarchOrderRemoved) Validate() error {
	return errors.Join(required("house", e.House), required("region", e.Region))
}

func (e *StarredConsolidatePowerForPowerTokens) Validate() error {
	return errors.Join(
		required("house", e.House),
		required("region", e.Region),
		nonNegative("powerTokenCount", e.PowerTokenCount),
	)
}

func (e *ArmiesReconciled) Validate() error {
	return errors.Join(
		required("house", e.House),
		nonEmpty("armies", e.Armies),
		validateRegionUnits("armies", e.Armies),
	)
}

func (e *TyrionLannisterChoiceMade) Validate() error {
	return errors.Join(required("house", e.House), required("affectedHouse", e.AffectedHouse))
}

func (e *TyrionLannisterHouseCardReplaced) Validate() error {
	return errors.Join(required("affectedHouse", e.AffectedHouse), optional("newHouseCard", e.NewHouseCard))
}

func (e *ArianneMartellPreventMovement) Validate() error {
	return required("enemyHouse", e.EnemyHouse)
}

func (e *RooseBoltonHouseCardsReturned) Validate() error {
	return errors.Join(
		required("house", e.House),
		nonEmpty("houseCards", e.HouseCards),
		eachRequired("houseCards", e.HouseCards),
	)
}

func (e *LorasTyrellAttackOrderMoved) Validate() error {
	return required("region", e.Region)
}

func (e *QueenOfThornsNoOrderAvailable) Validate() error {
	return errors.Join(required("house", e.House), required("affectedHouse", e.AffectedHouse))
}

func (e *QueenOfThornsOrderRemoved) Validate() error {
	return errors.Join(
		required("house", e.House),
		required("affectedHouse", e.AffectedHouse),
		required("region", e.Region),
	)
}

func (e *TywinLannisterPowerTokensGained) Validate() error {
	return errors.Join(required("house", e.House), nonNegative("powerTokensGained", e.PowerTokensGained))
}

func (e *VassalClaimed) Validate() error {
	if err := errors.Join(required("house", e.House), required("vassal", e.Vassal)); err != nil {
		return err
	}
	if e.House == e.Vassal {
		return fmt.Errorf("house %s cannot claim itself", e.House)
	}
	return nil
}
