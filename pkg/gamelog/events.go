package gamelog

import "github.com/jwebster45206/ravenlog/pkg/entity"

// Event is one game log record. The set of implementations is closed: every
// record kind is listed in the kind table and has a method on Visitor.
type Event interface {
	Kind() Kind
	// Validate checks the payload invariants that JSON shape alone cannot express.
	Validate() error
	// Accept dispatches the record to the matching Visitor method.
	Accept(v Visitor) error
	isEvent()
}

// TurnBegin opens a new game round.
type TurnBegin struct {
	Turn int `json:"turn"`
}

// SupportDeclared records whom a house's support orders back in a combat.
// A nil Supported means the house supported no-one.
type SupportDeclared struct {
	Supporter entity.HouseID  `json:"supporter"`
	Supported *entity.HouseID `json:"supported,omitempty"`
}

// Attack records a march into an enemy or neutral area.
// A nil Attacked means the target was a neutral force.
type Attack struct {
	Attacker        entity.HouseID      `json:"attacker"`
	Attacked        *entity.HouseID     `json:"attacked,omitempty"`
	AttackingRegion entity.RegionID     `json:"attackingRegion"`
	AttackedRegion  entity.RegionID     `json:"attackedRegion"`
	Units           []entity.UnitTypeID `json:"units"`
}

// MarchResolved records the moves of one march order.
type MarchResolved struct {
	House          entity.HouseID  `json:"house"`
	StartingRegion entity.RegionID `json:"startingRegion"`
	Moves          []RegionUnits   `json:"moves"`
}

type WesterosCardExecuted struct {
	WesterosCardType entity.WesterosCardTypeID `json:"westerosCardType"`
}

// WesterosCardsDrawn lists the cards drawn at the start of the Westeros phase.
type WesterosCardsDrawn struct {
	WesterosCardTypes     []entity.WesterosCardTypeID `json:"westerosCardTypes"`
	AddedWildlingStrength int                         `json:"addedWildlingStrength"`
}

// CombatResult carries the final strength breakdown of a combat.
type CombatResult struct {
	Winner entity.HouseID `json:"winner"`
	Stats  []CombatStats  `json:"stats"`
}

type WildlingCardRevealed struct {
	WildlingCard entity.WildlingCardID `json:"wildlingCard"`
}

// WildlingBidding records the bids placed against a wildling attack.
type WildlingBidding struct {
	Results            []BidGroup `json:"results"`
	NightsWatchVictory bool       `json:"nightsWatchVictory"`
}

type LowestBidderChosen struct {
	LowestBidder entity.HouseID `json:"lowestBidder"`
}

type HighestBidderChosen struct {
	HighestBidder entity.HouseID `json:"highestBidder"`
}

// PlayerMustered lists the units a house recruited, grouped by mustering castle.
type PlayerMustered struct {
	House      entity.HouseID   `json:"house"`
	Musterings []MusteringGroup `json:"musterings"`
}

type WinnerDeclared struct {
	Winner entity.HouseID `json:"winner"`
}

type RavenHolderWildlingCardPutBottom struct {
	RavenHolder entity.HouseID `json:"ravenHolder"`
}

type RavenHolderWildlingCardPutTop struct {
	RavenHolder entity.HouseID `json:"ravenHolder"`
}

// RaidDone records the resolution of a raid order. Raidee, RaidedRegion and
// OrderRaided are either all set or all nil (the raid removed nothing).
type RaidDone struct {
	Raider       entity.HouseID   `json:"raider"`
	RaiderRegion entity.RegionID  `json:"raiderRegion"`
	Raidee       *entity.HouseID  `json:"raidee,omitempty"`
	RaidedRegion *entity.RegionID `json:"raidedRegion,omitempty"`
	OrderRaided  *entity.OrderID  `json:"orderRaided,omitempty"`
}

type AThroneOfBladesChoice struct {
	House  entity.HouseID       `json:"house"`
	Choice ThroneOfBladesOption `json:"choice"`
}

type DarkWingsDarkWordsChoice struct {
	House  entity.HouseID  `json:"house"`
	Choice DarkWingsOption `json:"choice"`
}

type PutToTheSwordChoice struct {
	House  entity.HouseID      `json:"house"`
	Choice PutToTheSwordOption `json:"choice"`
}

// WinterIsComing records the replacement card drawn after a reshuffle.
type WinterIsComing struct {
	DrawnCardType entity.WesterosCardTypeID `json:"drawnCardType"`
}

type WesterosPhaseBegan struct{}

type PlanningPhaseBegan struct{}

type ActionPhaseBegan struct{}

type CombatValyrianSwordUsed struct {
	House entity.HouseID `json:"house"`
}

// CombatHouseCardChosen lists the house card each combatant committed.
type CombatHouseCardChosen struct {
	HouseCards []HouseCardChoice `json:"houseCards"`
}

// ClashOfKingsFinalOrdering is the resolved order of one influence track.
type ClashOfKingsFinalOrdering struct {
	TrackerI   InfluenceTrack   `json:"trackerI"`
	FinalOrder []entity.HouseID `json:"finalOrder"`
}

type ClashOfKingsBiddingDone struct {
	TrackerI InfluenceTrack `json:"trackerI"`
	Results  []BidGroup     `json:"results"`
}

type WildlingStrengthTriggerWildlingAttack struct {
	WildlingStrength int `json:"wildlingStrength"`
}

type MarchOrderRemoved struct {
	House  entity.HouseID  `json:"house"`
	Region entity.RegionID `json:"region"`
}

type StarredConsolidatePowerForPowerTokens struct {
	House           entity.HouseID  `json:"house"`
	Region          entity.RegionID `json:"region"`
	PowerTokenCount int             `json:"powerTokenCount"`
}

// ArmiesReconciled lists the units removed to respect supply limits.
type ArmiesReconciled struct {
	House  entity.HouseID `json:"house"`
	Armies []RegionUnits  `json:"armies"`
}

type TyrionLannisterChoiceMade struct {
	House           entity.HouseID `json:"house"`
	AffectedHouse   entity.HouseID `json:"affectedHouse"`
	ChooseToReplace bool           `json:"chooseToReplace"`
}

// TyrionLannisterHouseCardReplaced records the card picked after Tyrion's
// cancellation. A nil NewHouseCard means no other card was available.
type TyrionLannisterHouseCardReplaced struct {
	AffectedHouse entity.HouseID      `json:"affectedHouse"`
	NewHouseCard  *entity.HouseCardID `json:"newHouseCard,omitempty"`
}

type ArianneMartellPreventMovement struct {
	EnemyHouse entity.HouseID `json:"enemyHouse"`
}

type RooseBoltonHouseCardsReturned struct {
	House      entity.HouseID       `json:"house"`
	HouseCards []entity.HouseCardID `json:"houseCards"`
}

type LorasTyrellAttackOrderMoved struct {
	Order  entity.OrderID  `json:"order"`
	Region entity.RegionID `json:"region"`
}

type QueenOfThornsNoOrderAvailable struct {
	House         entity.HouseID `json:"house"`
	AffectedHouse entity.HouseID `json:"affectedHouse"`
}

type QueenOfThornsOrderRemoved struct {
	House         entity.HouseID  `json:"house"`
	AffectedHouse entity.HouseID  `json:"affectedHouse"`
	Region        entity.RegionID `json:"region"`
	OrderRemoved  entity.OrderID  `json:"orderRemoved"`
}

type TywinLannisterPowerTokensGained struct {
	House             entity.HouseID `json:"house"`
	PowerTokensGained int            `json:"powerTokensGained"`
}

// VassalClaimed records a house taking command of a vassal for the turn.
type VassalClaimed struct {
	House  entity.HouseID `json:"house"`
	Vassal entity.HouseID `json:"vassal"`
}

func (*TurnBegin) Kind() Kind               { return KindTurnBegin }
func (e *TurnBegin) Accept(v Visitor) error { return v.VisitTurnBegin(e) }
func (*TurnBegin) isEvent()                 {}

func (*SupportDeclared) Kind() Kind               { return KindSupportDeclared }
func (e *SupportDeclared) Accept(v Visitor) error { return v.VisitSupportDeclared(e) }
func (*SupportDeclared) isEvent()                 {}

func (*Attack) Kind() Kind               { return KindAttack }
func (e *Attack) Accept(v Visitor) error { return v.VisitAttack(e) }
func (*Attack) isEvent()                 {}

func (*MarchResolved) Kind() Kind               { return KindMarchResolved }
func (e *MarchResolved) Accept(v Visitor) error { return v.VisitMarchResolved(e) }
func (*MarchResolved) isEvent()                 {}

func (*WesterosCardExecuted) Kind() Kind               { return KindWesterosCardExecuted }
func (e *WesterosCardExecuted) Accept(v Visitor) error { return v.VisitWesterosCardExecuted(e) }
func (*WesterosCardExecuted) isEvent()                 {}

func (*WesterosCardsDrawn) Kind() Kind               { return KindWesterosCardsDrawn }
func (e *WesterosCardsDrawn) Accept(v Visitor) error { return v.VisitWesterosCardsDrawn(e) }
func (*WesterosCardsDrawn) isEvent()                 {}

func (*CombatResult) Kind() Kind               { return KindCombatResult }
func (e *CombatResult) Accept(v Visitor) error { return v.VisitCombatResult(e) }
func (*CombatResult) isEvent()                 {}

func (*WildlingCardRevealed) Kind() Kind               { return KindWildlingCardRevealed }
func (e *WildlingCardRevealed) Accept(v Visitor) error { return v.VisitWildlingCardRevealed(e) }
func (*WildlingCardRevealed) isEvent()                 {}

func (*WildlingBidding) Kind() Kind               { return KindWildlingBidding }
func (e *WildlingBidding) Accept(v Visitor) error { return v.VisitWildlingBidding(e) }
func (*WildlingBidding) isEvent()                 {}

func (*LowestBidderChosen) Kind() Kind               { return KindLowestBidderChosen }
func (e *LowestBidderChosen) Accept(v Visitor) error { return v.VisitLowestBidderChosen(e) }
func (*LowestBidderChosen) isEvent()                 {}

func (*HighestBidderChosen) Kind() Kind               { return KindHighestBidderChosen }
func (e *HighestBidderChosen) Accept(v Visitor) error { return v.VisitHighestBidderChosen(e) }
func (*HighestBidderChosen) isEvent()                 {}

func (*PlayerMustered) Kind() Kind               { return KindPlayerMustered }
func (e *PlayerMustered) Accept(v Visitor) error { return v.VisitPlayerMustered(e) }
func (*PlayerMustered) isEvent()                 {}

func (*WinnerDeclared) Kind() Kind               { return KindWinnerDeclared }
func (e *WinnerDeclared) Accept(v Visitor) error { return v.VisitWinnerDeclared(e) }
func (*WinnerDeclared) isEvent()                 {}

func (*RavenHolderWildlingCardPutBottom) Kind() Kind               { return KindRavenHolderWildlingCardBottom }
func (e *RavenHolderWildlingCardPutBottom) Accept(v Visitor) error { return v.VisitRavenHolderWildlingCardPutBottom(e) }
func (*RavenHolderWildlingCardPutBottom) isEvent()                 {}

func (*RavenHolderWildlingCardPutTop) Kind() Kind               { return KindRavenHolderWildlingCardTop }
func (e *RavenHolderWildlingCardPutTop) Accept(v Visitor) error { return v.VisitRavenHolderWildlingCardPutTop(e) }
func (*RavenHolderWildlingCardPutTop) isEvent()                 {}

func (*RaidDone) Kind() Kind               { return KindRaidDone }
func (e *RaidDone) Accept(v Visitor) error { return v.VisitRaidDone(e) }
func (*RaidDone) isEvent()                 {}

func (*AThroneOfBladesChoice) Kind() Kind               { return KindAThroneOfBladesChoice }
func (e *AThroneOfBladesChoice) Accept(v Visitor) error { return v.VisitAThroneOfBladesChoice(e) }
func (*AThroneOfBladesChoice) isEvent()                 {}

func (*DarkWingsDarkWordsChoice) Kind() Kind               { return KindDarkWingsDarkWordsChoice }
func (e *DarkWingsDarkWordsChoice) Accept(v Visitor) error { return v.VisitDarkWingsDarkWordsChoice(e) }
func (*DarkWingsDarkWordsChoice) isEvent()                 {}

func (*PutToTheSwordChoice) Kind() Kind               { return KindPutToTheSwordChoice }
func (e *PutToTheSwordChoice) Accept(v Visitor) error { return v.VisitPutToTheSwordChoice(e) }
func (*PutToTheSwordChoice) isEvent()                 {}

func (*WinterIsComing) Kind() Kind               { return KindWinterIsComing }
func (e *WinterIsComing) Accept(v Visitor) error { return v.VisitWinterIsComing(e) }
func (*WinterIsComing) isEvent()                 {}

func (*WesterosPhaseBegan) Kind() Kind               { return KindWesterosPhaseBegan }
func (e *WesterosPhaseBegan) Accept(v Visitor) error { return v.VisitWesterosPhaseBegan(e) }
func (*WesterosPhaseBegan) isEvent()                 {}

func (*PlanningPhaseBegan) Kind() Kind               { return KindPlanningPhaseBegan }
func (e *PlanningPhaseBegan) Accept(v Visitor) error { return v.VisitPlanningPhaseBegan(e) }
func (*PlanningPhaseBegan) isEvent()                 {}

func (*ActionPhaseBegan) Kind() Kind               { return KindActionPhaseBegan }
func (e *ActionPhaseBegan) Accept(v Visitor) error { return v.VisitActionPhaseBegan(e) }
func (*ActionPhaseBegan) isEvent()                 {}

func (*CombatValyrianSwordUsed) Kind() Kind               { return KindCombatValyrianSwordUsed }
func (e *CombatValyrianSwordUsed) Accept(v Visitor) error { return v.VisitCombatValyrianSwordUsed(e) }
func (*CombatValyrianSwordUsed) isEvent()                 {}

func (*CombatHouseCardChosen) Kind() Kind               { return KindCombatHouseCardChosen }
func (e *CombatHouseCardChosen) Accept(v Visitor) error { return v.VisitCombatHouseCardChosen(e) }
func (*CombatHouseCardChosen) isEvent()                 {}

func (*ClashOfKingsFinalOrdering) Kind() Kind               { return KindClashOfKingsFinalOrder }
func (e *ClashOfKingsFinalOrdering) Accept(v Visitor) error { return v.VisitClashOfKingsFinalOrdering(e) }
func (*ClashOfKingsFinalOrdering) isEvent()                 {}

func (*ClashOfKingsBiddingDone) Kind() Kind               { return KindClashOfKingsBiddingDone }
func (e *ClashOfKingsBiddingDone) Accept(v Visitor) error { return v.VisitClashOfKingsBiddingDone(e) }
func (*ClashOfKingsBiddingDone) isEvent()                 {}

func (*WildlingStrengthTriggerWildlingAttack) Kind() Kind               { return KindWildlingStrengthTriggerAttack }
func (e *WildlingStrengthTriggerWildlingAttack) Accept(v Visitor) error { return v.VisitWildlingStrengthTriggerWildlingAttack(e) }
func (*WildlingStrengthTriggerWildlingAttack) isEvent()                 {}

func (*MarchOrderRemoved) Kind() Kind               { return KindMarchOrderRemoved }
func (e *MarchOrderRemoved) Accept(v Visitor) error { return v.VisitMarchOrderRemoved(e) }
func (*MarchOrderRemoved) isEvent()                 {}

func (*StarredConsolidatePowerForPowerTokens) Kind() Kind               { return KindStarredConsolidatePower }
func (e *StarredConsolidatePowerForPowerTokens) Accept(v Visitor) error { return v.VisitStarredConsolidatePowerForPowerTokens(e) }
func (*StarredConsolidatePowerForPowerTokens) isEvent()                 {}

func (*ArmiesReconciled) Kind() Kind               { return KindArmiesReconciled }
func (e *ArmiesReconciled) Accept(v Visitor) error { return v.VisitArmiesReconciled(e) }
func (*ArmiesReconciled) isEvent()                 {}

func (*TyrionLannisterChoiceMade) Kind() Kind               { return KindTyrionLannisterChoiceMade }
func (e *TyrionLannisterChoiceMade) Accept(v Visitor) error { return v.VisitTyrionLannisterChoiceMade(e) }
func (*TyrionLannisterChoiceMade) isEvent()                 {}

func (*TyrionLannisterHouseCardReplaced) Kind() Kind               { return KindTyrionLannisterHouseCardReplaced }
func (e *TyrionLannisterHouseCardReplaced) Accept(v Visitor) error { return v.VisitTyrionLannisterHouseCardReplaced(e) }
func (*TyrionLannisterHouseCardReplaced) isEvent()                 {}

func (*ArianneMartellPreventMovement) Kind() Kind               { return KindArianneMartellPreventMovement }
func (e *ArianneMartellPreventMovement) Accept(v Visitor) error { return v.VisitArianneMartellPreventMovement(e) }
func (*ArianneMartellPreventMovement) isEvent()                 {}

func (*RooseBoltonHouseCardsReturned) Kind() Kind               { return KindRooseBoltonHouseCardsReturned }
func (e *RooseBoltonHouseCardsReturned) Accept(v Visitor) error { return v.VisitRooseBoltonHouseCardsReturned(e) }
func (*RooseBoltonHouseCardsReturned) isEvent()                 {}

func (*LorasTyrellAttackOrderMoved) Kind() Kind               { return KindLorasTyrellAttackOrderMoved }
func (e *LorasTyrellAttackOrderMoved) Accept(v Visitor) error { return v.VisitLorasTyrellAttackOrderMoved(e) }
func (*LorasTyrellAttackOrderMoved) isEvent()                 {}

func (*QueenOfThornsNoOrderAvailable) Kind() Kind               { return KindQueenOfThornsNoOrderAvailable }
func (e *QueenOfThornsNoOrderAvailable) Accept(v Visitor) error { return v.VisitQueenOfThornsNoOrderAvailable(e) }
func (*QueenOfThornsNoOrderAvailable) isEvent()                 {}

func (*QueenOfThornsOrderRemoved) Kind() Kind               { return KindQueenOfThornsOrderRemoved }
func (e *QueenOfThornsOrderRemoved) Accept(v Visitor) error { return v.VisitQueenOfThornsOrderRemoved(e) }
func (*QueenOfThornsOrderRemoved) isEvent()                 {}

func (*TywinLannisterPowerTokensGained) Kind() Kind               { return KindTywinLannisterPowerTokensGained }
func (e *TywinLannisterPowerTokensGained) Accept(v Visitor) error { return v.VisitTywinLannisterPowerTokensGained(e) }
func (*TywinLannisterPowerTokensGained) isEvent()                 {}

func (*VassalClaimed) Kind() Kind               { return KindVassalClaimed }
func (e *VassalClaimed) Accept(v Visitor) error { return v.VisitVassalClaimed(e) }
func (*VassalClaimed) isEvent()                 {}
