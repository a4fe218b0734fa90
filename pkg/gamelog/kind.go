package gamelog

// Kind is the tag of a game log record. It fully determines the payload shape.
type Kind string

// Turn structure.
const (
	KindTurnBegin          Kind = "turn-begin"
	KindWesterosPhaseBegan Kind = "westeros-phase-began"
	KindPlanningPhaseBegan Kind = "planning-phase-began"
	KindActionPhaseBegan   Kind = "action-phase-began"
	KindWinnerDeclared     Kind = "winner-declared"
)

// Westeros phase.
const (
	KindWesterosCardExecuted     Kind = "westeros-card-executed"
	KindWesterosCardsDrawn       Kind = "westeros-cards-drawn"
	KindWinterIsComing           Kind = "winter-is-coming"
	KindAThroneOfBladesChoice    Kind = "a-throne-of-blades-choice"
	KindDarkWingsDarkWordsChoice Kind = "dark-wings-dark-words-choice"
	KindPutToTheSwordChoice      Kind = "put-to-the-sword-choice"
	KindPlayerMustered           Kind = "player-mustered"
	KindArmiesReconciled         Kind = "armies-reconciled"
	KindClashOfKingsBiddingDone  Kind = "clash-of-kings-bidding-done"
	KindClashOfKingsFinalOrder   Kind = "clash-of-kings-final-ordering"
)

// Wildlings.
const (
	KindWildlingCardRevealed          Kind = "wildling-card-revealed"
	KindWildlingBidding               Kind = "wildling-bidding"
	KindWildlingStrengthTriggerAttack Kind = "wildling-strength-trigger-wildling-attack"
	KindLowestBidderChosen            Kind = "lowest-bidder-chosen"
	KindHighestBidderChosen           Kind = "highest-bidder-chosen"
	KindRavenHolderWildlingCardBottom Kind = "raven-holder-wildling-card-put-bottom"
	KindRavenHolderWildlingCardTop    Kind = "raven-holder-wildling-card-put-top"
)

// Planning and action phases.
const (
	KindSupportDeclared         Kind = "support-declared"
	KindAttack                  Kind = "attack"
	KindMarchResolved           Kind = "march-resolved"
	KindMarchOrderRemoved       Kind = "march-order-removed"
	KindRaidDone                Kind = "raid-done"
	KindStarredConsolidatePower Kind = "starred-consolidate-power-for-power-tokens"
	KindVassalClaimed           Kind = "vassal-claimed"
)

// Combat.
const (
	KindCombatResult                     Kind = "combat-result"
	KindCombatValyrianSwordUsed          Kind = "combat-valyrian-sword-used"
	KindCombatHouseCardChosen            Kind = "combat-house-card-chosen"
	KindTyrionLannisterChoiceMade        Kind = "tyrion-lannister-choice-made"
	KindTyrionLannisterHouseCardReplaced Kind = "tyrion-lannister-house-card-replaced"
	KindArianneMartellPreventMovement    Kind = "arianne-martell-prevent-movement"
	KindRooseBoltonHouseCardsReturned    Kind = "roose-bolton-house-cards-returned"
	KindLorasTyrellAttackOrderMoved      Kind = "loras-tyrell-attack-order-moved"
	KindQueenOfThornsNoOrderAvailable    Kind = "queen-of-thorns-no-order-available"
	KindQueenOfThornsOrderRemoved        Kind = "queen-of-thorns-order-removed"
	KindTywinLannisterPowerTokensGained  Kind = "tywin-lannister-power-tokens-gained"
)

type kindEntry struct {
	kind     Kind
	newEvent func() Event
}

// kindTable is the closed set of record kinds understood by this build.
var kindTable = []kindEntry{
	{KindTurnBegin, func() Event { return new(TurnBegin) }},
	{KindSupportDeclared, func() Event { return new(SupportDeclared) }},
	{KindAttack, func() Event { return new(Attack) }},
	{KindMarchResolved, func() Event { return new(MarchResolved) }},
	{KindWesterosCardExecuted, func() Event { return new(WesterosCardExecuted) }},
	{KindWesterosCardsDrawn, func() Event { return new(WesterosCardsDrawn) }},
	{KindCombatResult, func() Event { return new(CombatResult) }},
	{KindWildlingCardRevealed, func() Event { return new(WildlingCardRevealed) }},
	{KindWildlingBidding, func() Event { return new(WildlingBidding) }},
	{KindLowestBidderChosen, func() Event { return new(LowestBidderChosen) }},
	{KindHighestBidderChosen, func() Event { return new(HighestBidderChosen) }},
	{KindPlayerMustered, func() Event { return new(PlayerMustered) }},
	{KindWinnerDeclared, func() Event { return new(WinnerDeclared) }},
	{KindRavenHolderWildlingCardBottom, func() Event { return new(RavenHolderWildlingCardPutBottom) }},
	{KindRavenHolderWildlingCardTop, func() Event { return new(RavenHolderWildlingCardPutTop) }},
	{KindRaidDone, func() Event { return new(RaidDone) }},
	{KindAThroneOfBladesChoice, func() Event { return new(AThroneOfBladesChoice) }},
	{KindDarkWingsDarkWordsChoice, func() Event { return new(DarkWingsDarkWordsChoice) }},
	{KindPutToTheSwordChoice, func() Event { return new(PutToTheSwordChoice) }},
	{KindWinterIsComing, func() Event { return new(WinterIsComing) }},
	{KindWesterosPhaseBegan, func() Event { return new(WesterosPhaseBegan) }},
	{KindPlanningPhaseBegan, func() Event { return new(PlanningPhaseBegan) }},
	{KindActionPhaseBegan, func() Event { return new(ActionPhaseBegan) }},
	{KindCombatValyrianSwordUsed, func() Event { return new(CombatValyrianSwordUsed) }},
	{KindCombatHouseCardChosen, func() Event { return new(CombatHouseCardChosen) }},
	{KindClashOfKingsFinalOrder, func() Event { return new(ClashOfKingsFinalOrdering) }},
	{KindClashOfKingsBiddingDone, func() Event { return new(ClashOfKingsBiddingDone) }},
	{KindWildlingStrengthTriggerAttack, func() Event { return new(WildlingStrengthTriggerWildlingAttack) }},
	{KindMarchOrderRemoved, func() Event { return new(MarchOrderRemoved) }},
	{KindStarredConsolidatePower, func() Event { return new(StarredConsolidatePowerForPowerTokens) }},
	{KindArmiesReconciled, func() Event { return new(ArmiesReconciled) }},
	{KindTyrionLannisterChoiceMade, func() Event { return new(TyrionLannisterChoiceMade) }},
	{KindTyrionLannisterHouseCardReplaced, func() Event { return new(TyrionLannisterHouseCardReplaced) }},
	{KindArianneMartellPreventMovement, func() Event { return new(ArianneMartellPreventMovement) }},
	{KindRooseBoltonHouseCardsReturned, func() Event { return new(RooseBoltonHouseCardsReturned) }},
	{KindLorasTyrellAttackOrderMoved, func() Event { return new(LorasTyrellAttackOrderMoved) }},
	{KindQueenOfThornsNoOrderAvailable, func() Event { return new(QueenOfThornsNoOrderAvailable) }},
	{KindQueenOfThornsOrderRemoved, func() Event { return new(QueenOfThornsOrderRemoved) }},
	{KindTywinLannisterPowerTokensGained, func() Event { return new(TywinLannisterPowerTokensGained) }},
	{KindVassalClaimed, func() Event { return new(VassalClaimed) }},
}

var kindIndex = func() map[Kind]func() Event {
	m := make(map[Kind]func() Event, len(kindTable))
	for _, k := range kindTable {
		m[k.kind] = k.newEvent
	}
	return m
}()

// Kinds returns every known kind in table order.
func Kinds() []Kind {
	out := make([]Kind, len(kindTable))
	for i, k := range kindTable {
		out[i] = k.kind
	}
	return out
}

// IsKnown reports whether k belongs to the closed set of kinds.
func (k Kind) IsKnown() bool {
	_, ok := kindIndex[k]
	return ok
}

// New returns a zero record of kind k, or false for an unknown kind.
func New(k Kind) (Event, bool) {
	f, ok := kindIndex[k]
	if !ok {
		return nil, false
	}
	return f(), true
}
