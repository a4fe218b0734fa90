package resolve

import (
	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

// View is a record with every id replaced by the entity it names.
type View interface {
	Kind() gamelog.Kind
}

// RegionUnits is a region with an ordered list of unit types.
type RegionUnits struct {
	Region *entity.Region     `json:"region"`
	Units  []*entity.UnitType `json:"units"`
}

// BidGroup is a bid value and the houses that bid it.
type BidGroup struct {
	Bid    int             `json:"bid"`
	Houses []*entity.House `json:"houses"`
}

// BidRow is one house's bid.
type BidRow struct {
	Bid   int           `json:"bid"`
	House *entity.House `json:"house"`
}

// BidResults are bid groups in record order.
type BidResults []BidGroup

// Rows flattens the groups into one row per house, groups in order and
// houses within a group in order.
func (r BidResults) Rows() []BidRow {
	var rows []BidRow
	for _, g := range r {
		for _, h := range g.Houses {
			rows = append(rows, BidRow{Bid: g.Bid, House: h})
		}
	}
	return rows
}

// Recruit is one unit raised during mustering.
type Recruit struct {
	Region *entity.Region          `json:"region"`
	From   Maybe[*entity.UnitType] `json:"from"`
	To     *entity.UnitType        `json:"to"`
}

// Mustering is the set of recruits paid for by one castle or stronghold.
type Mustering struct {
	Origin   *entity.Region `json:"origin"`
	Recruits []Recruit      `json:"recruits"`
}

// CombatSide is the strength breakdown of one combatant.
type CombatSide struct {
	House              *entity.House            `json:"house"`
	Region             *entity.Region           `json:"region"`
	Army               int                      `json:"army"`
	OrderBonus         int                      `json:"orderBonus"`
	Support            int                      `json:"support"`
	Garrison           int                      `json:"garrison"`
	HouseCard          Maybe[*entity.HouseCard] `json:"houseCard"`
	ValyrianSteelBlade int                      `json:"valyrianSteelBlade"`
	Total              int                      `json:"total"`
}

// HouseCardStrength is the printed strength of the side's card, or 0 without one.
func (s CombatSide) HouseCardStrength() int {
	if card, ok := s.HouseCard.Get(); ok {
		return card.CombatStrength
	}
	return 0
}

// CardChoice is the house card a combatant committed.
type CardChoice struct {
	House     *entity.House     `json:"house"`
	HouseCard *entity.HouseCard `json:"houseCard"`
}

// RaidTarget is the order a raid removed and whose it was.
type RaidTarget struct {
	Raidee       *entity.House  `json:"raidee"`
	RaidedRegion *entity.Region `json:"raidedRegion"`
	OrderRaided  *entity.Order  `json:"orderRaided"`
}

type TurnBeginView struct {
	Turn int `json:"turn"`
}

type SupportDeclaredView struct {
	Supporter *entity.House        `json:"supporter"`
	Supported Maybe[*entity.House] `json:"supported"`
}

type AttackView struct {
	Attacker        *entity.House        `json:"attacker"`
	Attacked        Maybe[*entity.House] `json:"attacked"`
	AttackingRegion *entity.Region       `json:"attackingRegion"`
	AttackedRegion  *entity.Region       `json:"attackedRegion"`
	Units           []*entity.UnitType   `json:"units"`
}

type MarchResolvedView struct {
	House          *entity.House  `json:"house"`
	StartingRegion *entity.Region `json:"startingRegion"`
	Moves          []RegionUnits  `json:"moves"`
}

type WesterosCardExecutedView struct {
	WesterosCardType *entity.WesterosCardType `json:"westerosCardType"`
}

type WesterosCardsDrawnView struct {
	WesterosCardTypes     []*entity.WesterosCardType `json:"westerosCardTypes"`
	AddedWildlingStrength int                        `json:"addedWildlingStrength"`
}

type CombatResultView struct {
	Winner *entity.House `json:"winner"`
	Stats  []CombatSide  `json:"stats"`
}

// WildlingCardRevealedView carries the card and its printed type, looked up
// through the wildling deck.
type WildlingCardRevealedView struct {
	WildlingCard *entity.WildlingCard     `json:"wildlingCard"`
	CardType     *entity.WildlingCardType `json:"cardType"`
}

type WildlingBiddingView struct {
	Results            BidResults `json:"results"`
	NightsWatchVictory bool       `json:"nightsWatchVictory"`
}

type LowestBidderChosenView struct {
	LowestBidder *entity.House `json:"lowestBidder"`
}

type HighestBidderChosenView struct {
	HighestBidder *entity.House `json:"highestBidder"`
}

type PlayerMusteredView struct {
	House      *entity.House `json:"house"`
	Musterings []Mustering   `json:"musterings"`
}

// Recruits flattens the musterings into one list, in record order.
func (v *PlayerMusteredView) Recruits() []Recruit {
	var out []Recruit
	for _, m := range v.Musterings {
		out = append(out, m.Recruits...)
	}
	return out
}

type WinnerDeclaredView struct {
	Winner *entity.House `json:"winner"`
}

type RavenHolderWildlingCardPutBottomView struct {
	RavenHolder *entity.House `json:"ravenHolder"`
}

type RavenHolderWildlingCardPutTopView struct {
	RavenHolder *entity.House `json:"ravenHolder"`
}

// RaidDoneView has a nil Raid when the raid removed nothing.
type RaidDoneView struct {
	Raider       *entity.House  `json:"raider"`
	RaiderRegion *entity.Region `json:"raiderRegion"`
	Raid         *RaidTarget    `json:"raid"`
}

type AThroneOfBladesChoiceView struct {
	House  *entity.House                `json:"house"`
	Choice gamelog.ThroneOfBladesOption `json:"choice"`
}

type DarkWingsDarkWordsChoiceView struct {
	House  *entity.House           `json:"house"`
	Choice gamelog.DarkWingsOption `json:"choice"`
}

type PutToTheSwordChoiceView struct {
	House  *entity.House               `json:"house"`
	Choice gamelog.PutToTheSwordOption `json:"choice"`
}

type WinterIsComingView struct {
	DrawnCardType *entity.WesterosCardType `json:"drawnCardType"`
}

type WesterosPhaseBeganView struct{}

type PlanningPhaseBeganView struct{}

type ActionPhaseBeganView struct{}

type CombatValyrianSwordUsedView struct {
	House *entity.House `json:"house"`
}

type CombatHouseCardChosenView struct {
	HouseCards []CardChoice `json:"houseCards"`
}

type ClashOfKingsFinalOrderingView struct {
	Track      gamelog.InfluenceTrack `json:"track"`
	FinalOrder []*entity.House        `json:"finalOrder"`
}

type ClashOfKingsBiddingDoneView struct {
	Track   gamelog.InfluenceTrack `json:"track"`
	Results BidResults             `json:"results"`
}

type WildlingStrengthTriggerWildlingAttackView struct {
	WildlingStrength int `json:"wildlingStrength"`
}

type MarchOrderRemovedView struct {
	House  *entity.House  `json:"house"`
	Region *entity.Region `json:"region"`
}

type StarredConsolidatePowerForPowerTokensView struct {
	House           *entity.House  `json:"house"`
	Region          *entity.Region `json:"region"`
	PowerTokenCount int            `json:"powerTokenCount"`
}

type ArmiesReconciledView struct {
	House  *entity.House `json:"house"`
	Armies []RegionUnits `json:"armies"`
}

type TyrionLannisterChoiceMadeView struct {
	House           *entity.House `json:"house"`
	AffectedHouse   *entity.House `json:"affectedHouse"`
	ChooseToReplace bool          `json:"chooseToReplace"`
}

type TyrionLannisterHouseCardReplacedView struct {
	AffectedHouse *entity.House            `json:"affectedHouse"`
	NewHouseCard  Maybe[*entity.HouseCard] `json:"newHouseCard"`
}

type ArianneMartellPreventMovementView struct {
	EnemyHouse *entity.House `json:"enemyHouse"`
}

type RooseBoltonHouseCardsReturnedView struct {
	House      *entity.House       `json:"house"`
	HouseCards []*entity.HouseCard `json:"houseCards"`
}

type LorasTyrellAttackOrderMovedView struct {
	Order  *entity.Order  `json:"order"`
	Region *entity.Region `json:"region"`
}

type QueenOfThornsNoOrderAvailableView struct {
	House         *entity.House `json:"house"`
	AffectedHouse *entity.House `json:"affectedHouse"`
}

type QueenOfThornsOrderRemovedView struct {
	House         *entity.House  `json:"house"`
	AffectedHouse *entity.House  `json:"affectedHouse"`
	Region        *entity.Region `json:"region"`
	OrderRemoved  *entity.Order  `json:"orderRemoved"`
}

type TywinLannisterPowerTokensGainedView struct {
	House             *entity.House `json:"house"`
	PowerTokensGained int           `json:"powerTokensGained"`
}

type VassalClaimedView struct {
	House  *entity.House `json:"house"`
	Vassal *entity.House `json:"vassal"`
}

func (*TurnBeginView) Kind() gamelog.Kind                             { return gamelog.KindTurnBegin }
func (*SupportDeclaredView) Kind() gamelog.Kind                       { return gamelog.KindSupportDeclared }
func (*AttackView) Kind() gamelog.Kind                                { return gamelog.KindAttack }
func (*MarchResolvedView) Kind() gamelog.Kind                         { return gamelog.KindMarchResolved }
func (*WesterosCardExecutedView) Kind() gamelog.Kind                  { return gamelog.KindWesterosCardExecuted }
func (*WesterosCardsDrawnView) Kind() gamelog.Kind                    { return gamelog.KindWesterosCardsDrawn }
func (*CombatResultView) Kind() gamelog.Kind                          { return gamelog.KindCombatResult }
func (*WildlingCardRevealedView) Kind() gamelog.Kind                  { return gamelog.KindWildlingCardRevealed }
func (*WildlingBiddingView) Kind() gamelog.Kind                       { return gamelog.KindWildlingBidding }
func (*LowestBidderChosenView) Kind() gamelog.Kind                    { return gamelog.KindLowestBidderChosen }
func (*HighestBidderChosenView) Kind() gamelog.Kind                   { return gamelog.KindHighestBidderChosen }
func (*PlayerMusteredView) Kind() gamelog.Kind                        { return gamelog.KindPlayerMustered }
func (*WinnerDeclaredView) Kind() gamelog.Kind                        { return gamelog.KindWinnerDeclared }
func (*RavenHolderWildlingCardPutBottomView) Kind() gamelog.Kind      { return gamelog.KindRavenHolderWildlingCardBottom }
func (*RavenHolderWildlingCardPutTopView) Kind() gamelog.Kind         { return gamelog.KindRavenHolderWildlingCardTop }
func (*RaidDoneView) Kind() gamelog.Kind                              { return gamelog.KindRaidDone }
func (*AThroneOfBladesChoiceView) Kind() gamelog.Kind                 { return gamelog.KindAThroneOfBladesChoice }
func (*DarkWingsDarkWordsChoiceView) Kind() gamelog.Kind              { return gamelog.KindDarkWingsDarkWordsChoice }
func (*PutToTheSwordChoiceView) Kind() gamelog.Kind                   { return gamelog.KindPutToTheSwordChoice }
func (*WinterIsComingView) Kind() gamelog.Kind                        { return gamelog.KindWinterIsComing }
func (*WesterosPhaseBeganView) Kind() gamelog.Kind                    { return gamelog.KindWesterosPhaseBegan }
func (*PlanningPhaseBeganView) Kind() gamelog.Kind                    { return gamelog.KindPlanningPhaseBegan }
func (*ActionPhaseBeganView) Kind() gamelog.Kind                      { return gamelog.KindActionPhaseBegan }
func (*CombatValyrianSwordUsedView) Kind() gamelog.Kind               { return gamelog.KindCombatValyrianSwordUsed }
func (*CombatHouseCardChosenView) Kind() gamelog.Kind                 { return gamelog.KindCombatHouseCardChosen }
func (*ClashOfKingsFinalOrderingView) Kind() gamelog.Kind             { return gamelog.KindClashOfKingsFinalOrder }
func (*ClashOfKingsBiddingDoneView) Kind() gamelog.Kind               { return gamelog.KindClashOfKingsBiddingDone }
func (*WildlingStrengthTriggerWildlingAttackView) Kind() gamelog.Kind { return gamelog.KindWildlingStrengthTriggerAttack }
func (*MarchOrderRemovedView) Kind() gamelog.Kind                     { return gamelog.KindMarchOrderRemoved }
func (*StarredConsolidatePowerForPowerTokensView) Kind() gamelog.Kind { return gamelog.KindStarredConsolidatePower }
func (*ArmiesReconciledView) Kind() gamelog.Kind                      { return gamelog.KindArmiesReconciled }
func (*TyrionLannisterChoiceMadeView) Kind() gamelog.Kind             { return gamelog.KindTyrionLannisterChoiceMade }
func (*TyrionLannisterHouseCardReplacedView) Kind() gamelog.Kind      { return gamelog.KindTyrionLannisterHouseCardReplaced }
func (*ArianneMartellPreventMovementView) Kind() gamelog.Kind         { return gamelog.KindArianneMartellPreventMovement }
func (*RooseBoltonHouseCardsReturnedView) Kind() gamelog.Kind         { return gamelog.KindRooseBoltonHouseCardsReturned }
func (*LorasTyrellAttackOrderMovedView) Kind() gamelog.Kind           { return gamelog.KindLorasTyrellAttackOrderMoved }
func (*QueenOfThornsNoOrderAvailableView) Kind() gamelog.Kind         { return gamelog.KindQueenOfThornsNoOrderAvailable }
func (*QueenOfThornsOrderRemovedView) Kind() gamelog.Kind             { return gamelog.KindQueenOfThornsOrderRemoved }
func (*TywinLannisterPowerTokensGainedView) Kind() gamelog.Kind       { return gamelog.KindTywinLannisterPowerTokensGained }
func (*VassalClaimedView) Kind() gamelog.Kind                         { return gamelog.KindVassalClaimed }
