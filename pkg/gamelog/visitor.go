package gamelog

// Visitor has one method per record kind. Anything that must handle every
// kind (the resolver, the narrator) implements it, so adding a kind is a
// compile error until each of them handles it.
type Visitor interface {
	VisitTurnBegin(*TurnBegin) error
	VisitSupportDeclared(*SupportDeclared) error
	VisitAttack(*Attack) error
	VisitMarchResolved(*MarchResolved) error
	VisitWesterosCardExecuted(*WesterosCardExecuted) error
	VisitWesterosCardsDrawn(*WesterosCardsDrawn) error
	VisitCombatResult(*CombatResult) error
	VisitWildlingCardRevealed(*WildlingCardRevealed) error
	VisitWildlingBidding(*WildlingBidding) error
	VisitLowestBidderChosen(*LowestBidderChosen) error
	VisitHighestBidderChosen(*HighestBidderChosen) error
	VisitPlayerMustered(*PlayerMustered) error
	VisitWinnerDeclared(*WinnerDeclared) error
	VisitRavenHolderWildlingCardPutBottom(*RavenHolderWildlingCardPutBottom) error
	VisitRavenHolderWildlingCardPutTop(*RavenHolderWildlingCardPutTop) error
	VisitRaidDone(*RaidDone) error
	VisitAThroneOfBladesChoice(*AThroneOfBladesChoice) error
	VisitDarkWingsDarkWordsChoice(*DarkWingsDarkWordsChoice) error
	VisitPutToTheSwordChoice(*PutToTheSwordChoice) error
	VisitWinterIsComing(*WinterIsComing) error
	VisitWesterosPhaseBegan(*WesterosPhaseBegan) error
	VisitPlanningPhaseBegan(*PlanningPhaseBegan) error
	VisitActionPhaseBegan(*ActionPhaseBegan) error
	VisitCombatValyrianSwordUsed(*CombatValyrianSwordUsed) error
	VisitCombatHouseCardChosen(*CombatHouseCardChosen) error
	VisitClashOfKingsFinalOrdering(*ClashOfKingsFinalOrdering) error
	VisitClashOfKingsBiddingDone(*ClashOfKingsBiddingDone) error
	VisitWildlingStrengthTriggerWildlingAttack(*WildlingStrengthTriggerWildlingAttack) error
	VisitMarchOrderRemoved(*MarchOrderRemoved) error
	VisitStarredConsolidatePowerForPowerTokens(*StarredConsolidatePowerForPowerTokens) error
	VisitArmiesReconciled(*ArmiesReconciled) error
	VisitTyrionLannisterChoiceMade(*TyrionLannisterChoiceMade) error
	VisitTyrionLannisterHouseCardReplaced(*TyrionLannisterHouseCardReplaced) error
	VisitArianneMartellPreventMovement(*ArianneMartellPreventMovement) error
	VisitRooseBoltonHouseCardsReturned(*RooseBoltonHouseCardsReturned) error
	VisitLorasTyrellAttackOrderMoved(*LorasTyrellAttackOrderMoved) error
	VisitQueenOfThornsNoOrderAvailable(*QueenOfThornsNoOrderAvailable) error
	VisitQueenOfThornsOrderRemoved(*QueenOfThornsOrderRemoved) error
	VisitTywinLannisterPowerTokensGained(*TywinLannisterPowerTokensGained) error
	VisitVassalClaimed(*VassalClaimed) error
}
