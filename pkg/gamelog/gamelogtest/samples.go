// Package gamelogtest holds one well-formed wire record per kind, using the
// ids of the entitytest catalog.
package gamelogtest

import "github.com/jwebster45206/ravenlog/pkg/gamelog"

// Samples maps every known kind to a valid record of that kind.
var Samples = map[gamelog.Kind]string{
	gamelog.KindTurnBegin:          `{"type":"turn-begin","turn":2}`,
	gamelog.KindWesterosPhaseBegan: `{"type":"westeros-phase-began"}`,
	gamelog.KindPlanningPhaseBegan: `{"type":"planning-phase-began"}`,
	gamelog.KindActionPhaseBegan:   `{"type":"action-phase-began"}`,
	gamelog.KindWinnerDeclared:     `{"type":"winner-declared","winner":"lannister"}`,

	gamelog.KindWesterosCardExecuted:     `{"type":"westeros-card-executed","westerosCardType":"mustering"}`,
	gamelog.KindWesterosCardsDrawn:       `{"type":"westeros-cards-drawn","westerosCardTypes":["supply","clash-of-kings","wildlings-attack"],"addedWildlingStrength":2}`,
	gamelog.KindWinterIsComing:           `{"type":"winter-is-coming","drawnCardType":"supply"}`,
	gamelog.KindAThroneOfBladesChoice:    `{"type":"a-throne-of-blades-choice","house":"baratheon","choice":1}`,
	gamelog.KindDarkWingsDarkWordsChoice: `{"type":"dark-wings-dark-words-choice","house":"lannister","choice":0}`,
	gamelog.KindPutToTheSwordChoice:      `{"type":"put-to-the-sword-choice","house":"stark","choice":2}`,
	gamelog.KindPlayerMustered:           `{"type":"player-mustered","house":"stark","musterings":[["winterfell",[{"region":"winterfell","to":"knight"},{"region":"winterfell","from":"footman","to":"knight"}]],["white-harbor",[{"region":"bay-of-ice","to":"ship"}]]]}`,
	gamelog.KindArmiesReconciled:         `{"type":"armies-reconciled","house":"greyjoy","armies":[["pyke",["footman","knight"]]]}`,
	gamelog.KindClashOfKingsBiddingDone:  `{"type":"clash-of-kings-bidding-done","trackerI":1,"results":[[3,["stark","lannister"]],[1,["tyrell"]]]}`,
	gamelog.KindClashOfKingsFinalOrder:   `{"type":"clash-of-kings-final-ordering","trackerI":2,"finalOrder":["lannister","stark","tyrell"]}`,

	gamelog.KindWildlingCardRevealed:          `{"type":"wildling-card-revealed","wildlingCard":1}`,
	gamelog.KindWildlingBidding:               `{"type":"wildling-bidding","results":[[4,["stark"]],[0,["lannister","greyjoy"]]],"nightsWatchVictory":true}`,
	gamelog.KindWildlingStrengthTriggerAttack: `{"type":"wildling-strength-trigger-wildling-attack","wildlingStrength":12}`,
	gamelog.KindLowestBidderChosen:            `{"type":"lowest-bidder-chosen","lowestBidder":"greyjoy"}`,
	gamelog.KindHighestBidderChosen:           `{"type":"highest-bidder-chosen","highestBidder":"stark"}`,
	gamelog.KindRavenHolderWildlingCardBottom: `{"type":"raven-holder-wildling-card-put-bottom","ravenHolder":"lannister"}`,
	gamelog.KindRavenHolderWildlingCardTop:    `{"type":"raven-holder-wildling-card-put-top","ravenHolder":"lannister"}`,

	gamelog.KindSupportDeclared:         `{"type":"support-declared","supporter":"stark","supported":"lannister"}`,
	gamelog.KindAttack:                  `{"type":"attack","attacker":"lannister","attacked":"stark","attackingRegion":"lannisport","attackedRegion":"riverrun","units":["footman","knight"]}`,
	gamelog.KindMarchResolved:           `{"type":"march-resolved","house":"lannister","startingRegion":"lannisport","moves":[["stoney-sept",["footman"]],["riverrun",["knight"]]]}`,
	gamelog.KindMarchOrderRemoved:       `{"type":"march-order-removed","house":"stark","region":"winterfell"}`,
	gamelog.KindRaidDone:                `{"type":"raid-done","raider":"greyjoy","raiderRegion":"pyke","raidee":"lannister","raidedRegion":"lannisport","orderRaided":5}`,
	gamelog.KindStarredConsolidatePower: `{"type":"starred-consolidate-power-for-power-tokens","house":"tyrell","region":"highgarden","powerTokenCount":3}`,
	gamelog.KindVassalClaimed:           `{"type":"vassal-claimed","house":"stark","vassal":"martell"}`,

	gamelog.KindCombatResult:                     `{"type":"combat-result","winner":"lannister","stats":[{"house":"lannister","region":"lannisport","army":3,"orderBonus":1,"support":0,"garrison":0,"houseCard":"tywin-lannister","valyrianSteelBlade":1,"total":9},{"house":"stark","region":"riverrun","army":1,"orderBonus":0,"support":2,"garrison":0,"houseCard":"robb-stark","valyrianSteelBlade":0,"total":6}]}`,
	gamelog.KindCombatValyrianSwordUsed:          `{"type":"combat-valyrian-sword-used","house":"lannister"}`,
	gamelog.KindCombatHouseCardChosen:            `{"type":"combat-house-card-chosen","houseCards":[["lannister","tywin-lannister"],["stark","robb-stark"]]}`,
	gamelog.KindTyrionLannisterChoiceMade:        `{"type":"tyrion-lannister-choice-made","house":"lannister","affectedHouse":"stark","chooseToReplace":true}`,
	gamelog.KindTyrionLannisterHouseCardReplaced: `{"type":"tyrion-lannister-house-card-replaced","affectedHouse":"stark","newHouseCard":"eddard-stark"}`,
	gamelog.KindArianneMartellPreventMovement:    `{"type":"arianne-martell-prevent-movement","enemyHouse":"baratheon"}`,
	gamelog.KindRooseBoltonHouseCardsReturned:    `{"type":"roose-bolton-house-cards-returned","house":"stark","houseCards":["eddard-stark","robb-stark"]}`,
	gamelog.KindLorasTyrellAttackOrderMoved:      `{"type":"loras-tyrell-attack-order-moved","order":1,"region":"kings-landing"}`,
	gamelog.KindQueenOfThornsNoOrderAvailable:    `{"type":"queen-of-thorns-no-order-available","house":"tyrell","affectedHouse":"baratheon"}`,
	gamelog.KindQueenOfThornsOrderRemoved:        `{"type":"queen-of-thorns-order-removed","house":"tyrell","affectedHouse":"baratheon","region":"kings-landing","orderRemoved":2}`,
	gamelog.KindTywinLannisterPowerTokensGained:  `{"type":"tywin-lannister-power-tokens-gained","house":"lannister","powerTokensGained":2}`,
}

// Event decodes the sample of kind k and panics if it is missing or invalid.
func Event(k gamelog.Kind) gamelog.Event {
	raw, ok := Samples[k]
	if !ok {
		panic("gamelogtest: no sample for " + string(k))
	}
	e, err := gamelog.Decode([]byte(raw))
	if err != nil {
		panic("gamelogtest: " + err.Error())
	}
	return e
}
