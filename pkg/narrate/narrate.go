// Package narrate renders resolved log records as plain-text sentences for
// people reading a game log.
package narrate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// title capitalizes each word. Casers hold state, so one is made per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Clock renders the HH:MM stamp shown beside each entry.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Entry renders one resolved entry, prefixed with its time. An entry that
// failed to resolve gets a fallback line instead of breaking the log.
func Entry(re resolve.ResolvedEntry) string {
	return Clock(re.Time) + "  " + indent(Line(re))
}

// Line renders an entry without its time.
func Line(re resolve.ResolvedEntry) string {
	if re.Err != nil || re.View == nil {
		return fmt.Sprintf("[unreadable %s record]", re.Kind)
	}
	return Text(re.View)
}

// Log renders entries one after the other, separated by newlines.
func Log(entries []resolve.ResolvedEntry) string {
	var b strings.Builder
	for _, re := range entries {
		b.WriteString(Entry(re))
		b.WriteByte('\n')
	}
	return b.String()
}

// indent aligns continuation lines with the text after the clock.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n       ")
}

// Text renders a view. Multi-line renderings use "- " bullet lines.
func Text(view resolve.View) string {
	if view == nil {
		return ""
	}
	switch v := view.(type) {
	case *resolve.TurnBeginView:
		return fmt.Sprintf("=== Turn %d ===", v.Turn)

	case *resolve.SupportDeclaredView:
		if supported, ok := v.Supported.Get(); ok {
			return fmt.Sprintf("%s supported %s.", v.Supporter.Name, supported.Name)
		}
		return fmt.Sprintf("%s supported no-one.", v.Supporter.Name)

	case *resolve.AttackView:
		target := "a neutral force"
		if attacked, ok := v.Attacked.Get(); ok {
			target = attacked.Name
		}
		return fmt.Sprintf("%s attacked %s from %s to %s with %s.",
			v.Attacker.Name, target, v.AttackingRegion.Name, v.AttackedRegion.Name, unitNames(v.Units))

	case *resolve.MarchResolvedView:
		lines := []string{fmt.Sprintf("%s marched from %s:", v.House.Name, v.StartingRegion.Name)}
		for _, m := range v.Moves {
			lines = append(lines, fmt.Sprintf("- %s to %s", unitNames(m.Units), m.Region.Name))
		}
		return strings.Join(lines, "\n")

	case *resolve.WesterosCardExecutedView:
		return fmt.Sprintf("Westeros card executed: %s.", v.WesterosCardType.Name)

	case *resolve.WesterosCardsDrawnView:
		names := make([]string, len(v.WesterosCardTypes))
		for i, c := range v.WesterosCardTypes {
			names[i] = c.Name
		}
		s := "Westeros cards were drawn: " + strings.Join(names, ", ") + "."
		if v.AddedWildlingStrength > 0 {
			s += fmt.Sprintf("\nWildling strength increased by %d.", v.AddedWildlingStrength)
		}
		return s

	case *resolve.CombatResultView:
		lines := []string{"Combat result:"}
		for _, s := range v.Stats {
			lines = append(lines, "- "+combatSide(s))
		}
		lines = append(lines, v.Winner.Name+" won the fight!")
		return strings.Join(lines, "\n")

	case *resolve.WildlingCardRevealedView:
		return fmt.Sprintf("Wildling card revealed: %s.", v.CardType.Name)

	case *resolve.WildlingBiddingView:
		lines := []string{"Wildling bidding results:"}
		lines = append(lines, bidLines(v.Results)...)
		if v.NightsWatchVictory {
			lines = append(lines, "The Night's Watch won!")
		} else {
			lines = append(lines, "The Wildlings won!")
		}
		return strings.Join(lines, "\n")

	case *resolve.LowestBidderChosenView:
		return fmt.Sprintf("%s was chosen as the lowest bidder.", v.LowestBidder.Name)

	case *resolve.HighestBidderChosenView:
		return fmt.Sprintf("%s was chosen as the highest bidder.", v.HighestBidder.Name)

	case *resolve.PlayerMusteredView:
		recruits := v.Recruits()
		if len(recruits) == 0 {
			return fmt.Sprintf("%s mustered nothing.", v.House.Name)
		}
		lines := []string{v.House.Name + " mustered:"}
		for _, r := range recruits {
			if from, ok := r.From.Get(); ok {
				lines = append(lines, fmt.Sprintf("- %s %s from %s %s in %s",
					title(article(r.To.Name)), r.To.Name, article(from.Name), from.Name, r.Region.Name))
			} else {
				lines = append(lines, fmt.Sprintf("- %s %s in %s", title(article(r.To.Name)), r.To.Name, r.Region.Name))
			}
		}
		return strings.Join(lines, "\n")

	case *resolve.WinnerDeclaredView:
		return fmt.Sprintf("Game ended. %s won the game.", v.Winner.Name)

	case *resolve.RavenHolderWildlingCardPutBottomView:
		return fmt.Sprintf("%s, holder of the Raven token, looked at the top card of the wildling deck and moved it to the bottom.",
			v.RavenHolder.Name)

	case *resolve.RavenHolderWildlingCardPutTopView:
		return fmt.Sprintf("%s, holder of the Raven token, looked at the top card of the wildling deck and left it on top.",
			v.RavenHolder.Name)

	case *resolve.RaidDoneView:
		if v.Raid == nil {
			return fmt.Sprintf("%s raided nothing from %s.", v.Raider.Name, v.RaiderRegion.Name)
		}
		return fmt.Sprintf("%s raided %s's %s in %s from %s.",
			v.Raider.Name, v.Raid.Raidee.Name, orderName(v.Raid.OrderRaided), v.Raid.RaidedRegion.Name, v.RaiderRegion.Name)

	case *resolve.AThroneOfBladesChoiceView:
		return fmt.Sprintf("%s, holder of the Iron Throne token, chose to %s.", v.House.Name, throneOfBlades(v.Choice))

	case *resolve.DarkWingsDarkWordsChoiceView:
		return fmt.Sprintf("%s, holder of the Raven token, chose to %s.", v.House.Name, darkWings(v.Choice))

	case *resolve.PutToTheSwordChoiceView:
		return fmt.Sprintf("%s, holder of the Valyrian Steel Blade token, chose to %s.", v.House.Name, putToTheSword(v.Choice))

	case *resolve.WinterIsComingView:
		return fmt.Sprintf("Winter is coming: the Westeros deck was shuffled and the new card drawn is %s.", v.DrawnCardType.Name)

	case *resolve.WesterosPhaseBeganView, *resolve.PlanningPhaseBeganView, *resolve.ActionPhaseBeganView:
		return "--- " + phaseBanner(view.Kind()) + " ---"

	case *resolve.CombatValyrianSwordUsedView:
		return fmt.Sprintf("%s used the Valyrian Steel Blade.", v.House.Name)

	case *resolve.CombatHouseCardChosenView:
		lines := []string{"House cards were chosen:"}
		for _, c := range v.HouseCards {
			lines = append(lines, fmt.Sprintf("- %s chose %s", c.House.Name, c.HouseCard.Name))
		}
		return strings.Join(lines, "\n")

	case *resolve.ClashOfKingsFinalOrderingView:
		return fmt.Sprintf("Final order for the %s track: %s.", v.Track.Name(), houseNames(v.FinalOrder))

	case *resolve.ClashOfKingsBiddingDoneView:
		lines := []string{fmt.Sprintf("Houses bid for the %s track:", v.Track.Name())}
		lines = append(lines, bidLines(v.Results)...)
		return strings.Join(lines, "\n")

	case *resolve.WildlingStrengthTriggerWildlingAttackView:
		return fmt.Sprintf("Wildling strength reached %d, triggering a Wildling attack.", v.WildlingStrength)

	case *resolve.MarchOrderRemovedView:
		return fmt.Sprintf("%s removed their march order in %s.", v.House.Name, v.Region.Name)

	case *resolve.StarredConsolidatePowerForPowerTokensView:
		return fmt.Sprintf("%s resolved a starred Consolidate Power order in %s to gain %s.",
			v.House.Name, v.Region.Name, count(v.PowerTokenCount, "Power token"))

	case *resolve.ArmiesReconciledView:
		lines := []string{v.House.Name + " reconciled their armies by removing:"}
		for _, a := range v.Armies {
			lines = append(lines, fmt.Sprintf("- %s: %s", a.Region.Name, unitNames(a.Units)))
		}
		return strings.Join(lines, "\n")

	case *resolve.TyrionLannisterChoiceMadeView:
		verb := "chose not to force"
		if v.ChooseToReplace {
			verb = "chose to force"
		}
		return fmt.Sprintf("Tyrion Lannister: %s %s %s to choose a new House card.", v.House.Name, verb, v.AffectedHouse.Name)

	case *resolve.TyrionLannisterHouseCardReplacedView:
		if card, ok := v.NewHouseCard.Get(); ok {
			return fmt.Sprintf("%s chose %s.", v.AffectedHouse.Name, card.Name)
		}
		return fmt.Sprintf("%s had no other available House card.", v.AffectedHouse.Name)

	case *resolve.ArianneMartellPreventMovementView:
		return fmt.Sprintf("Arianne Martell: %s cannot move their attacking army to the embattled area.", v.EnemyHouse.Name)

	case *resolve.RooseBoltonHouseCardsReturnedView:
		names := make([]string, len(v.HouseCards))
		for i, c := range v.HouseCards {
			names[i] = c.Name
		}
		return fmt.Sprintf("Roose Bolton: %s took back all discarded House cards (%s).", v.House.Name, strings.Join(names, ", "))

	case *resolve.LorasTyrellAttackOrderMovedView:
		return fmt.Sprintf("Loras Tyrell: the %s order was moved to %s.", orderName(v.Order), v.Region.Name)

	case *resolve.QueenOfThornsNoOrderAvailableView:
		return fmt.Sprintf("Queen of Thorns: %s had no adjacent order tokens.", v.AffectedHouse.Name)

	case *resolve.QueenOfThornsOrderRemovedView:
		return fmt.Sprintf("Queen of Thorns: %s removed %s %s order of %s in %s.",
			v.House.Name, article(orderName(v.OrderRemoved)), orderName(v.OrderRemoved), v.AffectedHouse.Name, v.Region.Name)

	case *resolve.TywinLannisterPowerTokensGainedView:
		return fmt.Sprintf("Tywin Lannister: %s gained %s.", v.House.Name, count(v.PowerTokensGained, "Power token"))

	case *resolve.VassalClaimedView:
		return fmt.Sprintf("%s took command of %s for this turn.", v.House.Name, v.Vassal.Name)

	default:
		return fmt.Sprintf("[%s]", view.Kind())
	}
}

func combatSide(s resolve.CombatSide) string {
	card := "no house card"
	if c, ok := s.HouseCard.Get(); ok {
		card = fmt.Sprintf("%s (%d)", c.Name, c.CombatStrength)
	}
	return fmt.Sprintf("%s in %s: army %d, order %+d, support %d, garrison %d, %s, Valyrian Steel Blade %d, total %d",
		s.House.Name, s.Region.Name, s.Army, s.OrderBonus, s.Support, s.Garrison, card, s.ValyrianSteelBlade, s.Total)
}

func bidLines(results resolve.BidResults) []string {
	rows := results.Rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = fmt.Sprintf("- %s bid %d", row.House.Name, row.Bid)
	}
	return lines
}

// phaseBanner turns "westeros-phase-began" into "Westeros Phase".
func phaseBanner(k gamelog.Kind) string {
	name := strings.TrimSuffix(string(k), "-began")
	return title(strings.ReplaceAll(name, "-", " "))
}

func throneOfBlades(c gamelog.ThroneOfBladesOption) string {
	switch c {
	case gamelog.ThroneOfBladesMustering:
		return "trigger a Mustering"
	case gamelog.ThroneOfBladesSupply:
		return "trigger a Supply"
	default:
		return "trigger nothing"
	}
}

func darkWings(c gamelog.DarkWingsOption) string {
	switch c {
	case gamelog.DarkWingsClashOfKings:
		return "trigger a Clash of Kings"
	case gamelog.DarkWingsGameOfThrones:
		return "trigger a Game of Thrones"
	default:
		return "trigger nothing"
	}
}

func putToTheSword(c gamelog.PutToTheSwordOption) string {
	switch c {
	case gamelog.PutToTheSwordForbidMarchPlusOne:
		return "forbid March +1 orders from being played during this Planning phase"
	case gamelog.PutToTheSwordForbidDefense:
		return "forbid Defense orders from being played during this Planning phase"
	default:
		return "trigger nothing"
	}
}

func unitNames(units []*entity.UnitType) string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return strings.Join(names, ", ")
}

func houseNames(houses []*entity.House) string {
	names := make([]string, len(houses))
	for i, h := range houses {
		names[i] = h.Name
	}
	return strings.Join(names, ", ")
}

func orderName(o *entity.Order) string {
	if o.Type == nil {
		return "order " + o.ID.String()
	}
	return o.Type.Name
}

// count renders n with noun pluralized by a trailing "s".
func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

func article(word string) string {
	if word != "" && strings.ContainsRune("AEIOUaeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}
