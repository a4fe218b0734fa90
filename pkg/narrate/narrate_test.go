package narrate_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/entity/entitytest"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/gamelog/gamelogtest"
	"github.com/jwebster45206/ravenlog/pkg/narrate"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
)

func ptr[T any](v T) *T { return &v }

func render(t *testing.T, r *resolve.Resolver, e gamelog.Event) string {
	t.Helper()
	view, err := r.Resolve(e)
	if err != nil {
		t.Fatalf("Resolve %s failed: %v", e.Kind(), err)
	}
	return narrate.Text(view)
}

func TestText_EveryKind(t *testing.T) {
	r := resolve.New(entitytest.Catalog(t))
	for _, k := range gamelog.Kinds() {
		got := render(t, r, gamelogtest.Event(k))
		if got == "" || strings.HasPrefix(got, "[") {
			t.Errorf("%s: expected a sentence, got %q", k, got)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		event gamelog.Event
		want  string
	}{
		{
			name:  "support declared",
			event: &gamelog.SupportDeclared{Supporter: "stark", Supported: ptr(entity.HouseID("lannister"))},
			want:  "Stark supported Lannister.",
		},
		{
			name:  "support declared for no-one",
			event: &gamelog.SupportDeclared{Supporter: "stark"},
			want:  "Stark supported no-one.",
		},
		{
			name: "attack on a neutral force",
			event: &gamelog.Attack{
				Attacker:        "lannister",
				AttackingRegion: "lannisport",
				AttackedRegion:  "stoney-sept",
				Units:           []entity.UnitTypeID{"footman", "knight"},
			},
			want: "Lannister attacked a neutral force from Lannisport to Stoney Sept with Footman, Knight.",
		},
		{
			name:  "turn",
			event: &gamelog.TurnBegin{Turn: 3},
			want:  "=== Turn 3 ===",
		},
		{
			name:  "westeros phase banner",
			event: &gamelog.WesterosPhaseBegan{},
			want:  "--- Westeros Phase ---",
		},
		{
			name:  "planning phase banner",
			event: &gamelog.PlanningPhaseBegan{},
			want:  "--- Planning Phase ---",
		},
		{
			name:  "raid removing nothing",
			event: &gamelog.RaidDone{Raider: "greyjoy", RaiderRegion: "pyke"},
			want:  "Greyjoy raided nothing from Pyke.",
		},
		{
			name:  "raid",
			event: gamelogtest.Event(gamelog.KindRaidDone),
			want:  "Greyjoy raided Lannister's Consolidate Power in Lannisport from Pyke.",
		},
		{
			name:  "one power token",
			event: &gamelog.StarredConsolidatePowerForPowerTokens{House: "tyrell", Region: "highgarden", PowerTokenCount: 1},
			want:  "Tyrell resolved a starred Consolidate Power order in Highgarden to gain 1 Power token.",
		},
		{
			name:  "several power tokens",
			event: &gamelog.TywinLannisterPowerTokensGained{House: "lannister", PowerTokensGained: 2},
			want:  "Tywin Lannister: Lannister gained 2 Power tokens.",
		},
		{
			name:  "final ordering names the track",
			event: gamelogtest.Event(gamelog.KindClashOfKingsFinalOrder),
			want:  "Final order for the King's Court track: Lannister, Stark, Tyrell.",
		},
		{
			name:  "dark wings choice",
			event: &gamelog.DarkWingsDarkWordsChoice{House: "lannister", Choice: gamelog.DarkWingsGameOfThrones},
			want:  "Lannister, holder of the Raven token, chose to trigger a Game of Thrones.",
		},
		{
			name:  "tyrion declines",
			event: &gamelog.TyrionLannisterChoiceMade{House: "lannister", AffectedHouse: "stark"},
			want:  "Tyrion Lannister: Lannister chose not to force Stark to choose a new House card.",
		},
		{
			name:  "tyrion replacement unavailable",
			event: &gamelog.TyrionLannisterHouseCardReplaced{AffectedHouse: "stark"},
			want:  "Stark had no other available House card.",
		},
		{
			name:  "wildling card through the deck",
			event: &gamelog.WildlingCardRevealed{WildlingCard: 1},
			want:  "Wildling card revealed: Silence at the Wall.",
		},
		{
			name:  "mustering",
			event: gamelogtest.Event(gamelog.KindPlayerMustered),
			want: "Stark mustered:\n" +
				"- A Knight in Winterfell\n" +
				"- A Knight from a Footman in Winterfell\n" +
				"- A Ship in Bay of Ice",
		},
		{
			name:  "clash of kings bids",
			event: gamelogtest.Event(gamelog.KindClashOfKingsBiddingDone),
			want: "Houses bid for the Fiefdoms track:\n" +
				"- Stark bid 3\n" +
				"- Lannister bid 3\n" +
				"- Tyrell bid 1",
		},
		{
			name:  "vassal claimed",
			event: gamelogtest.Event(gamelog.KindVassalClaimed),
			want:  "Stark took command of Martell for this turn.",
		},
	}

	r := resolve.New(entitytest.Catalog(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, r, tt.event); got != tt.want {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestEntry(t *testing.T) {
	r := resolve.New(entitytest.Catalog(t))
	at := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)

	re, err := r.ResolveEntry(gamelog.Entry{Time: at, Event: &gamelog.ActionPhaseBegan{}})
	if err != nil {
		t.Fatalf("ResolveEntry failed: %v", err)
	}
	if got, want := narrate.Entry(re), "09:05  --- Action Phase ---"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	failed := resolve.ResolvedEntry{Time: at, Kind: gamelog.KindWinnerDeclared, Err: errors.New("boom")}
	if got, want := narrate.Entry(failed), "09:05  [unreadable winner-declared record]"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestLog_IndentsContinuationLines(t *testing.T) {
	r := resolve.New(entitytest.Catalog(t))
	at := time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)

	resolved := r.ResolveAll([]gamelog.Entry{
		{Time: at, Event: gamelogtest.Event(gamelog.KindMarchResolved)},
	})
	got := narrate.Log(resolved)
	want := "21:30  Lannister marched from Lannisport:\n" +
		"       - Footman to Stoney Sept\n" +
		"       - Knight to Riverrun\n"
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestLine_UnknownStoredKind(t *testing.T) {
	r := resolve.New(entitytest.Catalog(t))
	entry, err := gamelog.DecodeStoredEntry([]byte(`{"time":"2024-03-01T20:01:00Z","data":{"type":"mother-of-dragons"}}`))
	if err != nil {
		t.Fatalf("DecodeStoredEntry failed: %v", err)
	}

	resolved := r.ResolveAll([]gamelog.Entry{
		{Time: entry.Time, Event: &gamelog.TurnBegin{Turn: 1}},
		entry,
	})
	if !errors.Is(resolved[1].Err, gamelog.ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", resolved[1].Err)
	}
	if got := narrate.Line(resolved[1]); got != "[unreadable mother-of-dragons record]" {
		t.Errorf("Unexpected fallback %q", got)
	}
	if got := narrate.Line(resolved[0]); got != "=== Turn 1 ===" {
		t.Errorf("Unexpected line %q", got)
	}
}
