package resolve_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/entity/entitytest"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/gamelog/gamelogtest"
	"github.com/jwebster45206/ravenlog/pkg/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	return resolve.New(entitytest.Catalog(t))
}

func TestResolve_EveryKind(t *testing.T) {
	r := newResolver(t)
	for _, k := range gamelog.Kinds() {
		t.Run(string(k), func(t *testing.T) {
			view, err := r.Resolve(gamelogtest.Event(k))
			require.NoError(t, err)
			assert.Equal(t, k, view.Kind())
		})
	}
}

func TestResolve_SupportDeclared(t *testing.T) {
	r := newResolver(t)
	c := r.Catalog()

	view, err := r.Resolve(&gamelog.SupportDeclared{Supporter: "stark", Supported: ptr(entity.HouseID("lannister"))})
	require.NoError(t, err)

	sd := view.(*resolve.SupportDeclaredView)
	assert.Same(t, entitytest.House(t, c, "stark"), sd.Supporter)
	supported, ok := sd.Supported.Get()
	require.True(t, ok)
	assert.Same(t, entitytest.House(t, c, "lannister"), supported)

	view, err = r.Resolve(&gamelog.SupportDeclared{Supporter: "stark"})
	require.NoError(t, err)
	assert.False(t, view.(*resolve.SupportDeclaredView).Supported.Present())
}

func TestResolve_Deterministic(t *testing.T) {
	r := newResolver(t)
	for _, k := range gamelog.Kinds() {
		e := gamelogtest.Event(k)
		first, err := r.Resolve(e)
		require.NoError(t, err)
		second, err := r.Resolve(e)
		require.NoError(t, err)
		assert.Equal(t, first, second, "kind %s", k)
	}
}

func TestResolve_KeepsListOrder(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(&gamelog.ClashOfKingsFinalOrdering{
		TrackerI:   gamelog.TrackKingsCourt,
		FinalOrder: []entity.HouseID{"tyrell", "stark", "martell", "lannister"},
	})
	require.NoError(t, err)

	final := view.(*resolve.ClashOfKingsFinalOrderingView)
	var got []entity.HouseID
	for _, h := range final.FinalOrder {
		got = append(got, h.ID)
	}
	assert.Equal(t, []entity.HouseID{"tyrell", "stark", "martell", "lannister"}, got)
	assert.Equal(t, gamelog.TrackKingsCourt, final.Track)
}

func TestResolve_BidGroups(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(&gamelog.WildlingBidding{
		Results: []gamelog.BidGroup{
			{Bid: 3, Houses: []entity.HouseID{"stark", "lannister"}},
			{Bid: 0, Houses: []entity.HouseID{"greyjoy"}},
			{Bid: 3, Houses: []entity.HouseID{"tyrell"}},
		},
	})
	require.NoError(t, err)

	results := view.(*resolve.WildlingBiddingView).Results
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Bid)
	assert.Equal(t, 0, results[1].Bid)

	var rows []string
	for _, row := range results.Rows() {
		rows = append(rows, string(row.House.ID))
	}
	assert.Equal(t, []string{"stark", "lannister", "tyrell", "greyjoy"}, rows)
}

func TestResolve_MusteringRecruits(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(gamelogtest.Event(gamelog.KindPlayerMustered))
	require.NoError(t, err)

	recruits := view.(*resolve.PlayerMusteredView).Recruits()
	require.Len(t, recruits, 3)
	assert.False(t, recruits[0].From.Present())
	from, ok := recruits[1].From.Get()
	require.True(t, ok)
	assert.Equal(t, "Footman", from.Name)
	assert.Equal(t, "Knight", recruits[1].To.Name)
	assert.Equal(t, "Bay of Ice", recruits[2].Region.Name)
}

func TestResolve_Raid(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(gamelogtest.Event(gamelog.KindRaidDone))
	require.NoError(t, err)
	raid := view.(*resolve.RaidDoneView)
	require.NotNil(t, raid.Raid)
	assert.Equal(t, entity.HouseID("lannister"), raid.Raid.Raidee.ID)
	assert.Equal(t, entity.RegionID("lannisport"), raid.Raid.RaidedRegion.ID)
	assert.Equal(t, entity.OrderTypeID("consolidate-power-star"), raid.Raid.OrderRaided.Type.ID)

	view, err = r.Resolve(&gamelog.RaidDone{Raider: "greyjoy", RaiderRegion: "pyke"})
	require.NoError(t, err)
	assert.Nil(t, view.(*resolve.RaidDoneView).Raid)

	_, err = r.Resolve(&gamelog.RaidDone{Raider: "greyjoy", RaiderRegion: "pyke", Raidee: ptr(entity.HouseID("lannister"))})
	assert.True(t, errors.Is(err, resolve.ErrUnresolved))
}

func TestResolve_CombatHouseCards(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(gamelogtest.Event(gamelog.KindCombatResult))
	require.NoError(t, err)
	combat := view.(*resolve.CombatResultView)
	require.Len(t, combat.Stats, 2)
	assert.Equal(t, 4, combat.Stats[0].HouseCardStrength())
	assert.Equal(t, 3, combat.Stats[1].HouseCardStrength())

	view, err = r.Resolve(&gamelog.CombatResult{
		Winner: "stark",
		Stats:  []gamelog.CombatStats{{House: "stark", Region: "winterfell", Army: 2, Total: 2}},
	})
	require.NoError(t, err)
	side := view.(*resolve.CombatResultView).Stats[0]
	assert.False(t, side.HouseCard.Present())
	assert.Equal(t, 0, side.HouseCardStrength())
}

func TestResolve_WildlingCardThroughDeck(t *testing.T) {
	r := newResolver(t)

	view, err := r.Resolve(&gamelog.WildlingCardRevealed{WildlingCard: 0})
	require.NoError(t, err)
	assert.Equal(t, "Crow Killers", view.(*resolve.WildlingCardRevealedView).CardType.Name)
}

func TestResolve_Unresolvable(t *testing.T) {
	tests := []struct {
		name  string
		event gamelog.Event
		field string
	}{
		{"unknown house", &gamelog.SupportDeclared{Supporter: "targaryen"}, "supporter"},
		{"unknown optional house", &gamelog.SupportDeclared{Supporter: "stark", Supported: ptr(entity.HouseID("targaryen"))}, "supported"},
		{"unknown region", &gamelog.MarchOrderRemoved{House: "stark", Region: "dragonstone"}, "region"},
		{"unknown unit", &gamelog.Attack{Attacker: "lannister", AttackingRegion: "lannisport", AttackedRegion: "riverrun", Units: []entity.UnitTypeID{"footman", "dragon"}}, "units[1]"},
		{"unknown order", &gamelog.LorasTyrellAttackOrderMoved{Order: 99, Region: "highgarden"}, "order"},
		{"unknown westeros card", &gamelog.WinterIsComing{DrawnCardType: "feast-for-crows"}, "drawnCardType"},
		{"unknown wildling card", &gamelog.WildlingCardRevealed{WildlingCard: 7}, "wildlingCard"},
		{"card from another house", &gamelog.CombatHouseCardChosen{HouseCards: []gamelog.HouseCardChoice{{House: "lannister", HouseCard: "robb-stark"}}}, "houseCards[0].houseCard"},
		{"card from another house, roose bolton", &gamelog.RooseBoltonHouseCardsReturned{House: "stark", HouseCards: []entity.HouseCardID{"tywin-lannister"}}, "houseCards[0]"},
		{"unknown bidder", &gamelog.ClashOfKingsBiddingDone{Results: []gamelog.BidGroup{{Bid: 1, Houses: []entity.HouseID{"stark", "arryn"}}}}, "results[0].houses[1]"},
	}

	r := newResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := r.Resolve(tt.event)
			require.Error(t, err)
			assert.Nil(t, view)
			assert.True(t, errors.Is(err, resolve.ErrUnresolved))
			assert.True(t, errors.Is(err, entity.ErrNotFound), "got %v", err)

			var unresolved *resolve.UnresolvedError
			require.ErrorAs(t, err, &unresolved)
			assert.Equal(t, tt.event.Kind(), unresolved.Kind)
			assert.Equal(t, tt.field, unresolved.Field)
		})
	}
}

func TestResolveAll_KeepsFailedEntries(t *testing.T) {
	r := newResolver(t)
	at := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	entries := []gamelog.Entry{
		{Time: at, Event: &gamelog.TurnBegin{Turn: 1}},
		{Time: at.Add(time.Minute), Event: &gamelog.WinnerDeclared{Winner: "targaryen"}},
		{Time: at.Add(2 * time.Minute), Event: &gamelog.WinnerDeclared{Winner: "stark"}},
	}

	resolved := r.ResolveAll(entries)
	require.Len(t, resolved, 3)
	assert.NoError(t, resolved[0].Err)
	assert.Error(t, resolved[1].Err)
	assert.Nil(t, resolved[1].View)
	assert.Equal(t, gamelog.KindWinnerDeclared, resolved[1].Kind)
	assert.NoError(t, resolved[2].Err)
	assert.Equal(t, at.Add(2*time.Minute), resolved[2].Time)
}

func TestMaybe_JSON(t *testing.T) {
	data, err := json.Marshal(resolve.None[*entity.House]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(resolve.Some(&entity.House{ID: "stark", Name: "Stark"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"stark","name":"Stark"}`, string(data))
}
