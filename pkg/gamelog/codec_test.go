package gamelog_test

import (
	"errors"
	"testing"

	"github.com/jwebster45206/ravenlog/pkg/entity"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
	"github.com/jwebster45206/ravenlog/pkg/gamelog/gamelogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesCoverEveryKind(t *testing.T) {
	for _, k := range gamelog.Kinds() {
		_, ok := gamelogtest.Samples[k]
		assert.True(t, ok, "no sample for %s", k)
	}
	assert.Len(t, gamelogtest.Samples, len(gamelog.Kinds()))
}

func TestDecode_EveryKind(t *testing.T) {
	for _, k := range gamelog.Kinds() {
		t.Run(string(k), func(t *testing.T) {
			e, err := gamelog.Decode([]byte(gamelogtest.Samples[k]))
			require.NoError(t, err)
			assert.Equal(t, k, e.Kind())

			encoded, err := gamelog.Encode(e)
			require.NoError(t, err)
			again, err := gamelog.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, e, again)
		})
	}
}

func TestDecode_SupportDeclared(t *testing.T) {
	e, err := gamelog.Decode([]byte(`{"type":"support-declared","supporter":"stark","supported":"lannister"}`))
	require.NoError(t, err)

	sd, ok := e.(*gamelog.SupportDeclared)
	require.True(t, ok)
	assert.Equal(t, entity.HouseID("stark"), sd.Supporter)
	require.NotNil(t, sd.Supported)
	assert.Equal(t, entity.HouseID("lannister"), *sd.Supported)
}

func TestDecode_OptionalFieldAbsentOrNull(t *testing.T) {
	for _, raw := range []string{
		`{"type":"support-declared","supporter":"stark"}`,
		`{"type":"support-declared","supporter":"stark","supported":null}`,
	} {
		e, err := gamelog.Decode([]byte(raw))
		require.NoError(t, err, raw)
		assert.Nil(t, e.(*gamelog.SupportDeclared).Supported, raw)
	}
}

func TestDecode_Tuples(t *testing.T) {
	e, err := gamelog.Decode([]byte(gamelogtest.Samples[gamelog.KindPlayerMustered]))
	require.NoError(t, err)

	pm := e.(*gamelog.PlayerMustered)
	require.Len(t, pm.Musterings, 2)
	assert.Equal(t, entity.RegionID("winterfell"), pm.Musterings[0].Origin)
	require.Len(t, pm.Musterings[0].Recruits, 2)
	assert.Nil(t, pm.Musterings[0].Recruits[0].From)
	require.NotNil(t, pm.Musterings[0].Recruits[1].From)
	assert.Equal(t, entity.UnitTypeID("footman"), *pm.Musterings[0].Recruits[1].From)
	assert.Equal(t, entity.RegionID("bay-of-ice"), pm.Musterings[1].Recruits[0].Region)
}

func TestDecode_UnknownKind(t *testing.T) {
	_, err := gamelog.Decode([]byte(`{"type":"dragon-hatched","house":"targaryen"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gamelog.ErrUnknownKind))
	assert.False(t, errors.Is(err, gamelog.ErrMalformed))

	var unknown *gamelog.UnknownKindError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, gamelog.Kind("dragon-hatched"), unknown.Kind)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an object", `["turn-begin"]`},
		{"null", `null`},
		{"missing type", `{"turn":1}`},
		{"empty type", `{"type":"","turn":1}`},
		{"numeric type", `{"type":7}`},
		{"missing required field", `{"type":"attack","attacker":"lannister","attackingRegion":"lannisport","attackedRegion":"riverrun"}`},
		{"required field null", `{"type":"support-declared","supporter":null}`},
		{"unknown field", `{"type":"turn-begin","turn":1,"round":1}`},
		{"unknown field on empty payload", `{"type":"planning-phase-began","phase":"planning"}`},
		{"wrong json type", `{"type":"turn-begin","turn":"two"}`},
		{"turn zero", `{"type":"turn-begin","turn":0}`},
		{"empty id", `{"type":"winner-declared","winner":""}`},
		{"empty optional id", `{"type":"support-declared","supporter":"stark","supported":""}`},
		{"tuple too short", `{"type":"march-resolved","house":"lannister","startingRegion":"lannisport","moves":[["stoney-sept"]]}`},
		{"tuple too long", `{"type":"combat-house-card-chosen","houseCards":[["stark","robb-stark","extra"]]}`},
		{"tuple not an array", `{"type":"armies-reconciled","house":"greyjoy","armies":[{"region":"pyke"}]}`},
		{"unknown field in nested record", `{"type":"player-mustered","house":"stark","musterings":[["winterfell",[{"region":"winterfell","to":"knight","cost":1}]]]}`},
		{"missing field in nested record", `{"type":"player-mustered","house":"stark","musterings":[["winterfell",[{"region":"winterfell"}]]]}`},
		{"unknown field in combat stats", `{"type":"combat-result","winner":"stark","stats":[{"house":"stark","region":"winterfell","army":1,"orderBonus":0,"support":0,"garrison":0,"valyrianSteelBlade":0,"total":1,"dice":6}]}`},
		{"winner not a combatant", `{"type":"combat-result","winner":"tyrell","stats":[{"house":"stark","region":"winterfell","army":1,"orderBonus":0,"support":0,"garrison":0,"valyrianSteelBlade":0,"total":1}]}`},
		{"combat without stats", `{"type":"combat-result","winner":"stark","stats":[]}`},
		{"choice out of range", `{"type":"a-throne-of-blades-choice","house":"baratheon","choice":3}`},
		{"negative choice", `{"type":"put-to-the-sword-choice","house":"stark","choice":-1}`},
		{"tracker out of range", `{"type":"clash-of-kings-final-ordering","trackerI":3,"finalOrder":["stark"]}`},
		{"negative bid", `{"type":"wildling-bidding","results":[[-1,["stark"]]],"nightsWatchVictory":false}`},
		{"empty bid group", `{"type":"clash-of-kings-bidding-done","trackerI":0,"results":[[2,[]]]}`},
		{"house bids twice", `{"type":"wildling-bidding","results":[[2,["stark"]],[1,["stark"]]],"nightsWatchVictory":false}`},
		{"partial raid", `{"type":"raid-done","raider":"greyjoy","raiderRegion":"pyke","raidee":"lannister"}`},
		{"raid without order", `{"type":"raid-done","raider":"greyjoy","raiderRegion":"pyke","raidee":"lannister","raidedRegion":"lannisport"}`},
		{"attack without units", `{"type":"attack","attacker":"lannister","attackingRegion":"lannisport","attackedRegion":"riverrun","units":[]}`},
		{"house claims itself", `{"type":"vassal-claimed","house":"stark","vassal":"stark"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gamelog.Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, gamelog.ErrMalformed), "got %v", err)
		})
	}
}

func TestDecode_RaidWithoutTarget(t *testing.T) {
	e, err := gamelog.Decode([]byte(`{"type":"raid-done","raider":"greyjoy","raiderRegion":"pyke"}`))
	require.NoError(t, err)

	raid := e.(*gamelog.RaidDone)
	assert.Nil(t, raid.Raidee)
	assert.Nil(t, raid.RaidedRegion)
	assert.Nil(t, raid.OrderRaided)
}

func TestDecode_NullListIsEmpty(t *testing.T) {
	e, err := gamelog.Decode([]byte(`{"type":"player-mustered","house":"stark","musterings":null}`))
	require.NoError(t, err)
	assert.Empty(t, e.(*gamelog.PlayerMustered).Musterings)
}

func TestEncode_FlatObject(t *testing.T) {
	supported := entity.HouseID("lannister")
	data, err := gamelog.Encode(&gamelog.SupportDeclared{Supporter: "stark", Supported: &supported})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"support-declared","supporter":"stark","supported":"lannister"}`, string(data))

	data, err = gamelog.Encode(&gamelog.ActionPhaseBegan{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"action-phase-began"}`, string(data))

	data, err = gamelog.Encode(&gamelog.MarchResolved{
		House:          "lannister",
		StartingRegion: "lannisport",
		Moves:          []gamelog.RegionUnits{{Region: "stoney-sept", Units: []entity.UnitTypeID{"footman"}}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"march-resolved","house":"lannister","startingRegion":"lannisport","moves":[["stoney-sept",["footman"]]]}`, string(data))
}
