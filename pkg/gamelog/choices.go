package gamelog

// ThroneOfBladesOption is the Iron Throne holder's pick on "A Throne of Blades".
type ThroneOfBladesOption int

const (
	ThroneOfBladesMustering ThroneOfBladesOption = iota
	ThroneOfBladesSupply
	ThroneOfBladesNothing
)

func (c ThroneOfBladesOption) Valid() bool {
	return c >= ThroneOfBladesMustering && c <= ThroneOfBladesNothing
}

func (c ThroneOfBladesOption) String() string {
	switch c {
	case ThroneOfBladesMustering:
		return "mustering"
	case ThroneOfBladesSupply:
		return "supply"
	case ThroneOfBladesNothing:
		return "nothing"
	default:
		return "unknown"
	}
}

// DarkWingsOption is the Raven holder's pick on "Dark Wings, Dark Words".
type DarkWingsOption int

const (
	DarkWingsClashOfKings DarkWingsOption = iota
	DarkWingsGameOfThrones
	DarkWingsNothing
)

func (c DarkWingsOption) Valid() bool {
	return c >= DarkWingsClashOfKings && c <= DarkWingsNothing
}

func (c DarkWingsOption) String() string {
	switch c {
	case DarkWingsClashOfKings:
		return "clash-of-kings"
	case DarkWingsGameOfThrones:
		return "game-of-thrones"
	case DarkWingsNothing:
		return "nothing"
	default:
		return "unknown"
	}
}

// PutToTheSwordOption is the Valyrian Steel Blade holder's pick on "Put to the Sword".
type PutToTheSwordOption int

const (
	PutToTheSwordForbidMarchPlusOne PutToTheSwordOption = iota
	PutToTheSwordForbidDefense
	PutToTheSwordNothing
)

func (c PutToTheSwordOption) Valid() bool {
	return c >= PutToTheSwordForbidMarchPlusOne && c <= PutToTheSwordNothing
}

func (c PutToTheSwordOption) String() string {
	switch c {
	case PutToTheSwordForbidMarchPlusOne:
		return "forbid-march-plus-one"
	case PutToTheSwordForbidDefense:
		return "forbid-defense"
	case PutToTheSwordNothing:
		return "nothing"
	default:
		return "unknown"
	}
}

// InfluenceTrack indexes the three influence tracks.
type InfluenceTrack int

const (
	TrackIronThrone InfluenceTrack = iota
	TrackFiefdoms
	TrackKingsCourt
)

func (t InfluenceTrack) Valid() bool {
	return t >= TrackIronThrone && t <= TrackKingsCourt
}

// Name returns the printed name of the track.
func (t InfluenceTrack) Name() string {
	switch t {
	case TrackIronThrone:
		return "Iron Throne"
	case TrackFiefdoms:
		return "Fiefdoms"
	case TrackKingsCourt:
		return "King's Court"
	default:
		return "unknown track"
	}
}
