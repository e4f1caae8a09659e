package engine

// Policy holds the scoring knobs of the recommendation engine. The
// defaults are hand-tuned for behavioral compatibility with the
// original coaching model; they are exposed as configuration rather
// than buried literals so a deployment can retune them.
type Policy struct {
	// MaxResults caps every recommendation list.
	MaxResults int

	// BaseWinRateMinGames gates the hero base win-rate factor.
	BaseWinRateMinGames int
	// BaseWinRateNoiseFloor drops base-rate deltas smaller than this.
	BaseWinRateNoiseFloor float64

	// PairMinGames gates synergy and counter factors.
	PairMinGames int
	// PairNoiseFloor drops pairwise deltas smaller than this.
	PairNoiseFloor float64

	// PlayerMinGames gates the player-strength factor.
	PlayerMinGames int
	// PlayerMinDelta is the smallest player-strength delta worth
	// reporting at all.
	PlayerMinDelta float64

	// RoleBonusFirst rewards the team's first Tank, Healer, or
	// damage-role hero.
	RoleBonusFirst float64
	// RoleBonusFrontline rewards the first Bruiser or Melee Assassin
	// once a Tank exists.
	RoleBonusFrontline float64
	// RolePenaltyDuplicate penalizes a second Healer or second Tank.
	RolePenaltyDuplicate float64
	// RolePenaltySupport penalizes a third or later Support.
	RolePenaltySupport float64

	// Ban-phase knobs.
	BanContestedMinRate  float64 // community ban rate worth denying
	BanContestedWeight   float64 // banRate multiplier
	BanCounterMinGames   int     // sample gate for threat denial
	BanCounterMinWinRate float64 // win-rate gate for threat denial
	BanEnemyRolePenalty  float64 // banning a role the enemy already has
}

// DefaultPolicy returns the reference scoring constants.
func DefaultPolicy() Policy {
	return Policy{
		MaxResults: 15,

		BaseWinRateMinGames:   100,
		BaseWinRateNoiseFloor: 0.5,

		PairMinGames:   30,
		PairNoiseFloor: 1.0,

		PlayerMinGames: 10,
		PlayerMinDelta: 2.0,

		RoleBonusFirst:       3.0,
		RoleBonusFrontline:   1.5,
		RolePenaltyDuplicate: -15.0,
		RolePenaltySupport:   -8.0,

		BanContestedMinRate:  15.0,
		BanContestedWeight:   0.1,
		BanCounterMinGames:   30,
		BanCounterMinWinRate: 53.0,
		BanEnemyRolePenalty:  -8.0,
	}
}
