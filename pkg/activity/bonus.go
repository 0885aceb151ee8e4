package activity

import "math"

// Bonuses are the in-game deltas earned by one run's activity. They merge
// additively into a player's persisted bonuses.
type Bonuses struct {
	Credits   int
	Infection float64
	Whisper   float64
}

// BonusPolicy holds the tunable constants for bonus generation. Earlier
// drafts of the formula used different multipliers and caps, so they are
// configuration rather than hard-coded.
type BonusPolicy struct {
	CreditMultiplier     float64
	InfectionPerGamePost float64
	InfectionCap         float64
	WhisperPerType       float64
	WhisperCap           float64
	GameRatioThreshold   float64
}

// DefaultBonusPolicy returns the production constants.
func DefaultBonusPolicy() BonusPolicy {
	return BonusPolicy{
		CreditMultiplier:     8,
		InfectionPerGamePost: 0.8,
		InfectionCap:         30,
		WhisperPerType:       3,
		WhisperCap:           20,
		GameRatioThreshold:   0.5,
	}
}

// Generate maps an activity summary to bonus deltas. Pure: calling it twice
// on the same summary yields identical bonuses.
//
// When the game-post ratio exceeds the threshold, credits grow by 20% and
// infection by a flat 5. The infection boost lands after the cap and is not
// re-clamped here; the record merger's [0,100] clamp on the displayed total
// is the only bound on it.
func (p BonusPolicy) Generate(s Summary) Bonuses {
	var b Bonuses

	b.Credits = int(math.Floor(s.Score * p.CreditMultiplier))
	if s.GamePosts > 0 {
		b.Infection = math.Min(float64(s.GamePosts)*p.InfectionPerGamePost, p.InfectionCap)
	}
	b.Whisper = math.Min(float64(len(s.Distribution))*p.WhisperPerType, p.WhisperCap)

	gameRatio := float64(s.GamePosts) / math.Max(float64(s.TotalPosts), 1)
	if gameRatio > p.GameRatioThreshold {
		b.Credits += int(math.Floor(float64(b.Credits) * 0.2))
		b.Infection += 5
	}

	return b
}
