package activity

import "testing"

func TestGenerateBonuses(t *testing.T) {
	p := DefaultBonusPolicy()

	sum := Summary{
		TotalPosts: 10,
		GamePosts:  5,
		FloodPosts: 3,
		Score:      36.5,
		Distribution: map[string]int{
			"roleplay": 5,
			"offtopic": 3,
			"technical": 2,
		},
	}

	b := p.Generate(sum)

	// floor(36.5 * 8) = 292; game ratio is exactly 0.5, not above the
	// threshold, so no boost applies.
	if b.Credits != 292 {
		t.Errorf("credits = %d, want 292", b.Credits)
	}
	if !approx(b.Infection, 4) {
		t.Errorf("infection = %v, want 4", b.Infection)
	}
	if !approx(b.Whisper, 9) {
		t.Errorf("whisper = %v, want 9", b.Whisper)
	}
}

func TestGenerateBonusesNoGamePosts(t *testing.T) {
	p := DefaultBonusPolicy()

	b := p.Generate(Summary{
		TotalPosts:   4,
		FloodPosts:   4,
		Score:        8,
		Distribution: map[string]int{"offtopic": 4},
	})

	if b.Infection != 0 {
		t.Errorf("infection = %v, want 0 without game posts", b.Infection)
	}
}

func TestGenerateBonusesGameRatioBoost(t *testing.T) {
	p := DefaultBonusPolicy()

	sum := Summary{
		TotalPosts:   50,
		GamePosts:    40,
		Score:        100,
		Distribution: map[string]int{"roleplay": 40, "technical": 10},
	}

	b := p.Generate(sum)

	// Base credits floor(100*8)=800, boosted by 20% -> 960.
	if b.Credits != 960 {
		t.Errorf("credits = %d, want 960", b.Credits)
	}
	// Infection caps at 30 (40*0.8=32), then the boost adds 5 on top of the
	// cap without re-clamping.
	if !approx(b.Infection, 35) {
		t.Errorf("infection = %v, want 35 (cap + uncapped boost)", b.Infection)
	}
}

func TestGenerateBonusesWhisperCap(t *testing.T) {
	p := DefaultBonusPolicy()

	dist := make(map[string]int)
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		dist[c] = 1
	}

	b := p.Generate(Summary{TotalPosts: 8, Score: 10, Distribution: dist})
	if !approx(b.Whisper, 20) {
		t.Errorf("whisper = %v, want cap 20", b.Whisper)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	p := DefaultBonusPolicy()
	sum := Summary{
		TotalPosts:   10,
		GamePosts:    7,
		Score:        42.3,
		Distribution: map[string]int{"roleplay": 7, "offtopic": 3},
	}

	first := p.Generate(sum)
	second := p.Generate(sum)
	if first != second {
		t.Errorf("Generate not idempotent: %+v vs %+v", first, second)
	}
}
