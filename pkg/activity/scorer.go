package activity

import (
	"math"
	"time"
)

// Summary aggregates one user's posts for a single run.
type Summary struct {
	TotalPosts     int
	GamePosts      int
	FloodPosts     int
	TechnicalPosts int
	Distribution   map[string]int
	Score          float64
	LastActivity   time.Time
	Trend          Trend
}

// Scorer turns a user's raw posts into an activity summary.
type Scorer struct {
	classifier *Classifier
}

// NewScorer creates a scorer backed by the given classifier.
func NewScorer(c *Classifier) *Scorer {
	return &Scorer{classifier: c}
}

// Summarize aggregates posts into a Summary. An empty (or nil) post list is
// valid and yields zero counts, a zero score and LastActivity = now.
//
// Technical posts are derived as total - game - flood after the pass, never
// counted directly, so posts whose category falls outside the known set can
// not be double counted.
func (s *Scorer) Summarize(posts []Post, now time.Time) Summary {
	sum := Summary{
		Distribution: make(map[string]int),
		LastActivity: now,
		Trend:        TrendStable,
	}

	var lastPost time.Time
	for _, p := range posts {
		cp := s.classifier.ClassifyPost(p, now)

		sum.TotalPosts++
		switch cp.Kind {
		case KindGame:
			sum.GamePosts++
		case KindFlood:
			sum.FloodPosts++
		}
		sum.Distribution[cp.Category]++

		if cp.Timestamp.After(lastPost) {
			lastPost = cp.Timestamp
		}
	}

	sum.TechnicalPosts = sum.TotalPosts - sum.GamePosts - sum.FloodPosts
	if !lastPost.IsZero() {
		sum.LastActivity = lastPost
	}
	sum.Score = activityScore(sum)
	return sum
}

// activityScore is the aggregate category-weighted score: game posts are the
// most valuable, flood posts count fully, technical posts count half, plus a
// diversity bonus per distinct category and a bonus for the game-post ratio.
func activityScore(sum Summary) float64 {
	score := float64(sum.GamePosts)*3 +
		float64(sum.FloodPosts)*1 +
		float64(sum.TechnicalPosts)*0.5

	score += float64(len(sum.Distribution)) * 2

	gameRatio := float64(sum.GamePosts) / math.Max(float64(sum.TotalPosts), 1)
	score += gameRatio * 15

	return math.Round(score*10) / 10
}
