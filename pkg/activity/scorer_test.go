package activity

import (
	"testing"
	"time"
)

func TestSummarizeEmpty(t *testing.T) {
	s := NewScorer(mustClassifier(t))
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	sum := s.Summarize(nil, now)

	if sum.TotalPosts != 0 || sum.GamePosts != 0 || sum.FloodPosts != 0 || sum.TechnicalPosts != 0 {
		t.Errorf("counts = %+v, want all zero", sum)
	}
	if sum.Score != 0 {
		t.Errorf("score = %v, want 0", sum.Score)
	}
	if len(sum.Distribution) != 0 {
		t.Errorf("distribution = %v, want empty", sum.Distribution)
	}
	if !sum.LastActivity.Equal(now) {
		t.Errorf("last activity = %v, want run time %v", sum.LastActivity, now)
	}
	if sum.Trend != TrendStable {
		t.Errorf("trend = %v, want stable", sum.Trend)
	}
}

func TestSummarizeScenario(t *testing.T) {
	s := NewScorer(mustClassifier(t))
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	var posts []Post
	// 6 game posts, ~150 words, posted today.
	for i := 0; i < 6; i++ {
		posts = append(posts, Post{SectionID: 7, WordCount: 150, Timestamp: now.Add(-time.Duration(i) * time.Hour)})
	}
	// 3 flood posts, 50 words, 10 days old.
	for i := 0; i < 3; i++ {
		posts = append(posts, Post{SectionID: 9, WordCount: 50, Timestamp: now.Add(-10 * 24 * time.Hour)})
	}
	// 1 post in an unlisted section, 80 words, 40 days old.
	posts = append(posts, Post{SectionID: 5, WordCount: 80, Timestamp: now.Add(-40 * 24 * time.Hour)})

	sum := s.Summarize(posts, now)

	if sum.TotalPosts != 10 || sum.GamePosts != 6 || sum.FloodPosts != 3 || sum.TechnicalPosts != 1 {
		t.Errorf("counts = total %d game %d flood %d technical %d, want 10/6/3/1",
			sum.TotalPosts, sum.GamePosts, sum.FloodPosts, sum.TechnicalPosts)
	}

	want := map[string]int{"roleplay": 6, "offtopic": 3, "technical": 1}
	if len(sum.Distribution) != len(want) {
		t.Fatalf("distribution = %v, want %v", sum.Distribution, want)
	}
	for category, n := range want {
		if sum.Distribution[category] != n {
			t.Errorf("distribution[%s] = %d, want %d", category, sum.Distribution[category], n)
		}
	}

	// 6*3 + 3*1 + 1*0.5 + 3*2 + (6/10)*15 = 36.5
	if !approx(sum.Score, 36.5) {
		t.Errorf("score = %v, want 36.5", sum.Score)
	}

	if !sum.LastActivity.Equal(now) {
		t.Errorf("last activity = %v, want most recent post time %v", sum.LastActivity, now)
	}
}

func TestSummarizeTechnicalInvariant(t *testing.T) {
	s := NewScorer(mustClassifier(t))
	now := time.Now()

	posts := []Post{
		{SectionID: 1, Timestamp: now},
		{SectionID: 5, Timestamp: now},
		{SectionID: 9, Timestamp: now},
		{SectionID: 42, Timestamp: now},
		{SectionID: 10, Timestamp: now},
	}

	sum := s.Summarize(posts, now)
	if got := sum.TotalPosts - sum.GamePosts - sum.FloodPosts; sum.TechnicalPosts != got {
		t.Errorf("technical = %d, want total-game-flood = %d", sum.TechnicalPosts, got)
	}
	if sum.TechnicalPosts != 2 {
		t.Errorf("technical = %d, want 2", sum.TechnicalPosts)
	}
}

func TestSummarizeLastActivityIsMaxTimestamp(t *testing.T) {
	s := NewScorer(mustClassifier(t))
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	newest := now.Add(-2 * time.Hour)

	posts := []Post{
		{SectionID: 9, Timestamp: now.Add(-72 * time.Hour)},
		{SectionID: 1, Timestamp: newest},
		{SectionID: 5, Timestamp: now.Add(-24 * time.Hour)},
	}

	sum := s.Summarize(posts, now)
	if !sum.LastActivity.Equal(newest) {
		t.Errorf("last activity = %v, want %v", sum.LastActivity, newest)
	}
}
