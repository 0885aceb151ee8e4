package player

import (
	"regexp"
	"strings"
	"time"

	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/activity"
)

// Record is one player's persisted entry in the data file. The rendering
// widget consumes this shape as-is, so field names are part of the contract.
type Record struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	ForumData   ForumData `json:"forum_data"`
	Bonuses     Bonuses   `json:"bonuses"`
	GameStats   GameStats `json:"game_stats"`
	LastUpdated time.Time `json:"last_updated"`
}

// ForumData holds the scraped member-list fields plus the computed post
// statistics.
type ForumData struct {
	Status                string     `json:"status"`
	Respect               string     `json:"respect"`
	Posts                 int        `json:"posts"`
	Registered            string     `json:"registered"`
	LastOnline            string     `json:"last_online"`
	DaysSinceRegistration int        `json:"days_since_registration"`
	PostStats             *PostStats `json:"post_stats,omitempty"`
}

// PostStats is the per-run activity summary stored on the record.
type PostStats struct {
	TotalPosts     int            `json:"total_posts"`
	GamePosts      int            `json:"game_posts"`
	FloodPosts     int            `json:"flood_posts"`
	TechnicalPosts int            `json:"technical_posts"`
	ActivityScore  float64        `json:"post_activity_score"`
	Distribution   map[string]int `json:"post_distribution"`
	LastActivity   time.Time      `json:"last_activity"`
	Trend          activity.Trend `json:"activity_trend"`
}

// Bonuses are the accumulated in-game deltas for a player.
type Bonuses struct {
	Credits   int     `json:"credits"`
	Infection float64 `json:"infection"`
	Whisper   float64 `json:"whisper"`
}

// Stat is a displayed game stat with its bonus contribution and the clamped
// total the widget shows.
type Stat struct {
	Base  float64 `json:"base"`
	Bonus float64 `json:"bonus"`
	Total float64 `json:"total"`
}

// GameStats are the derived in-game values.
type GameStats struct {
	Credits   int  `json:"credits"`
	Infection Stat `json:"infection"`
	Whisper   Stat `json:"whisper"`
}

const baseCredits = 1000

// recalcGameStats rederives the displayed stats from the accumulated bonuses.
func (r *Record) recalcGameStats() {
	r.GameStats.Credits = baseCredits + r.Bonuses.Credits
	r.GameStats.Infection = Stat{
		Bonus: r.Bonuses.Infection,
		Total: clamp(r.Bonuses.Infection, 0, 100),
	}
	r.GameStats.Whisper = Stat{
		Bonus: r.Bonuses.Whisper,
		Total: clamp(r.Bonuses.Whisper, -100, 100),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var idCleanRe = regexp.MustCompile(`[^a-z0-9а-яё]+`)

// MakeID derives a stable slug from a username.
func MakeID(username string) string {
	id := idCleanRe.ReplaceAllString(strings.ToLower(username), "_")
	return strings.Trim(id, "_")
}
