package player

import (
	"errors"
	"time"

	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/activity"
)

// ErrNoUserID marks a player whose post history cannot be correlated. The
// caller skips the activity update for that player and moves on.
var ErrNoUserID = errors.New("player has no user id")

// Member is a freshly scraped member-list row, already decoded and defaulted
// at the scraping boundary.
type Member struct {
	UserID                int
	Name                  string
	Status                string
	Respect               string
	Posts                 int
	Registered            string
	LastOnline            string
	DaysSinceRegistration int
	StatusBonuses         Bonuses
}

// Merge folds a scraped member row into an existing record, or creates a new
// record on first sighting. For existing players only the scraped forum
// fields and the timestamp change; accumulated bonuses, game stats and post
// statistics stay as they are.
func Merge(existing *Record, m Member, now time.Time) *Record {
	if existing == nil {
		r := &Record{
			ID:      MakeID(m.Name),
			UserID:  m.UserID,
			Name:    m.Name,
			Bonuses: m.StatusBonuses,
		}
		r.applyMemberFields(m)
		r.recalcGameStats()
		r.LastUpdated = now
		return r
	}

	existing.applyMemberFields(m)
	if existing.UserID == 0 {
		existing.UserID = m.UserID
	}
	existing.LastUpdated = now
	return existing
}

func (r *Record) applyMemberFields(m Member) {
	r.ForumData.Status = m.Status
	r.ForumData.Respect = m.Respect
	r.ForumData.Posts = m.Posts
	r.ForumData.Registered = m.Registered
	r.ForumData.LastOnline = m.LastOnline
	r.ForumData.DaysSinceRegistration = m.DaysSinceRegistration
}

// ApplyActivity merges a freshly computed activity summary and bonus set
// into the record: bonuses accumulate additively, game stats are rederived,
// post stats are replaced wholesale. Everything else passes through.
func (r *Record) ApplyActivity(sum activity.Summary, b activity.Bonuses, now time.Time) error {
	if r.UserID == 0 {
		return ErrNoUserID
	}

	r.Bonuses.Credits += b.Credits
	r.Bonuses.Infection += b.Infection
	r.Bonuses.Whisper += b.Whisper
	r.recalcGameStats()

	r.ForumData.PostStats = &PostStats{
		TotalPosts:     sum.TotalPosts,
		GamePosts:      sum.GamePosts,
		FloodPosts:     sum.FloodPosts,
		TechnicalPosts: sum.TechnicalPosts,
		ActivityScore:  sum.Score,
		Distribution:   sum.Distribution,
		LastActivity:   sum.LastActivity,
		Trend:          sum.Trend,
	}
	r.LastUpdated = now
	return nil
}

// PreviousScore returns the activity score from the last stored run, if any.
func (r *Record) PreviousScore() (float64, bool) {
	if r.ForumData.PostStats == nil {
		return 0, false
	}
	return r.ForumData.PostStats.ActivityScore, true
}
