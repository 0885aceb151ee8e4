package activity

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Kind is the coarse class of a forum section.
type Kind string

const (
	KindGame      Kind = "game"
	KindFlood     Kind = "flood"
	KindTechnical Kind = "technical"
)

// Section weights for per-post scoring.
const (
	gameWeight      = 2.0
	floodWeight     = 0.5
	technicalWeight = 0.1
)

// Sections partitions forum section ids into named game and flood categories.
// Any id listed in neither table is technical.
type Sections struct {
	Game  map[string][]int
	Flood map[string][]int
}

// Validate rejects empty tables and ids listed under more than one category.
func (s Sections) Validate() error {
	if len(s.Game) == 0 && len(s.Flood) == 0 {
		return fmt.Errorf("section config is empty")
	}

	seen := make(map[int]string)
	for _, table := range []map[string][]int{s.Game, s.Flood} {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for _, id := range table[name] {
				if prev, ok := seen[id]; ok {
					return fmt.Errorf("section id %d listed under both %q and %q", id, prev, name)
				}
				seen[id] = name
			}
		}
	}
	return nil
}

// Classification is the result of looking up a section id.
type Classification struct {
	Category string // named category, e.g. "roleplay"; "technical" if unlisted
	Kind     Kind
	Weight   float64
}

// Post is a single forum message attributed to one user.
type Post struct {
	SectionID int
	WordCount int
	Timestamp time.Time
}

// ClassifiedPost is a post with its section classification and an
// informational per-post score attached.
type ClassifiedPost struct {
	Post
	Classification
	Score float64
}

// Classifier maps section ids to categories and weights. It is immutable
// after construction and safe for concurrent use.
type Classifier struct {
	byID map[int]Classification
}

// NewClassifier builds a classifier from a validated section config.
func NewClassifier(s Sections) (*Classifier, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid section config: %w", err)
	}

	byID := make(map[int]Classification)
	for name, ids := range s.Game {
		for _, id := range ids {
			byID[id] = Classification{Category: name, Kind: KindGame, Weight: gameWeight}
		}
	}
	for name, ids := range s.Flood {
		for _, id := range ids {
			byID[id] = Classification{Category: name, Kind: KindFlood, Weight: floodWeight}
		}
	}
	return &Classifier{byID: byID}, nil
}

// Classify returns the category, kind and weight for a section id.
// Ids absent from both tables are technical. Total over all ids.
func (c *Classifier) Classify(sectionID int) Classification {
	if cl, ok := c.byID[sectionID]; ok {
		return cl
	}
	return Classification{Category: string(KindTechnical), Kind: KindTechnical, Weight: technicalWeight}
}

// ClassifyPost attaches the section classification and the per-post score.
// The per-post score is informational only; the aggregate activity score is
// computed from category counts in the scorer.
func (c *Classifier) ClassifyPost(p Post, now time.Time) ClassifiedPost {
	cl := c.Classify(p.SectionID)

	lengthBonus := math.Min(float64(p.WordCount)/100, 2)
	if p.WordCount <= 0 {
		lengthBonus = 0
	}

	return ClassifiedPost{
		Post:           p,
		Classification: cl,
		Score:          cl.Weight * lengthBonus * recencyBonus(now.Sub(p.Timestamp)),
	}
}

// recencyBonus rewards fresh posts. Boundaries are inclusive: a post exactly
// one day old still earns the top multiplier.
func recencyBonus(age time.Duration) float64 {
	days := age.Hours() / 24
	switch {
	case days <= 1:
		return 1.5
	case days <= 7:
		return 1.2
	case days <= 30:
		return 1.0
	default:
		return 0.5
	}
}
