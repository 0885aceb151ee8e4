package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/activity"
)

// Config is the root configuration.
type Config struct {
	Forum    ForumConfig    `yaml:"forum"`
	Sections SectionsConfig `yaml:"sections"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Database DatabaseConfig `yaml:"database"`
	Output   OutputConfig   `yaml:"output"`
}

// ForumConfig points at the scraped forum.
type ForumConfig struct {
	BaseURL        string `yaml:"base_url"`
	MemberlistPath string `yaml:"memberlist_path"`
	FeedPath       string `yaml:"feed_path"`
	Encoding       string `yaml:"encoding"`
	RequestDelay   string `yaml:"request_delay"`
	MaxRetries     int    `yaml:"max_retries"`
}

// ParseRequestDelay returns the inter-request delay as time.Duration.
func (f ForumConfig) ParseRequestDelay() time.Duration {
	d, err := time.ParseDuration(f.RequestDelay)
	if err != nil || d <= 0 {
		return 800 * time.Millisecond
	}
	return d
}

// SectionsConfig partitions forum section ids. Category names become the
// keys of the post distribution.
type SectionsConfig struct {
	Game  map[string][]int `yaml:"game"`
	Flood map[string][]int `yaml:"flood"`
}

// Activity converts the YAML tables to the engine's section config.
func (s SectionsConfig) Activity() activity.Sections {
	return activity.Sections{Game: s.Game, Flood: s.Flood}
}

// ScoringConfig holds the bonus-generation constants. Earlier drafts of the
// formula shipped with different multipliers and caps, so they live in
// config; zero values fall back to the current production constants.
type ScoringConfig struct {
	CreditMultiplier     float64 `yaml:"credit_multiplier"`
	InfectionPerGamePost float64 `yaml:"infection_per_game_post"`
	InfectionCap         float64 `yaml:"infection_cap"`
	WhisperPerType       float64 `yaml:"whisper_per_type"`
	WhisperCap           float64 `yaml:"whisper_cap"`
	GameRatioThreshold   float64 `yaml:"game_ratio_threshold"`
}

// BonusPolicy converts the scoring config to an engine bonus policy.
func (s ScoringConfig) BonusPolicy() activity.BonusPolicy {
	p := activity.DefaultBonusPolicy()
	if s.CreditMultiplier > 0 {
		p.CreditMultiplier = s.CreditMultiplier
	}
	if s.InfectionPerGamePost > 0 {
		p.InfectionPerGamePost = s.InfectionPerGamePost
	}
	if s.InfectionCap > 0 {
		p.InfectionCap = s.InfectionCap
	}
	if s.WhisperPerType > 0 {
		p.WhisperPerType = s.WhisperPerType
	}
	if s.WhisperCap > 0 {
		p.WhisperCap = s.WhisperCap
	}
	if s.GameRatioThreshold > 0 {
		p.GameRatioThreshold = s.GameRatioThreshold
	}
	return p
}

// DatabaseConfig configures the SQLite score history.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig configures the published players file.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Forum: ForumConfig{
			BaseURL:        "https://warframe.f-rpg.me",
			MemberlistPath: "/userlist.php",
			FeedPath:       "/extern.php?action=feed&type=atom",
			Encoding:       "windows-1251",
			RequestDelay:   "800ms",
			MaxRetries:     3,
		},
		Sections: SectionsConfig{
			Game: map[string][]int{
				"roleplay": {1, 7},
			},
			Flood: map[string][]int{
				"offtopic": {9},
				"evenings": {10},
				"diaries":  {11},
				"contest":  {12},
			},
		},
		Scoring:  ScoringConfig{},
		Database: DatabaseConfig{Path: "./rpgdata.db"},
		Output:   OutputConfig{Path: "./data/players.json"},
	}
}

// Load reads configuration from a YAML file, applies env var overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}

		// yaml merges mappings key-by-key into the pre-populated default
		// tables, which would leave default category keys underneath a
		// user-supplied sections block. A supplied block replaces the
		// defaults wholesale.
		var doc struct {
			Sections *SectionsConfig `yaml:"sections"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if doc.Sections != nil {
			cfg.Sections = *doc.Sections
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the section tables at load time. Corrupt section config
// aborts the whole run; nothing downstream can classify posts without it.
func (c *Config) Validate() error {
	if c.Forum.BaseURL == "" {
		return fmt.Errorf("forum.base_url is required")
	}
	if err := c.Sections.Activity().Validate(); err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RPGDATA_FORUM_URL"); v != "" {
		cfg.Forum.BaseURL = v
	}
	if v := os.Getenv("RPGDATA_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("RPGDATA_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
}
