package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.Forum.ParseRequestDelay(); got != 800*time.Millisecond {
		t.Errorf("request delay = %v, want 800ms", got)
	}
	if len(cfg.Sections.Game["roleplay"]) != 2 {
		t.Errorf("game sections = %v, want roleplay [1 7]", cfg.Sections.Game)
	}

	p := cfg.Scoring.BonusPolicy()
	if p.CreditMultiplier != 8 || p.InfectionCap != 30 || p.WhisperCap != 20 {
		t.Errorf("bonus policy defaults = %+v", p)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
forum:
  base_url: https://example.f-rpg.me
  request_delay: 2s
sections:
  game:
    roleplay: [3]
  flood:
    offtopic: [4]
scoring:
  credit_multiplier: 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Forum.BaseURL != "https://example.f-rpg.me" {
		t.Errorf("base url = %q", cfg.Forum.BaseURL)
	}
	if got := cfg.Forum.ParseRequestDelay(); got != 2*time.Second {
		t.Errorf("request delay = %v, want 2s", got)
	}
	if got := cfg.Scoring.BonusPolicy().CreditMultiplier; got != 5 {
		t.Errorf("credit multiplier = %v, want override 5", got)
	}
}

func TestLoadSectionsReplaceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	// Section 10 is "evenings" in the default tables. A config that moves
	// it to its own category must load cleanly, with no default keys left
	// behind.
	data := `
sections:
  game:
    battles: [10]
  flood:
    chat: [4]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sections.Game) != 1 || len(cfg.Sections.Flood) != 1 {
		t.Errorf("sections = %+v, want only the supplied categories", cfg.Sections)
	}
	if _, ok := cfg.Sections.Flood["evenings"]; ok {
		t.Error("default flood category survived a supplied sections block")
	}
	if ids := cfg.Sections.Game["battles"]; len(ids) != 1 || ids[0] != 10 {
		t.Errorf("game sections = %v, want battles [10]", cfg.Sections.Game)
	}
}

func TestLoadRejectsDuplicateSectionID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sections:
  game:
    roleplay: [1, 7]
  flood:
    offtopic: [7]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected duplicate section id to fail validation")
	}
}

func TestParseRequestDelayFallback(t *testing.T) {
	f := ForumConfig{RequestDelay: "not-a-duration"}
	if got := f.ParseRequestDelay(); got != 800*time.Millisecond {
		t.Errorf("request delay = %v, want fallback 800ms", got)
	}
}
