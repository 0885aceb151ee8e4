package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Whisper-of-the-Void/warframe-rpg-data/internal/config"
	"github.com/Whisper-of-the-Void/warframe-rpg-data/internal/player"
	"github.com/Whisper-of-the-Void/warframe-rpg-data/internal/store"
	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/activity"
	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/scrape"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildClient(cfg *config.Config) (*scrape.Client, error) {
	return scrape.NewClient(scrape.Options{
		BaseURL:      cfg.Forum.BaseURL,
		Encoding:     cfg.Forum.Encoding,
		RequestDelay: cfg.Forum.ParseRequestDelay(),
		MaxRetries:   cfg.Forum.MaxRetries,
	})
}

func buildScorer(cfg *config.Config) (*activity.Scorer, error) {
	classifier, err := activity.NewClassifier(cfg.Sections.Activity())
	if err != nil {
		return nil, err
	}
	return activity.NewScorer(classifier), nil
}

func runUpdate(withPosts bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	file, err := player.LoadFile(cfg.Output.Path)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "scraping member list...")
	members, err := client.MemberList(ctx, cfg.Forum.MemberlistPath)
	if err != nil {
		return fmt.Errorf("scrape member list: %w", err)
	}

	now := time.Now().UTC()
	created := 0
	for _, m := range members {
		bonuses := player.Bonuses{
			Credits:   m.Bonuses.Credits,
			Infection: float64(m.Bonuses.Infection),
			Whisper:   float64(m.Bonuses.Whisper),
		}
		member := player.Member{
			UserID:                m.UserID,
			Name:                  m.Username,
			Status:                m.Status,
			Respect:               m.Respect,
			Posts:                 m.Posts,
			Registered:            m.Registered,
			LastOnline:            m.LastOnline,
			DaysSinceRegistration: scrape.DaysSince(m.Registered, now),
			StatusBonuses:         bonuses,
		}

		existing := file.Players[m.Username]
		if existing == nil {
			created++
		}
		file.Players[m.Username] = player.Merge(existing, member, now)
	}
	fmt.Fprintf(os.Stderr, "  %d members (%d new)\n", len(members), created)

	if withPosts {
		if err := analyzePlayers(ctx, cfg, client, file, "", false); err != nil {
			return err
		}
	}

	file.LastUpdated = now
	if err := file.Save(cfg.Output.Path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "players file written: %s\n", cfg.Output.Path)
	return nil
}

func runAnalyze(user string, activeOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := buildClient(cfg)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	file, err := player.LoadFile(cfg.Output.Path)
	if err != nil {
		return err
	}
	if len(file.Players) == 0 {
		return fmt.Errorf("players file is empty, run `rpgdata update` first")
	}

	if err := analyzePlayers(ctx, cfg, client, file, user, activeOnly); err != nil {
		return err
	}

	now := time.Now().UTC()
	file.LastUpdated = now
	file.PostsAnalyzedAt = &now
	if err := file.Save(cfg.Output.Path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "players file written: %s\n", cfg.Output.Path)
	return nil
}

// analyzePlayers walks the known players and recomputes activity, bonuses
// and trend for each. One user's failure never aborts the batch: fetch
// errors degrade that user to zeroed statistics and the loop continues.
func analyzePlayers(ctx context.Context, cfg *config.Config, client *scrape.Client, file *player.File, onlyUser string, activeOnly bool) error {
	if onlyUser != "" && file.Players[onlyUser] == nil {
		return fmt.Errorf("unknown user %q", onlyUser)
	}

	scorer, err := buildScorer(cfg)
	if err != nil {
		return err
	}
	policy := cfg.Scoring.BonusPolicy()

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open score history: %w", err)
	}
	defer db.Close()

	var active map[string]bool
	if activeOnly {
		cutoff := time.Now().Add(-7 * 24 * time.Hour)
		active, err = client.ActiveSince(ctx, cfg.Forum.FeedPath, cutoff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  feed error (analyzing everyone): %v\n", err)
			active = nil
		} else {
			fmt.Fprintf(os.Stderr, "  feed: %d recently active users\n", len(active))
		}
	}

	analyzed, skipped := 0, 0
	for _, username := range file.Usernames() {
		if onlyUser != "" && username != onlyUser {
			continue
		}
		if active != nil && !active[username] {
			skipped++
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rec := file.Players[username]
		if rec.UserID == 0 {
			fmt.Fprintf(os.Stderr, "  %s: %v, skipping\n", username, player.ErrNoUserID)
			skipped++
			continue
		}

		now := time.Now().UTC()
		posts, err := client.UserPosts(ctx, rec.UserID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: fetch error, using default stats: %v\n", username, err)
			posts = nil
		}

		sum := scorer.Summarize(posts, now)
		if sum.TotalPosts > 0 {
			prev, hasPrev := rec.PreviousScore()
			if !hasPrev {
				// A rebuilt players file has no post stats yet; the
				// score history still knows the last run.
				s, ok, herr := db.LatestScore(ctx, username)
				if herr != nil {
					fmt.Fprintf(os.Stderr, "  %s: history error: %v\n", username, herr)
				} else if ok {
					prev, hasPrev = s, true
				}
			}
			sum.Trend = activity.EstimateTrend(sum.Score, prev, hasPrev)
		}

		bonuses := policy.Generate(sum)
		if err := rec.ApplyActivity(sum, bonuses, now); err != nil {
			if errors.Is(err, player.ErrNoUserID) {
				skipped++
				continue
			}
			return err
		}

		if err := db.AddSnapshot(ctx, username, sum.Score, sum.TotalPosts); err != nil {
			fmt.Fprintf(os.Stderr, "  %s: history error: %v\n", username, err)
		}

		fmt.Fprintf(os.Stderr, "  %s: %d posts, score %.1f, trend %s\n",
			username, sum.TotalPosts, sum.Score, sum.Trend)
		analyzed++
	}

	fmt.Fprintf(os.Stderr, "analyzed %d users, skipped %d\n", analyzed, skipped)
	return nil
}

func runStats(jsonOutput bool, historyUser string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if historyUser != "" {
		return printHistory(cfg, historyUser)
	}

	file, err := player.LoadFile(cfg.Output.Path)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	}

	if len(file.Players) == 0 {
		fmt.Println("no players recorded yet (run `rpgdata update` first)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOSTS\tSCORE\tTREND\tCREDITS\tLAST UPDATED")
	for _, username := range file.Usernames() {
		rec := file.Players[username]

		score, trend := 0.0, activity.TrendStable
		if ps := rec.ForumData.PostStats; ps != nil {
			score, trend = ps.ActivityScore, ps.Trend
		}

		fmt.Fprintf(w, "%s\t%d\t%.1f\t%s\t%d\t%s\n",
			username, rec.ForumData.Posts, score, trend,
			rec.GameStats.Credits, rec.LastUpdated.Format(time.RFC3339))
	}
	return w.Flush()
}

func printHistory(cfg *config.Config, username string) error {
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open score history: %w", err)
	}
	defer db.Close()

	snaps, err := db.History(context.Background(), username, 50)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Printf("no score history for %s\n", username)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tSCORE\tPOSTS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%.1f\t%d\n", s.RecordedAt.Format(time.RFC3339), s.Score, s.TotalPosts)
	}
	return w.Flush()
}
