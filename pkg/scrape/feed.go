package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// ActiveSince reads the forum's syndication feed and returns the usernames
// that authored a post after the cutoff. Callers use it to skip the
// expensive per-user page walk for players with no recent activity.
func (c *Client) ActiveSince(ctx context.Context, feedPath string, cutoff time.Time) (map[string]bool, error) {
	if feedPath == "" {
		return nil, fmt.Errorf("feed path is not configured")
	}

	body, err := c.get(ctx, feedPath, false)
	if err != nil {
		return nil, fmt.Errorf("fetch activity feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse activity feed: %w", err)
	}

	active := make(map[string]bool)
	for _, entry := range feed.Items {
		published := entry.PublishedParsed
		if published == nil {
			published = entry.UpdatedParsed
		}
		if published == nil || published.Before(cutoff) {
			continue
		}

		for _, author := range entry.Authors {
			if name := strings.TrimSpace(author.Name); name != "" {
				active[name] = true
			}
		}
	}

	return active, nil
}
