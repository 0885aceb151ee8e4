package scrape

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Whisper-of-the-Void/warframe-rpg-data/pkg/activity"
)

const maxPostPages = 200 // safety bound on pagination walks

var (
	forumIDRe    = regexp.MustCompile(`viewforum\.php\?id=(\d+)`)
	totalPagesRe = regexp.MustCompile(`(?:из\s*(\d+))|(?:(\d+)\s*страниц)`)
)

// UserPosts walks the paginated post-search pages for one user and returns
// the raw posts for the activity engine. Word counts and timestamps are
// defaulted here when the page omits them.
func (c *Client) UserPosts(ctx context.Context, userID int) ([]activity.Post, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id %d is not valid", userID)
	}

	now := time.Now()
	var posts []activity.Post
	totalPages := 1

	for page := 1; page <= maxPostPages; page++ {
		path := fmt.Sprintf("/search.php?action=show_user_posts&user_id=%d&page=%d", userID, page)
		doc, err := c.document(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("fetch posts page %d for user %d: %w", page, userID, err)
		}

		pp := parsePostsPage(doc, page, now)
		posts = append(posts, pp.posts...)

		if page == 1 && pp.totalPages > 0 {
			totalPages = pp.totalPages
		}
		if !pp.hasNextPage || page >= totalPages {
			break
		}
	}

	return posts, nil
}

type postsPage struct {
	posts       []activity.Post
	hasNextPage bool
	totalPages  int
}

// parsePostsPage extracts posts, section ids and pagination state from one
// search-results page.
func parsePostsPage(doc *goquery.Document, currentPage int, now time.Time) postsPage {
	var pp postsPage

	doc.Find(".post").Each(func(_ int, post *goquery.Selection) {
		forumLink := post.Find(`h3 a[href*="viewforum.php?id="]`).First()
		if forumLink.Length() == 0 {
			return
		}
		href, _ := forumLink.Attr("href")
		m := forumIDRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		sectionID, _ := strconv.Atoi(m[1])

		dateText := strings.TrimSpace(post.Find(`h3 a[href*="viewtopic.php"]`).First().Text())

		body := post.Find(".post-content, .postmsg").First().Text()

		pp.posts = append(pp.posts, activity.Post{
			SectionID: sectionID,
			WordCount: len(strings.Fields(body)),
			Timestamp: parsePostDate(dateText, now),
		})
	})

	pp.hasNextPage = hasNextPage(doc, currentPage)
	pp.totalPages = totalPages(doc)
	return pp
}

// parsePostDate handles the forum's relative day labels and its common
// absolute formats; unparseable dates fall back to the run time.
func parsePostDate(text string, now time.Time) time.Time {
	if strings.Contains(text, "Сегодня") {
		return now
	}
	if strings.Contains(text, "Вчера") {
		return now.Add(-24 * time.Hour)
	}

	for _, layout := range []string{
		"02.01.2006 15:04:05",
		"02.01.2006 15:04",
		"02.01.2006",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return now
}

func hasNextPage(doc *goquery.Document, currentPage int) bool {
	next := fmt.Sprintf(`a[href*="page=%d"]`, currentPage+1)
	if doc.Find(next).Length() > 0 {
		return true
	}

	pagination := doc.Find(".pagination, .pages").First()
	return pagination.Length() > 0 &&
		strings.Contains(pagination.Text(), strconv.Itoa(currentPage+1))
}

func totalPages(doc *goquery.Document) int {
	pagination := doc.Find(".pagination, .pages").First()
	if pagination.Length() == 0 {
		return 0
	}

	m := totalPagesRe.FindStringSubmatch(pagination.Text())
	if m == nil {
		return 0
	}
	for _, g := range m[1:] {
		if g != "" {
			n, _ := strconv.Atoi(g)
			return n
		}
	}
	return 0
}
