package scrape

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MemberRow is one row of the forum member list. Absent cells get their
// zero values here, at the boundary, so the engine never sees missing data.
type MemberRow struct {
	UserID     int
	Username   string
	Status     string
	Respect    string
	Posts      int
	Registered string
	LastOnline string
	Bonuses    StatusBonuses
}

// StatusBonuses are the bonus markers players carry in their status line,
// e.g. "💰+200 ⚡+23% 👁-12%".
type StatusBonuses struct {
	Credits   int
	Infection int
	Whisper   int
}

var (
	creditsMarkerRe   = regexp.MustCompile(`💰\s*([+-]?\d+)`)
	infectionMarkerRe = regexp.MustCompile(`⚡\s*([+-]?\d+)%`)
	whisperMarkerRe   = regexp.MustCompile(`👁\s*([+-]?\d+)%`)
	profileIDRe       = regexp.MustCompile(`(?:profile|member)\.php\?id=(\d+)`)
	digitsRe          = regexp.MustCompile(`\d+`)
)

// ParseStatusBonuses extracts the bonus markers from a status line.
func ParseStatusBonuses(status string) StatusBonuses {
	var b StatusBonuses
	if m := creditsMarkerRe.FindStringSubmatch(status); m != nil {
		b.Credits, _ = strconv.Atoi(m[1])
	}
	if m := infectionMarkerRe.FindStringSubmatch(status); m != nil {
		b.Infection, _ = strconv.Atoi(m[1])
	}
	if m := whisperMarkerRe.FindStringSubmatch(status); m != nil {
		b.Whisper, _ = strconv.Atoi(m[1])
	}
	return b
}

// MemberList fetches and parses the forum user list.
func (c *Client) MemberList(ctx context.Context, path string) ([]MemberRow, error) {
	if path == "" {
		path = "/userlist.php"
	}

	doc, err := c.document(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch member list: %w", err)
	}
	return parseMemberList(doc)
}

// parseMemberList extracts member rows from the user-list page. It first
// looks for the members table by its header text; when the markup doesn't
// match, it falls back to scanning profile links.
func parseMemberList(doc *goquery.Document) ([]MemberRow, error) {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		text := t.Text()
		if strings.Contains(text, "Имя") &&
			strings.Contains(text, "Сообщений") &&
			strings.Contains(text, "Зарегистрирован") {
			table = t
			return false
		}
		return true
	})

	if table == nil {
		rows := parseProfileLinks(doc)
		if len(rows) == 0 {
			return nil, fmt.Errorf("member table not found")
		}
		return rows, nil
	}

	var rows []MemberRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 4 {
			return
		}

		nameCell := cells.Eq(0)
		username := strings.TrimSpace(nameCell.Text())
		if !isValidPlayerName(username) {
			return
		}

		row := MemberRow{
			Username:   username,
			Status:     cellText(cells, 1),
			Respect:    cellText(cells, 2),
			Registered: cellText(cells, 4),
			LastOnline: cellText(cells, 5),
		}
		if href, ok := nameCell.Find("a").Attr("href"); ok {
			row.UserID = extractProfileID(href)
		}
		if m := digitsRe.FindString(cellText(cells, 3)); m != "" {
			row.Posts, _ = strconv.Atoi(m)
		}
		row.Bonuses = ParseStatusBonuses(row.Status)

		rows = append(rows, row)
	})

	return rows, nil
}

// parseProfileLinks is the fallback for unrecognized list markup: every
// profile link yields a bare row with just the name and id.
func parseProfileLinks(doc *goquery.Document) []MemberRow {
	seen := make(map[string]bool)
	var rows []MemberRow

	doc.Find(`a[href*="profile.php?id="], a[href*="member.php?id="]`).Each(func(_ int, a *goquery.Selection) {
		username := strings.TrimSpace(a.Text())
		if !isValidPlayerName(username) || seen[username] {
			return
		}
		seen[username] = true

		row := MemberRow{Username: username}
		if href, ok := a.Attr("href"); ok {
			row.UserID = extractProfileID(href)
		}
		rows = append(rows, row)
	})

	return rows
}

func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(i).Text())
}

func extractProfileID(href string) int {
	if u, err := url.QueryUnescape(href); err == nil {
		href = u
	}
	if m := profileIDRe.FindStringSubmatch(href); m != nil {
		id, _ := strconv.Atoi(m[1])
		return id
	}
	return 0
}

var onlyDigitsRe = regexp.MustCompile(`^\d+$`)

// isValidPlayerName filters header rows, service links and junk cells.
func isValidPlayerName(name string) bool {
	if len(name) < 2 || len([]rune(name)) >= 50 {
		return false
	}
	if strings.Contains(name, "@") {
		return false
	}
	for _, header := range []string{"Имя", "Автор", "Зарегистрирован", "Последний визит"} {
		if strings.Contains(name, header) {
			return false
		}
	}
	return !onlyDigitsRe.MatchString(name)
}

// DaysSince returns whole days between a scraped registration date and now.
// Handles DD.MM.YYYY and YYYY-MM-DD; anything else counts as day zero.
func DaysSince(dateText string, now time.Time) int {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" || dateText == "Неизвестно" {
		return 0
	}

	var parsed time.Time
	var err error
	for _, layout := range []string{"02.01.2006", "2006-01-02"} {
		parsed, err = time.Parse(layout, dateText)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0
	}

	days := int(now.Sub(parsed).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
