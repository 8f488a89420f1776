package intel

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketinsights/market_radar/internal/extract"
)

// Record shapes recovered from generated text. Column order is fixed by the
// prompt format directives in prompts.go.
var (
	winsShape = extract.Shape{
		MinColumns:     3,
		Columns:        5,
		Defaults:       []string{"Unknown", "Unknown", "APAC Regional", "", "Market Intelligence Scan"},
		HeaderKeywords: []string{"agency", "client"},
	}

	newsShape = extract.Shape{
		MinColumns:     3,
		Columns:        6,
		Defaults:       []string{"", "", "", "", "Industry News", ""},
		HeaderKeywords: []string{"headline"},
	}

	leaderShape = extract.Shape{
		MinColumns:     2,
		Columns:        3,
		HeaderKeywords: []string{"exact role", "name"},
	}
)

const linkedInSearchURL = "https://www.linkedin.com/search/results/all/?keywords="

func parseWins(text string, scanDate time.Time) []AccountWin {
	rows := extract.Parse(text, winsShape)
	wins := make([]AccountWin, 0, len(rows))
	for _, row := range rows {
		wins = append(wins, AccountWin{
			ID:       uuid.NewString(),
			Agency:   row[0],
			Client:   row[1],
			Country:  row[2],
			Audience: row[3],
			Source:   row[4],
			Date:     scanDate.Format(time.DateOnly),
		})
	}
	return wins
}

func parseNews(text string) []NewsItem {
	rows := extract.Parse(text, newsShape)
	items := make([]NewsItem, 0, len(rows))
	for _, row := range rows {
		item := NewsItem{
			ID:         uuid.NewString(),
			Category:   row[0],
			Headline:   row[1],
			Summary:    row[2],
			Audience:   row[3],
			Source:     row[4],
			ImageQuery: row[5],
		}
		if item.ImageQuery == "" {
			item.ImageQuery = item.Headline
		}
		items = append(items, item)
	}
	return items
}

func parseLeaders(text, company, country string) []LeaderProfile {
	if company == "" {
		company = "Company"
	}
	if country == "" {
		country = "APAC"
	}
	rows := extract.Parse(text, leaderShape)
	leaders := make([]LeaderProfile, 0, len(rows))
	for _, row := range rows {
		profileURL := row[2]
		if !strings.HasPrefix(profileURL, "http") {
			profileURL = linkedInSearchURL + url.QueryEscape(row[0]+" "+row[1]+" "+company)
		}
		leaders = append(leaders, LeaderProfile{
			ID:          uuid.NewString(),
			Name:        row[0],
			Role:        row[1],
			Company:     company,
			Country:     country,
			LinkedInURL: profileURL,
		})
	}
	return leaders
}
