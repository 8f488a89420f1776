package intel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rocketinsights/market_radar/internal/extract"
	"github.com/rocketinsights/market_radar/internal/gen"
)

// Service runs the five scan operations against a generation backend.
//
// Failure handling is deliberately asymmetric: the passive feeds (daily
// briefing, OOH, leadership) degrade to an empty result and a log line, while
// the user-initiated market scan and master search surface their errors.
type Service struct {
	gen gen.Generator
	log *logrus.Logger
	now func() time.Time
}

// NewService wires a scan service over a generation backend.
func NewService(g gen.Generator, log *logrus.Logger) *Service {
	return &Service{gen: g, log: log, now: time.Now}
}

// DailyBriefing fetches the last-24h news feed for a region. On backend
// failure it returns an empty feed.
func (s *Service) DailyBriefing(ctx context.Context, region string) []NewsItem {
	region = defaultRegion(region)
	text, err := s.gen.Generate(ctx, gen.Request{
		Instruction: briefingPrompt(region),
		SearchQuery: region + " advertising marketing industry news",
		Grounded:    true,
	})
	if err != nil {
		s.log.WithError(err).WithField("region", region).Error("daily briefing fetch failed")
		return []NewsItem{}
	}
	return parseNews(text)
}

// OOHCampaigns fetches recent out-of-home campaign activity for a region. On
// backend failure it returns an empty feed.
func (s *Service) OOHCampaigns(ctx context.Context, region string) []NewsItem {
	region = defaultRegion(region)
	text, err := s.gen.Generate(ctx, gen.Request{
		Instruction: oohPrompt(region),
		SearchQuery: region + " OOH DOOH billboard campaign launch",
		Grounded:    true,
	})
	if err != nil {
		s.log.WithError(err).WithField("region", region).Error("ooh feed fetch failed")
		return []NewsItem{}
	}
	return parseNews(text)
}

// MarketScan searches for account wins. Empty filters run a seven-day pulse
// scan; any filter switches to a year-to-date targeted search. Backend
// failures propagate so the dashboard can surface them.
func (s *Service) MarketScan(ctx context.Context, query, country, media string) ([]AccountWin, error) {
	prompt, targeted := marketScanPrompt(query, country, media, s.now())

	searchQuery := strings.TrimSpace(strings.Join([]string{query, country, "agency account win"}, " "))
	if !targeted {
		searchQuery = "APAC agency account win client appointment"
	}

	text, err := s.gen.Generate(ctx, gen.Request{
		Instruction: prompt,
		SearchQuery: searchQuery,
		Grounded:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("market scan: %w", err)
	}
	return parseWins(text, s.now()), nil
}

// Leadership looks up the executive(s) holding a role at a company. On
// backend failure it returns an empty result.
func (s *Service) Leadership(ctx context.Context, role, company, country string) []LeaderProfile {
	text, err := s.gen.Generate(ctx, gen.Request{
		Instruction: leadershipPrompt(role, company, country),
		SearchQuery: strings.TrimSpace(company + " " + role + " " + country),
		Grounded:    true,
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"role":    role,
			"company": company,
		}).Error("leadership scan failed")
		return []LeaderProfile{}
	}
	return parseLeaders(text, company, country)
}

// MasterSearch resolves one free-text query into a four-section composite
// report. Backend failures propagate.
func (s *Service) MasterSearch(ctx context.Context, query string) (*MasterReport, error) {
	text, err := s.gen.Generate(ctx, gen.Request{
		Instruction: masterPrompt(query),
		SearchQuery: query + " advertising agency",
		Grounded:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("master search: %w", err)
	}

	summary := extract.Section(text, extract.SectionSummary)
	if summary == "" {
		summary = DefaultSummary
	}

	return &MasterReport{
		Query:   query,
		Summary: summary,
		News:    parseNews(extract.Section(text, extract.SectionNews)),
		Leaders: parseLeaders(extract.Section(text, extract.SectionPeople), query, "Global/APAC"),
		Wins:    parseWins(extract.Section(text, extract.SectionWins), s.now()),
	}, nil
}

func defaultRegion(region string) string {
	if strings.TrimSpace(region) == "" {
		return "APAC"
	}
	return region
}
