package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/rocketinsights/market_radar/internal/history"
	"github.com/rocketinsights/market_radar/internal/intel"
)

// ScanRecord is one logged market scan, as shown in the admin console.
type ScanRecord struct {
	ID        int64             `json:"id"`
	Query     string            `json:"query"`
	Results   []intel.AccountWin `json:"results"`
	CreatedAt time.Time         `json:"created_at"`
}

// ScanLogRepo persists market scan results so the latest scan can be shared
// across visitors and audited by admins.
type ScanLogRepo interface {
	SaveScan(ctx context.Context, query string, wins []intel.AccountWin) error
	LatestScan(ctx context.Context) ([]intel.AccountWin, error)
	ListScans(ctx context.Context, limit int) ([]*ScanRecord, error)
}

// BriefingRepo caches the daily briefing per region. FreshBriefing returns
// nil when no same-day briefing is stored.
type BriefingRepo interface {
	SaveBriefing(ctx context.Context, region string, items []intel.NewsItem) error
	FreshBriefing(ctx context.Context, region string) ([]intel.NewsItem, error)
}

// Scanner is the slice of the intel service the use case depends on.
type Scanner interface {
	DailyBriefing(ctx context.Context, region string) []intel.NewsItem
	OOHCampaigns(ctx context.Context, region string) []intel.NewsItem
	MarketScan(ctx context.Context, query, country, media string) ([]intel.AccountWin, error)
	Leadership(ctx context.Context, role, company, country string) []intel.LeaderProfile
	MasterSearch(ctx context.Context, query string) (*intel.MasterReport, error)
}

// IntelUseCase orchestrates scans with caching, scan logging and the
// recent-search lists. Persistence failures around a successful scan are
// logged and otherwise ignored; the scan result still stands.
type IntelUseCase struct {
	scanner   Scanner
	histories *history.Store
	scans     ScanLogRepo
	briefings BriefingRepo
	log       *log.Helper
}

// NewIntelUseCase wires the scan orchestration.
func NewIntelUseCase(scanner Scanner, histories *history.Store, scans ScanLogRepo, briefings BriefingRepo, logger log.Logger) *IntelUseCase {
	return &IntelUseCase{
		scanner:   scanner,
		histories: histories,
		scans:     scans,
		briefings: briefings,
		log:       log.NewHelper(logger),
	}
}

// Briefing serves the daily news feed for a region, cache-first: a briefing
// stored earlier the same day is reused instead of re-querying the backend.
func (uc *IntelUseCase) Briefing(ctx context.Context, region string) []intel.NewsItem {
	if cached, err := uc.briefings.FreshBriefing(ctx, region); err != nil {
		uc.log.Warnf("briefing cache read failed for %s: %v", region, err)
	} else if cached != nil {
		return cached
	}

	items := uc.scanner.DailyBriefing(ctx, region)
	if len(items) > 0 {
		if err := uc.briefings.SaveBriefing(ctx, region, items); err != nil {
			uc.log.Warnf("briefing cache write failed for %s: %v", region, err)
		}
	}
	return items
}

// OOH serves the out-of-home campaign feed. Not cached: the feed window is
// days wide and the volume is low.
func (uc *IntelUseCase) OOH(ctx context.Context, region string) []intel.NewsItem {
	return uc.scanner.OOHCampaigns(ctx, region)
}

// MarketScan runs an account-win scan, records the search in the pulse
// history when it carries filters, and logs the results.
func (uc *IntelUseCase) MarketScan(ctx context.Context, query, country, media string) ([]intel.AccountWin, error) {
	wins, err := uc.scanner.MarketScan(ctx, query, country, media)
	if err != nil {
		return nil, err
	}

	if uc.filtered(query, country, media) {
		if _, err := uc.histories.Record(ctx, history.CategoryPulse, history.Entry{
			Client:  query,
			Country: country,
			Media:   media,
		}); err != nil {
			uc.log.Warnf("pulse history record failed: %v", err)
		}
	}

	if err := uc.scans.SaveScan(ctx, scanLabel(query, country, media), wins); err != nil {
		uc.log.Warnf("scan log write failed: %v", err)
	}
	return wins, nil
}

// Leadership runs a people scan and records it in the leadership history.
func (uc *IntelUseCase) Leadership(ctx context.Context, role, company, country string) []intel.LeaderProfile {
	leaders := uc.scanner.Leadership(ctx, role, company, country)
	if len(leaders) > 0 {
		if _, err := uc.histories.Record(ctx, history.CategoryLeadership, history.Entry{
			Role:    role,
			Company: company,
			Country: country,
		}); err != nil {
			uc.log.Warnf("leadership history record failed: %v", err)
		}
	}
	return leaders
}

// MasterSearch runs a composite report and records the query.
func (uc *IntelUseCase) MasterSearch(ctx context.Context, query string) (*intel.MasterReport, error) {
	report, err := uc.scanner.MasterSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if _, err := uc.histories.Record(ctx, history.CategoryMaster, history.Entry{Query: query}); err != nil {
		uc.log.Warnf("master history record failed: %v", err)
	}
	return report, nil
}

// LatestScan returns the most recently logged scan results, shown before a
// visitor runs their own search.
func (uc *IntelUseCase) LatestScan(ctx context.Context) ([]intel.AccountWin, error) {
	return uc.scans.LatestScan(ctx)
}

// RecentScans lists logged searches for the admin console.
func (uc *IntelUseCase) RecentScans(ctx context.Context, limit int) ([]*ScanRecord, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return uc.scans.ListScans(ctx, limit)
}

// History returns the recency list for a category.
func (uc *IntelUseCase) History(ctx context.Context, category string) ([]history.Entry, error) {
	return uc.histories.List(ctx, category)
}

// ClearHistory drops all recency lists.
func (uc *IntelUseCase) ClearHistory(ctx context.Context) error {
	return uc.histories.Clear(ctx)
}

func (uc *IntelUseCase) filtered(query, country, media string) bool {
	return strings.TrimSpace(query) != "" ||
		strings.TrimSpace(country) != "" ||
		(media != "" && media != intel.AllMedia)
}

func scanLabel(query, country, media string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{query, country, media} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "weekly pulse"
	}
	return strings.Join(parts, " / ")
}
