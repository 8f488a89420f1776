package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketinsights/market_radar/internal/history"
	"github.com/rocketinsights/market_radar/internal/intel"
)

type fakeScanner struct {
	briefingCalls int
	scanErr       error
	wins          []intel.AccountWin
	news          []intel.NewsItem
	leaders       []intel.LeaderProfile
	report        *intel.MasterReport
	reportErr     error
}

func (f *fakeScanner) DailyBriefing(context.Context, string) []intel.NewsItem {
	f.briefingCalls++
	return f.news
}

func (f *fakeScanner) OOHCampaigns(context.Context, string) []intel.NewsItem { return f.news }

func (f *fakeScanner) MarketScan(context.Context, string, string, string) ([]intel.AccountWin, error) {
	return f.wins, f.scanErr
}

func (f *fakeScanner) Leadership(context.Context, string, string, string) []intel.LeaderProfile {
	return f.leaders
}

func (f *fakeScanner) MasterSearch(context.Context, string) (*intel.MasterReport, error) {
	return f.report, f.reportErr
}

type fakeScanLog struct {
	saveErr error
	queries []string
	latest  []intel.AccountWin
}

func (f *fakeScanLog) SaveScan(_ context.Context, query string, _ []intel.AccountWin) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.queries = append(f.queries, query)
	return nil
}

func (f *fakeScanLog) LatestScan(context.Context) ([]intel.AccountWin, error) {
	return f.latest, nil
}

func (f *fakeScanLog) ListScans(context.Context, int) ([]*ScanRecord, error) { return nil, nil }

type fakeBriefingRepo struct {
	fresh    []intel.NewsItem
	freshErr error
	saved    map[string][]intel.NewsItem
}

func (f *fakeBriefingRepo) SaveBriefing(_ context.Context, region string, items []intel.NewsItem) error {
	if f.saved == nil {
		f.saved = map[string][]intel.NewsItem{}
	}
	f.saved[region] = items
	return nil
}

func (f *fakeBriefingRepo) FreshBriefing(context.Context, string) ([]intel.NewsItem, error) {
	return f.fresh, f.freshErr
}

func newTestHistories(t *testing.T) *history.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return history.NewStore(rdb, log.DefaultLogger)
}

func newIntelUseCase(t *testing.T, scanner *fakeScanner, scans *fakeScanLog, briefings *fakeBriefingRepo) *IntelUseCase {
	t.Helper()
	return NewIntelUseCase(scanner, newTestHistories(t), scans, briefings, log.DefaultLogger)
}

func TestBriefing_SameDayCacheSkipsScanner(t *testing.T) {
	cached := []intel.NewsItem{{Headline: "cached"}}
	scanner := &fakeScanner{news: []intel.NewsItem{{Headline: "fresh"}}}
	uc := newIntelUseCase(t, scanner, &fakeScanLog{}, &fakeBriefingRepo{fresh: cached})

	got := uc.Briefing(context.Background(), "Singapore")
	assert.Equal(t, "cached", got[0].Headline)
	assert.Zero(t, scanner.briefingCalls)
}

func TestBriefing_CacheMissFetchesAndStores(t *testing.T) {
	scanner := &fakeScanner{news: []intel.NewsItem{{Headline: "fresh"}}}
	briefings := &fakeBriefingRepo{}
	uc := newIntelUseCase(t, scanner, &fakeScanLog{}, briefings)

	got := uc.Briefing(context.Background(), "Singapore")
	require.Len(t, got, 1)
	assert.Equal(t, 1, scanner.briefingCalls)
	assert.Len(t, briefings.saved["Singapore"], 1)
}

func TestBriefing_CacheReadFailureDegradesToFetch(t *testing.T) {
	scanner := &fakeScanner{news: []intel.NewsItem{{Headline: "fresh"}}}
	uc := newIntelUseCase(t, scanner, &fakeScanLog{}, &fakeBriefingRepo{freshErr: errors.New("down")})

	got := uc.Briefing(context.Background(), "Singapore")
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Headline)
}

func TestMarketScan_ErrorPropagatesWithoutSideEffects(t *testing.T) {
	scanner := &fakeScanner{scanErr: errors.New("model unavailable")}
	scans := &fakeScanLog{}
	uc := newIntelUseCase(t, scanner, scans, &fakeBriefingRepo{})

	_, err := uc.MarketScan(context.Background(), "Nike", "Japan", "Digital")
	require.Error(t, err)
	assert.Empty(t, scans.queries)

	entries, err := uc.History(context.Background(), history.CategoryPulse)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed scan must not enter the history")
}

func TestMarketScan_RecordsHistoryAndLog(t *testing.T) {
	scanner := &fakeScanner{wins: []intel.AccountWin{{Agency: "Ogilvy"}}}
	scans := &fakeScanLog{}
	uc := newIntelUseCase(t, scanner, scans, &fakeBriefingRepo{})

	wins, err := uc.MarketScan(context.Background(), "Nike", "Japan", "Digital")
	require.NoError(t, err)
	require.Len(t, wins, 1)
	assert.Equal(t, []string{"Nike / Japan / Digital"}, scans.queries)

	entries, err := uc.History(context.Background(), history.CategoryPulse)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Nike", entries[0].Client)
}

func TestMarketScan_UnfilteredPulseNotRecorded(t *testing.T) {
	scanner := &fakeScanner{wins: []intel.AccountWin{{Agency: "Ogilvy"}}}
	scans := &fakeScanLog{}
	uc := newIntelUseCase(t, scanner, scans, &fakeBriefingRepo{})

	_, err := uc.MarketScan(context.Background(), "", "", intel.AllMedia)
	require.NoError(t, err)
	assert.Equal(t, []string{"weekly pulse"}, scans.queries)

	entries, err := uc.History(context.Background(), history.CategoryPulse)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarketScan_LogFailureIsSwallowed(t *testing.T) {
	scanner := &fakeScanner{wins: []intel.AccountWin{{Agency: "Ogilvy"}}}
	uc := newIntelUseCase(t, scanner, &fakeScanLog{saveErr: errors.New("db down")}, &fakeBriefingRepo{})

	wins, err := uc.MarketScan(context.Background(), "Nike", "", "")
	require.NoError(t, err)
	assert.Len(t, wins, 1)
}

func TestLeadership_EmptyResultNotRecorded(t *testing.T) {
	uc := newIntelUseCase(t, &fakeScanner{}, &fakeScanLog{}, &fakeBriefingRepo{})

	got := uc.Leadership(context.Background(), "CMO", "Dentsu", "Japan")
	assert.Empty(t, got)

	entries, err := uc.History(context.Background(), history.CategoryLeadership)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMasterSearch_RecordsQuery(t *testing.T) {
	scanner := &fakeScanner{report: &intel.MasterReport{Query: "Ogilvy", Summary: "s"}}
	uc := newIntelUseCase(t, scanner, &fakeScanLog{}, &fakeBriefingRepo{})

	report, err := uc.MasterSearch(context.Background(), "Ogilvy")
	require.NoError(t, err)
	assert.Equal(t, "Ogilvy", report.Query)

	entries, err := uc.History(context.Background(), history.CategoryMaster)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ogilvy", entries[0].Query)
	assert.WithinDuration(t, time.Now(), entries[0].Timestamp, time.Minute)
}
