package data

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketinsights/market_radar/internal/intel"
)

func newBriefingRepoAt(data *Data, now time.Time) *briefingRepo {
	return &briefingRepo{data: data, log: log.NewHelper(log.DefaultLogger), now: func() time.Time { return now }}
}

func TestFreshBriefing_SameDayHit(t *testing.T) {
	data, mock := newMockData(t)
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	repo := newBriefingRepoAt(data, now)

	raw, _ := json.Marshal([]intel.NewsItem{{Headline: "cached"}})
	mock.ExpectQuery(`SELECT news, updated_at FROM briefings`).
		WithArgs("Singapore").
		WillReturnRows(sqlmock.NewRows([]string{"news", "updated_at"}).AddRow(raw, now.Add(-6*time.Hour)))

	got, err := repo.FreshBriefing(context.Background(), "Singapore")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cached", got[0].Headline)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFreshBriefing_StaleRowMisses(t *testing.T) {
	data, mock := newMockData(t)
	now := time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)
	repo := newBriefingRepoAt(data, now)

	raw, _ := json.Marshal([]intel.NewsItem{{Headline: "yesterday"}})
	mock.ExpectQuery(`SELECT news, updated_at FROM briefings`).
		WithArgs("Singapore").
		WillReturnRows(sqlmock.NewRows([]string{"news", "updated_at"}).AddRow(raw, now.Add(-2*time.Hour)))

	got, err := repo.FreshBriefing(context.Background(), "Singapore")
	require.NoError(t, err)
	assert.Nil(t, got, "a briefing from a previous day must not be served")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFreshBriefing_NoRowMisses(t *testing.T) {
	data, mock := newMockData(t)
	repo := newBriefingRepoAt(data, time.Now())

	mock.ExpectQuery(`SELECT news, updated_at FROM briefings`).
		WithArgs("Japan").
		WillReturnRows(sqlmock.NewRows([]string{"news", "updated_at"}))

	got, err := repo.FreshBriefing(context.Background(), "Japan")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
