package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/rocketinsights/market_radar/internal/intel"
	"github.com/rocketinsights/market_radar/internal/usecase"
)

type briefingRepo struct {
	data *Data
	log  *log.Helper
	now  func() time.Time
}

// NewBriefingRepo returns the Postgres briefing cache.
func NewBriefingRepo(data *Data, logger log.Logger) usecase.BriefingRepo {
	return &briefingRepo{data: data, log: log.NewHelper(logger), now: time.Now}
}

func (r *briefingRepo) SaveBriefing(ctx context.Context, region string, items []intel.NewsItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.data.db.ExecContext(ctx, `
		INSERT INTO briefings (region, news, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (region) DO UPDATE SET news = EXCLUDED.news, updated_at = NOW()`,
		region, raw)
	return err
}

// FreshBriefing returns the cached briefing for a region when it was stored
// on the current UTC day, nil otherwise.
func (r *briefingRepo) FreshBriefing(ctx context.Context, region string) ([]intel.NewsItem, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := r.data.db.QueryRowContext(ctx,
		`SELECT news, updated_at FROM briefings WHERE region = $1`, region).Scan(&raw, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	today := r.now().UTC().Format(time.DateOnly)
	if updatedAt.UTC().Format(time.DateOnly) != today {
		return nil, nil
	}

	var items []intel.NewsItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.log.Warnf("discarding unreadable briefing for %s: %v", region, err)
		return nil, nil
	}
	return items, nil
}
