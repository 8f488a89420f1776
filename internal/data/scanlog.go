package data

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/rocketinsights/market_radar/internal/intel"
	"github.com/rocketinsights/market_radar/internal/usecase"
)

type scanLogRepo struct {
	data *Data
	log  *log.Helper
}

// NewScanLogRepo returns the Postgres scan-log repository.
func NewScanLogRepo(data *Data, logger log.Logger) usecase.ScanLogRepo {
	return &scanLogRepo{data: data, log: log.NewHelper(logger)}
}

func (r *scanLogRepo) SaveScan(ctx context.Context, query string, wins []intel.AccountWin) error {
	if wins == nil {
		wins = []intel.AccountWin{}
	}
	raw, err := json.Marshal(wins)
	if err != nil {
		return err
	}
	_, err = r.data.db.ExecContext(ctx,
		`INSERT INTO scan_log (query, results) VALUES ($1, $2)`, query, raw)
	return err
}

// LatestScan returns the results of the most recent logged scan, or an empty
// slice when nothing has been logged yet.
func (r *scanLogRepo) LatestScan(ctx context.Context) ([]intel.AccountWin, error) {
	var raw []byte
	err := r.data.db.QueryRowContext(ctx,
		`SELECT results FROM scan_log ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return []intel.AccountWin{}, nil
	}
	if err != nil {
		return nil, err
	}

	var wins []intel.AccountWin
	if err := json.Unmarshal(raw, &wins); err != nil {
		r.log.Warnf("discarding unreadable scan results: %v", err)
		return []intel.AccountWin{}, nil
	}
	return wins, nil
}

func (r *scanLogRepo) ListScans(ctx context.Context, limit int) ([]*usecase.ScanRecord, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, query, results, created_at FROM scan_log ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*usecase.ScanRecord
	for rows.Next() {
		var (
			rec usecase.ScanRecord
			raw []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Query, &raw, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &rec.Results); err != nil {
			r.log.Warnf("discarding unreadable results for scan %d: %v", rec.ID, err)
			rec.Results = []intel.AccountWin{}
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
