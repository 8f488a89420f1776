package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/rocketinsights/market_radar/internal/usecase"
)

type subscriberRepo struct {
	data *Data
	log  *log.Helper
}

// NewSubscriberRepo returns the Postgres subscriber repository.
func NewSubscriberRepo(data *Data, logger log.Logger) usecase.SubscriberRepo {
	return &subscriberRepo{data: data, log: log.NewHelper(logger)}
}

// Upsert inserts or refreshes a subscriber keyed by lowercased email. An
// existing elevated role is preserved; re-subscribing never demotes.
func (r *subscriberRepo) Upsert(ctx context.Context, s *usecase.Subscriber) error {
	_, err := r.data.db.ExecContext(ctx, `
		INSERT INTO subscribers (email, role, regions, topics, is_subscribed, consent_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			role = CASE WHEN EXCLUDED.role = 'super_admin' THEN EXCLUDED.role ELSE subscribers.role END,
			regions = EXCLUDED.regions,
			topics = EXCLUDED.topics,
			is_subscribed = EXCLUDED.is_subscribed,
			consent_date = EXCLUDED.consent_date,
			updated_at = NOW()`,
		strings.ToLower(s.Email), s.Role, pq.Array(s.Regions), pq.Array(s.Topics), s.IsSubscribed, s.ConsentDate)
	return err
}

func (r *subscriberRepo) FetchByEmail(ctx context.Context, email string) (*usecase.Subscriber, error) {
	row := r.data.db.QueryRowContext(ctx, `
		SELECT email, role, regions, topics, is_subscribed, consent_date, created_at, updated_at
		FROM subscribers WHERE email = $1`, strings.ToLower(email))

	s, err := scanSubscriber(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("SUBSCRIBER_NOT_FOUND", "no subscriber with email "+email)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subscriberRepo) Delete(ctx context.Context, email string) error {
	_, err := r.data.db.ExecContext(ctx, `DELETE FROM subscribers WHERE email = $1`, strings.ToLower(email))
	return err
}

func (r *subscriberRepo) List(ctx context.Context) ([]*usecase.Subscriber, error) {
	rows, err := r.data.db.QueryContext(ctx, `
		SELECT email, role, regions, topics, is_subscribed, consent_date, created_at, updated_at
		FROM subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*usecase.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *subscriberRepo) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	_, err := r.data.db.ExecContext(ctx,
		`UPDATE subscribers SET is_subscribed = $2, updated_at = NOW() WHERE email = $1`,
		strings.ToLower(email), subscribed)
	return err
}

func (r *subscriberRepo) SetRole(ctx context.Context, email, role string) error {
	res, err := r.data.db.ExecContext(ctx,
		`UPDATE subscribers SET role = $2, updated_at = NOW() WHERE email = $1`,
		strings.ToLower(email), role)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NotFound("SUBSCRIBER_NOT_FOUND", "no subscriber with email "+email)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row rowScanner) (*usecase.Subscriber, error) {
	var (
		s       usecase.Subscriber
		regions pq.StringArray
		topics  pq.StringArray
		consent sql.NullTime
	)
	if err := row.Scan(&s.Email, &s.Role, &regions, &topics, &s.IsSubscribed, &consent, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Regions = []string(regions)
	s.Topics = []string(topics)
	if consent.Valid {
		t := consent.Time.UTC()
		s.ConsentDate = &t
	}
	return &s, nil
}
