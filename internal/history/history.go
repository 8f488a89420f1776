// Package history keeps bounded, most-recent-first lists of prior search
// parameters, one list per search category, persisted as a JSON array under a
// fixed Redis key.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
)

// Search categories with a recency list.
const (
	CategoryMaster     = "master"
	CategoryPulse      = "pulse"
	CategoryLeadership = "leadership"
)

// MaxEntries bounds each list; the oldest entry is evicted first.
const MaxEntries = 5

var keys = map[string]string{
	CategoryMaster:     "rocket_master_history",
	CategoryPulse:      "rocket_pulse_history",
	CategoryLeadership: "rocket_leadership_history",
}

// ErrUnknownCategory is returned for a category without a recency list.
var ErrUnknownCategory = errors.New("unknown history category")

// Entry is one recorded search. Which fields are significant depends on the
// category; Timestamp never participates in equality.
type Entry struct {
	Query     string    `json:"query,omitempty"`   // master
	Client    string    `json:"client,omitempty"`  // pulse
	Country   string    `json:"country,omitempty"` // pulse, leadership
	Media     string    `json:"media,omitempty"`   // pulse
	Role      string    `json:"role,omitempty"`    // leadership
	Company   string    `json:"company,omitempty"` // leadership
	Timestamp time.Time `json:"timestamp"`
}

// dedupKey folds the significant fields of an entry. Free-text fields compare
// case-insensitively; the media and role selections are fixed option values
// and compare verbatim.
func (e Entry) dedupKey(category string) string {
	switch category {
	case CategoryPulse:
		return strings.ToLower(e.Client) + "|" + strings.ToLower(e.Country) + "|" + e.Media
	case CategoryLeadership:
		return e.Role + "|" + strings.ToLower(e.Company) + "|" + strings.ToLower(e.Country)
	default:
		return strings.ToLower(e.Query)
	}
}

// Store persists the recency lists.
type Store struct {
	rdb *redis.Client
	log *log.Helper
}

// NewStore wraps a Redis client.
func NewStore(rdb *redis.Client, logger log.Logger) *Store {
	return &Store{rdb: rdb, log: log.NewHelper(logger)}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// List returns the recency list for a category, most recent first. A missing
// or unreadable stored value yields an empty list, not an error.
func (s *Store) List(ctx context.Context, category string) ([]Entry, error) {
	key, ok := keys[category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warnf("discarding unreadable history for %s: %v", key, err)
		return []Entry{}, nil
	}
	return entries, nil
}

// Record inserts an entry at the front of a category's list and persists the
// result. A duplicate (by significant fields, case-insensitive) is promoted
// to the front with the new timestamp; the list never exceeds MaxEntries.
func (s *Store) Record(ctx context.Context, category string, e Entry) ([]Entry, error) {
	key, ok := keys[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	current, err := s.List(ctx, category)
	if err != nil {
		return nil, err
	}

	next := make([]Entry, 0, len(current)+1)
	next = append(next, e)
	for _, old := range current {
		if old.dedupKey(category) == e.dedupKey(category) {
			continue
		}
		next = append(next, old)
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear drops all three recency lists.
func (s *Store) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, keys[CategoryMaster], keys[CategoryPulse], keys[CategoryLeadership]).Err()
}
