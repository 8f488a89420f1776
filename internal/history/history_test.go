package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, log.DefaultLogger)
}

func TestRecord_DuplicateIsPromotedNotAppended(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	_, err := s.Record(ctx, CategoryMaster, Entry{Query: "Ogilvy", Timestamp: first})
	require.NoError(t, err)
	_, err = s.Record(ctx, CategoryMaster, Entry{Query: "Dentsu", Timestamp: first})
	require.NoError(t, err)

	got, err := s.Record(ctx, CategoryMaster, Entry{Query: "OGILVY", Timestamp: second})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "OGILVY", got[0].Query)
	assert.True(t, got[0].Timestamp.Equal(second))
	assert.Equal(t, "Dentsu", got[1].Query)
}

func TestRecord_EvictsOldestBeyondCap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := s.Record(ctx, CategoryMaster, Entry{Query: fmt.Sprintf("query-%d", i)})
		require.NoError(t, err)
	}

	got, err := s.List(ctx, CategoryMaster)
	require.NoError(t, err)
	require.Len(t, got, MaxEntries)
	assert.Equal(t, "query-5", got[0].Query)
	for _, e := range got {
		assert.NotEqual(t, "query-0", e.Query, "oldest entry should have been evicted")
	}
}

func TestRecord_PulseSignificantFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, CategoryPulse, Entry{Client: "Nike", Country: "Japan", Media: "Digital"})
	require.NoError(t, err)

	// Same client/country in different case dedups; a different media
	// selection does not.
	got, err := s.Record(ctx, CategoryPulse, Entry{Client: "NIKE", Country: "japan", Media: "Digital"})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Record(ctx, CategoryPulse, Entry{Client: "Nike", Country: "Japan", Media: "Creative"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestList_MissingKeyYieldsEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List(context.Background(), CategoryLeadership)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_CorruptValueYieldsEmpty(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	require.NoError(t, mr.Set("rocket_master_history", "{not json"))

	s := NewStore(rdb, log.DefaultLogger)
	got, err := s.List(context.Background(), CategoryMaster)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnknownCategory(t *testing.T) {
	s := newTestStore(t)
	_, err := s.List(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = s.Record(context.Background(), "bogus", Entry{})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestClear_RemovesAllCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, CategoryMaster, Entry{Query: "q"})
	require.NoError(t, err)
	_, err = s.Record(ctx, CategoryLeadership, Entry{Role: "CMO", Company: "Dentsu"})
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))

	for _, cat := range []string{CategoryMaster, CategoryPulse, CategoryLeadership} {
		got, err := s.List(ctx, cat)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}
