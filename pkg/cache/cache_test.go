package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-intake/pkg/schema"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	store, err := OpenInMemory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func sampleTemplates() []schema.Template {
	newer := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []schema.Template{
		{
			ID:             "ca-small-claims-sc100",
			Name:           "Small Claims Plaintiff's Claim",
			Jurisdiction:   schema.Jurisdiction{State: "CA"},
			Version:        "1.2.0",
			LastUpdated:    time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
			MCPLastUpdated: &newer,
			Sections: []schema.Section{
				{
					ID: "claim",
					Fields: []schema.Field{
						{ID: "claimAmount", Label: "Amount claimed", Type: schema.FieldTypeNumber},
					},
				},
			},
		},
	}
}

func caQuery() Query {
	return Query{State: "CA", County: "Alameda", Court: "superior", CaseType: "small-claims"}
}

// rawGet reports whether the key physically exists, bypassing TTL logic.
func rawGet(t *testing.T, store *Store, query Query) bool {
	t.Helper()

	err := store.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(query.Key())
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	want := sampleTemplates()

	require.NoError(t, store.Save(caQuery(), want))

	got, ok := store.Load(caQuery())
	require.True(t, ok, "expected a cache hit")
	require.Len(t, got, 1)
	require.Equal(t, want[0].ID, got[0].ID)
	require.True(t, got[0].LastUpdated.Equal(want[0].LastUpdated), "lastUpdated did not survive the round trip")
	require.NotNil(t, got[0].MCPLastUpdated)
	require.True(t, got[0].MCPLastUpdated.Equal(*want[0].MCPLastUpdated))
	require.Equal(t, want[0].Sections, got[0].Sections)
}

func TestLoadMissOnUnknownQuery(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	got, ok := store.Load(caQuery())
	require.False(t, ok)
	require.Nil(t, got)
}

func TestLoadHonorsTTLBoundary(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	store := openTestStore(t, WithClock(clock.Now))

	require.NoError(t, store.Save(caQuery(), sampleTemplates()))

	clock.Advance(23*time.Hour + 59*time.Minute)
	_, ok := store.Load(caQuery())
	require.True(t, ok, "entry must still load just inside the TTL")

	clock.Advance(2 * time.Minute)
	_, ok = store.Load(caQuery())
	require.False(t, ok, "entry must be absent just past the TTL")
	require.False(t, rawGet(t, store, caQuery()), "expired entry must be removed from storage")
}

func TestLoadEvictsStaleEntry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{current: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	store := openTestStore(t, WithClock(clock.Now))

	require.NoError(t, store.Save(caQuery(), sampleTemplates()))
	clock.Advance(25 * time.Hour)

	_, ok := store.Load(caQuery())
	require.False(t, ok)
	require.False(t, rawGet(t, store, caQuery()), "stale entry must be removed, not just skipped")
}

func TestLoadTreatsCorruptEntryAsMiss(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	query := caQuery()

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(query.Key(), []byte("{definitely not json"))
	})
	require.NoError(t, err)

	got, ok := store.Load(query)
	require.False(t, ok)
	require.Nil(t, got)
	require.False(t, rawGet(t, store, query), "corrupt entry must be evicted")
}

func TestLoadTreatsForeignShapeAsMiss(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	query := caQuery()

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(query.Key(), []byte(`[1, 2, 3]`))
	})
	require.NoError(t, err)

	_, ok := store.Load(query)
	require.False(t, ok)
}

func TestQueriesDoNotShareSlots(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	require.NoError(t, store.Save(caQuery(), sampleTemplates()))

	other := caQuery()
	other.County = "Kings"
	_, ok := store.Load(other)
	require.False(t, ok, "a different county must not hit the same slot")

	_, ok = store.Load(caQuery())
	require.True(t, ok, "the original query must still hit")
}

func TestQueryKeyNormalization(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	require.NoError(t, store.Save(Query{State: " CA ", CaseType: "Small-Claims"}, sampleTemplates()))

	_, ok := store.Load(Query{State: "ca", CaseType: "small-claims"})
	require.True(t, ok, "logically equal queries must share a slot")
}

func TestSaveReplacesPreviousEntry(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	first := sampleTemplates()
	second := sampleTemplates()
	second[0].Version = "1.3.0"

	require.NoError(t, store.Save(caQuery(), first))
	require.NoError(t, store.Save(caQuery(), second))

	got, ok := store.Load(caQuery())
	require.True(t, ok)
	require.Equal(t, "1.3.0", got[0].Version)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	require.NoError(t, store.Save(caQuery(), sampleTemplates()))
	require.NoError(t, store.Delete(caQuery()))

	_, ok := store.Load(caQuery())
	require.False(t, ok)
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{})
	require.Error(t, err)
}

func TestOpenPersistent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := Open(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, store.Save(caQuery(), sampleTemplates()))
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, reopened.Close())
	})

	_, ok := reopened.Load(caQuery())
	require.True(t, ok, "entry must survive a close and reopen")
}
