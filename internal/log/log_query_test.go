package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNotOpen(t *testing.T) {
	useTempDB(t)
	_, err := Find(Query{})
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = Prune(time.Now(), true)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestFind(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	now := time.Now().UnixMilli()
	SetProject("/p/one")
	Log(Entry{Source: "hooks:apply", Action: "filter", Tag: "greet", Callbacks: 2, Start: now - 3000, End: now - 3000, Success: true,
		Detail: map[string]any{"k": "v"}})
	Log(Entry{Source: "hooks:do", Action: "action", Tag: "init", Start: now - 2000, End: now - 2000, Error: "boom"})
	Log(Entry{Source: "mcp:wphooks_list", Action: "list", Start: now - 1000, End: now - 1000, Success: true})
	SetProject("/p/two")
	Log(Entry{Source: "hooks:apply", Action: "filter", Tag: "greet", Start: now, End: now, Success: true})

	t.Run("current project newest first", func(t *testing.T) {
		records, err := Find(Query{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "hooks:apply", records[0].Source)
	})

	SetProject("/p/one")

	t.Run("all projects", func(t *testing.T) {
		records, err := Find(Query{AllProjects: true})
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, now, records[0].Start)
		assert.Equal(t, now-3000, records[3].Start)
	})

	t.Run("fields read back", func(t *testing.T) {
		records, err := Find(Query{Tag: "greet"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "filter", r.Action)
		assert.Equal(t, 2, r.Callbacks)
		assert.True(t, r.Success)
		assert.Equal(t, "v", r.Detail["k"])
		assert.Equal(t, RunID(), r.Run)
		assert.Equal(t, hash("/p/one"), r.Project)
	})

	t.Run("source prefix", func(t *testing.T) {
		records, err := Find(Query{Source: "mcp:"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "list", records[0].Action)
		assert.Empty(t, records[0].Tag)
	})

	t.Run("failed only", func(t *testing.T) {
		records, err := Find(Query{FailedOnly: true})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "boom", records[0].Error)
		assert.False(t, records[0].Success)
	})

	t.Run("since and limit", func(t *testing.T) {
		records, err := Find(Query{Since: time.UnixMilli(now - 2500)})
		require.NoError(t, err)
		assert.Len(t, records, 2)

		records, err = Find(Query{Limit: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "mcp:wphooks_list", records[0].Source)
	})
}

func TestPrune(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())
	SetProject("/p")

	old := time.Now().Add(-48 * time.Hour).UnixMilli()
	Log(Entry{Source: "hooks:do", Action: "action", Start: old, End: old, Success: true})
	Log(Entry{Source: "hooks:do", Action: "action", Start: old, End: old, Success: true})
	Log(Entry{Source: "hooks:do", Action: "action", Start: time.Now().UnixMilli(), Success: true})

	cutoff := time.Now().Add(-24 * time.Hour)

	n, err := Prune(cutoff, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records, err := Find(Query{})
	require.NoError(t, err)
	assert.Len(t, records, 3, "dry run deletes nothing")

	n, err = Prune(cutoff, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records, err = Find(Query{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
