package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seenStories(t *testing.T, pairs map[string]bool, order ...string) Stories {
	t.Helper()
	s := Stories{}
	for _, id := range order {
		seen, ok := pairs[id]
		require.True(t, ok, "missing seen flag for %s", id)
		s = s.With(id, Story{Title: "title " + id, Author: "author " + id, Seen: seen})
	}
	return s
}

func TestMerge_Scenario(t *testing.T) {
	prev := seenStories(t, map[string]bool{"112": false, "113": true}, "112", "113")

	got := Merge(prev, []Entry{
		{ID: "112", Title: "The Ocean is Sinking", Author: "Kat Stropher"},
		{ID: "114", Title: "Family friendly fun at the ocean exhibit", Author: "Guy Prosales"},
	})

	assert.Equal(t, []string{"112", "114"}, got.IDs())
	assert.False(t, got.Has("113"))

	st, ok := got.Get("112")
	require.True(t, ok)
	assert.False(t, st.Seen)
	assert.Equal(t, "The Ocean is Sinking", st.Title)

	st, ok = got.Get("114")
	require.True(t, ok)
	assert.False(t, st.Seen)
}

func TestMerge_SeenFlags(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	// Every combination of prior state (absent, seen, unseen) and fresh membership.
	for prevMask := 0; prevMask < 81; prevMask++ {
		for freshMask := 0; freshMask < 1<<len(ids); freshMask++ {
			prev := Stories{}
			var fresh []Entry
			digits := prevMask
			for i, id := range ids {
				switch digits % 3 {
				case 1:
					prev = prev.With(id, Story{Seen: true})
				case 2:
					prev = prev.With(id, Story{Seen: false})
				}
				digits /= 3
				if (freshMask>>i)&1 == 1 {
					fresh = append(fresh, Entry{ID: id})
				}
			}

			got := Merge(prev, fresh)

			t.Run(fmt.Sprintf("prev_%d_fresh_%d", prevMask, freshMask), func(t *testing.T) {
				assert.Equal(t, len(fresh), got.Len())
				for _, e := range fresh {
					st, ok := got.Get(e.ID)
					require.True(t, ok, "fresh id %s must survive", e.ID)
					old, had := prev.Get(e.ID)
					assert.Equal(t, had && old.Seen, st.Seen, "seen flag of %s", e.ID)
				}
				for _, id := range prev.IDs() {
					inFresh := false
					for _, e := range fresh {
						inFresh = inFresh || e.ID == id
					}
					assert.Equal(t, inFresh, got.Has(id), "membership of %s", id)
				}
			})
		}
	}
}

func TestMerge_PayloadOrder(t *testing.T) {
	got := Merge(Stories{}, []Entry{{ID: "9"}, {ID: "10"}, {ID: "1"}})
	assert.Equal(t, []string{"9", "10", "1"}, got.IDs())
}

func TestMerge_DuplicateIDs(t *testing.T) {
	got := Merge(Stories{}, []Entry{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "other"},
		{ID: "1", Title: "second"},
	})
	assert.Equal(t, []string{"1", "2"}, got.IDs())
	st, _ := got.Get("1")
	assert.Equal(t, "second", st.Title)
}

func TestStories_WithLeavesReceiverUntouched(t *testing.T) {
	base := NewStories(Entry{ID: "1", Title: "one"})

	changed := base.With("1", Story{Title: "one", Seen: true})
	added := base.With("2", Story{Title: "two"})

	st, _ := base.Get("1")
	assert.False(t, st.Seen)
	assert.Equal(t, 1, base.Len())

	st, _ = changed.Get("1")
	assert.True(t, st.Seen)
	assert.Equal(t, []string{"1", "2"}, added.IDs())
}

func TestStories_IDsReturnsCopy(t *testing.T) {
	s := NewStories(Entry{ID: "1"}, Entry{ID: "2"})
	ids := s.IDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"1", "2"}, s.IDs())
}

func TestStories_Unread(t *testing.T) {
	s := NewStories(Entry{ID: "1"}, Entry{ID: "2"}, Entry{ID: "3"})
	s = s.With("2", Story{Seen: true})
	assert.Equal(t, 2, s.Unread())

	var visited []string
	s.Each(func(id string, _ Story) { visited = append(visited, id) })
	assert.Equal(t, []string{"1", "2", "3"}, visited)
}
