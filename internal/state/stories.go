package state

// Story is one content item with its local read status.
type Story struct {
	Title  string
	Author string
	Seen   bool
}

// Entry is a single record of a retrieval payload. Sources know nothing
// about read status, so an Entry carries content only.
type Entry struct {
	ID     string
	Title  string
	Author string
}

// Stories is an ordered, immutable mapping from story id to Story.
// The zero value is an empty collection. Writers return a new value and
// leave the receiver untouched.
type Stories struct {
	ids  []string
	byID map[string]Story
}

// NewStories builds a collection from entries in the given order, all unseen.
func NewStories(entries ...Entry) Stories {
	return Merge(Stories{}, entries)
}

// Len returns the number of stories.
func (s Stories) Len() int { return len(s.ids) }

// Get looks up a story by id.
func (s Stories) Get(id string) (Story, bool) {
	st, ok := s.byID[id]
	return st, ok
}

// Has reports whether id is present.
func (s Stories) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// IDs returns the story ids in iteration order.
func (s Stories) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Each calls fn for every story in iteration order.
func (s Stories) Each(fn func(id string, st Story)) {
	for _, id := range s.ids {
		fn(id, s.byID[id])
	}
}

// Unread counts stories that were never opened.
func (s Stories) Unread() int {
	n := 0
	for _, st := range s.byID {
		if !st.Seen {
			n++
		}
	}
	return n
}

// With returns a copy of s where id maps to st. A new id is appended.
func (s Stories) With(id string, st Story) Stories {
	out := Stories{
		ids:  s.ids,
		byID: make(map[string]Story, len(s.byID)+1),
	}
	for k, v := range s.byID {
		out.byID[k] = v
	}
	if _, ok := s.byID[id]; !ok {
		out.ids = append(append(make([]string, 0, len(s.ids)+1), s.ids...), id)
	}
	out.byID[id] = st
	return out
}

// Merge reconciles a fresh retrieval with the previous collection.
//
// Every id in fresh is kept, in payload order; ids missing from fresh are
// dropped. A story is seen only if prev already had it marked seen. For a
// duplicated id the last record wins but the first position is kept.
func Merge(prev Stories, fresh []Entry) Stories {
	out := Stories{byID: make(map[string]Story, len(fresh))}
	for _, e := range fresh {
		if _, dup := out.byID[e.ID]; !dup {
			out.ids = append(out.ids, e.ID)
		}
		old, ok := prev.byID[e.ID]
		out.byID[e.ID] = Story{
			Title:  e.Title,
			Author: e.Author,
			Seen:   ok && old.Seen,
		}
	}
	return out
}
