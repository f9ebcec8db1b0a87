// Package state holds the application state of the story reader and the
// pure reducer that moves it from one value to the next.
package state

import (
	"strings"
	"time"
)

// DefaultRefreshInterval is the auto-update cadence.
const DefaultRefreshInterval = 5 * time.Second

// State is the whole application state. It is a value: every transition
// yields a new State and the previous one stays valid.
type State struct {
	Filter        string
	EditingFilter bool
	AutoUpdate    bool
	Reading       string
	Fetching      bool
	Stories       Stories

	// Generation identifies the latest requested retrieval.
	Generation uint64
	// TickEpoch identifies the armed auto-update timer chain.
	TickEpoch uint64
	// Err is the last retrieval failure, nil after a successful one.
	Err error
}

// HasReading reports whether a story is open.
func (s State) HasReading() bool { return s.Reading != "" }

// Open returns the story being read, if any.
func (s State) Open() (Story, bool) {
	if !s.HasReading() {
		return Story{}, false
	}
	return s.Stories.Get(s.Reading)
}

// Reducer applies events to states. Its only configuration is the
// auto-update cadence; it holds no mutable data.
type Reducer struct {
	Interval time.Duration
}

// NewReducer returns a reducer ticking at interval, or at
// DefaultRefreshInterval when interval is not positive.
func NewReducer(interval time.Duration) Reducer {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return Reducer{Interval: interval}
}

// Init returns the startup state with the first retrieval already pending.
func (r Reducer) Init(filter string) (State, []Effect) {
	return refetch(State{Filter: filter})
}

// Reduce computes the state following ev together with the effects the
// transition declares. It never fails.
func (r Reducer) Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case RequestRefetch:
		return refetch(s)

	case BeginEditFilter:
		s.EditingFilter = true
		return s, nil

	case SetFilterWord:
		s.Filter = ev.Word
		return s, nil

	case ConfirmEditFilter:
		s.EditingFilter = false
		return refetch(s)

	case SelectStory:
		return selectStory(s, ev.ID), nil

	case ToggleAutoUpdate:
		s.AutoUpdate = !s.AutoUpdate
		s.TickEpoch++
		if !s.AutoUpdate {
			return s, nil
		}
		return s, []Effect{r.schedule(s)}

	case Tick:
		if !s.AutoUpdate || ev.Epoch != s.TickEpoch {
			return s, nil
		}
		next, effects := refetch(s)
		return next, append(effects, r.schedule(next))

	case RetrievalCompleted:
		if ev.Generation != s.Generation {
			return s, nil
		}
		s.Stories = Merge(s.Stories, ev.Entries)
		if !s.Stories.Has(s.Reading) {
			s.Reading = ""
		}
		s.Fetching = false
		s.Err = nil
		return s, nil

	case RetrievalFailed:
		if ev.Generation != s.Generation {
			return s, nil
		}
		s.Fetching = false
		s.Err = ev.Err
		return s, nil
	}
	return s, nil
}

func (r Reducer) schedule(s State) Effect {
	return Schedule{Delay: r.Interval, Epoch: s.TickEpoch}
}

func refetch(s State) (State, []Effect) {
	s.Fetching = true
	s.Generation++
	return s, []Effect{Fetch{
		Filter:     strings.ToLower(s.Filter),
		Generation: s.Generation,
	}}
}

func selectStory(s State, id string) State {
	s.Reading = id
	if st, ok := s.Stories.Get(id); ok && !st.Seen {
		st.Seen = true
		s.Stories = s.Stories.With(id, st)
	}
	return s
}
