package state

import "time"

// Event is anything the runtime feeds into the reducer.
type Event interface {
	isEvent()
}

// RequestRefetch asks for a fresh story collection for the current filter.
type RequestRefetch struct{}

// BeginEditFilter switches the filter into editing mode.
type BeginEditFilter struct{}

// ConfirmEditFilter leaves editing mode and refetches.
type ConfirmEditFilter struct{}

// SetFilterWord replaces the working filter text.
type SetFilterWord struct {
	Word string
}

// SelectStory opens a story for reading.
type SelectStory struct {
	ID string
}

// ToggleAutoUpdate flips periodic refreshing on or off.
type ToggleAutoUpdate struct{}

// RetrievalCompleted carries the result of a Fetch effect.
type RetrievalCompleted struct {
	Generation uint64
	Entries    []Entry
}

// RetrievalFailed reports a Fetch effect that did not produce a payload.
type RetrievalFailed struct {
	Generation uint64
	Err        error
}

// Tick is delivered when a Schedule effect fires.
type Tick struct {
	Epoch uint64
}

func (RequestRefetch) isEvent()     {}
func (BeginEditFilter) isEvent()    {}
func (ConfirmEditFilter) isEvent()  {}
func (SetFilterWord) isEvent()      {}
func (SelectStory) isEvent()        {}
func (ToggleAutoUpdate) isEvent()   {}
func (RetrievalCompleted) isEvent() {}
func (RetrievalFailed) isEvent()    {}
func (Tick) isEvent()               {}

// Effect is a declarative description of I/O for the executor to perform.
type Effect interface {
	isEffect()
}

// Fetch retrieves the collection selected by Filter (already lower-cased).
type Fetch struct {
	Filter     string
	Generation uint64
}

// Schedule delivers Tick{Epoch} after Delay.
type Schedule struct {
	Delay time.Duration
	Epoch uint64
}

func (Fetch) isEffect()    {}
func (Schedule) isEffect() {}
