// Package executor performs the effects returned by the reducer and turns
// their outcomes back into events.
package executor

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hatut/internal/debuglog"
	"github.com/pders01/hatut/internal/source"
	"github.com/pders01/hatut/internal/state"
)

var errNoSource = errors.New("no story source configured")

type Executor struct {
	source  source.Source
	timeout time.Duration
}

// New returns an executor fetching from src. A non-positive timeout leaves
// fetches bounded only by the source itself.
func New(src source.Source, timeout time.Duration) *Executor {
	return &Executor{source: src, timeout: timeout}
}

// Run translates effects into one command. It returns nil for no effects.
func (e *Executor) Run(effects []state.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		if cmd := e.command(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (e *Executor) command(eff state.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case state.Fetch:
		return e.fetch(eff)
	case state.Schedule:
		return schedule(eff)
	default:
		debuglog.Warnf("executor: unknown effect %T", eff)
		return nil
	}
}

func (e *Executor) fetch(eff state.Fetch) tea.Cmd {
	return func() tea.Msg {
		log := debuglog.WithFields(map[string]interface{}{
			"component":  "executor",
			"filter":     eff.Filter,
			"generation": eff.Generation,
		})

		if e.source == nil {
			return state.RetrievalFailed{Generation: eff.Generation, Err: errNoSource}
		}

		ctx := context.Background()
		if e.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, e.timeout)
			defer cancel()
		}

		start := time.Now()
		entries, err := e.source.Stories(ctx, eff.Filter)
		if err != nil {
			log.Warnf("fetch failed after %v: %v", time.Since(start), err)
			return state.RetrievalFailed{Generation: eff.Generation, Err: err}
		}

		log.Debugf("fetch finished with %d stories in %v", len(entries), time.Since(start))
		return state.RetrievalCompleted{Generation: eff.Generation, Entries: entries}
	}
}

func schedule(eff state.Schedule) tea.Cmd {
	epoch := eff.Epoch
	return tea.Tick(eff.Delay, func(time.Time) tea.Msg {
		return state.Tick{Epoch: epoch}
	})
}
