package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hatut/internal/source"
	"github.com/pders01/hatut/internal/state"
)

type stubSource struct {
	entries []state.Entry
	err     error
	block   bool
	filters []string
}

func (s *stubSource) Stories(ctx context.Context, filter string) ([]state.Entry, error) {
	s.filters = append(s.filters, filter)
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.entries, s.err
}

func TestRun_NoEffects(t *testing.T) {
	assert.Nil(t, New(&stubSource{}, time.Second).Run(nil))
}

func TestRun_FetchCompleted(t *testing.T) {
	src := &stubSource{entries: []state.Entry{{ID: "112", Title: "The Ocean is Sinking"}}}
	cmd := New(src, time.Second).Run([]state.Effect{state.Fetch{Filter: "ocean", Generation: 4}})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, state.RetrievalCompleted{Generation: 4, Entries: src.entries}, msg)
	assert.Equal(t, []string{"ocean"}, src.filters)
}

func TestRun_FetchFailed(t *testing.T) {
	boom := errors.New("boom")
	cmd := New(&stubSource{err: boom}, time.Second).Run([]state.Effect{state.Fetch{Filter: "ocean", Generation: 2}})

	msg, ok := cmd().(state.RetrievalFailed)
	require.True(t, ok)
	assert.Equal(t, uint64(2), msg.Generation)
	assert.ErrorIs(t, msg.Err, boom)
}

func TestRun_FetchTimeout(t *testing.T) {
	cmd := New(&stubSource{block: true}, 10*time.Millisecond).Run([]state.Effect{state.Fetch{Filter: "ocean", Generation: 1}})

	msg, ok := cmd().(state.RetrievalFailed)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, context.DeadlineExceeded)
}

func TestRun_NilSource(t *testing.T) {
	var src source.Source
	cmd := New(src, time.Second).Run([]state.Effect{state.Fetch{Filter: "ocean", Generation: 1}})

	msg, ok := cmd().(state.RetrievalFailed)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, errNoSource)
}

func TestRun_Schedule(t *testing.T) {
	cmd := New(nil, 0).Run([]state.Effect{state.Schedule{Delay: time.Millisecond, Epoch: 7}})
	require.NotNil(t, cmd)
	assert.Equal(t, state.Tick{Epoch: 7}, cmd())
}

func TestRun_BatchesMultipleEffects(t *testing.T) {
	src := &stubSource{entries: []state.Entry{}}
	cmd := New(src, time.Second).Run([]state.Effect{
		state.Fetch{Filter: "reef", Generation: 3},
		state.Schedule{Delay: time.Millisecond, Epoch: 1},
	})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, c())
	}
	assert.Contains(t, msgs, state.RetrievalCompleted{Generation: 3, Entries: src.entries})
	assert.Contains(t, msgs, state.Tick{Epoch: 1})
}
