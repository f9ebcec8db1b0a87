// Package tui runs the story reader on bubbletea. App owns the current
// state.State and feeds every key press and effect outcome through the
// reducer; rendering reads nothing but that state and the terminal size.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"github.com/pders01/hatut/internal/config"
	"github.com/pders01/hatut/internal/debuglog"
	"github.com/pders01/hatut/internal/executor"
	"github.com/pders01/hatut/internal/source"
	"github.com/pders01/hatut/internal/state"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// filter bar + separator above, separator + status + help below
	chromeHeight = 5
)

type App struct {
	config   *config.Config
	reducer  state.Reducer
	executor *executor.Executor
	keys     KeyMap

	state   state.State
	pending []state.Effect

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	sourceLabel string
	cursor      int
	offset      int
	spinning    bool
	width       int
	height      int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	rendered        renderedStory
	renderErr       error
}

// renderedStory identifies what the detail pane currently shows.
type renderedStory struct {
	id    string
	story state.Story
	width int
}

func NewApp(cfg *config.Config, src source.Source) *App {
	ti := textinput.New()
	ti.Placeholder = "filter word"
	ti.Prompt = ""
	ti.CharLimit = 64

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = CursorStyle

	reducer := state.NewReducer(cfg.App.RefreshInterval)
	initial, effects := reducer.Init(cfg.App.InitialFilter)

	app := &App{
		config:      cfg,
		reducer:     reducer,
		executor:    executor.New(src, cfg.Source.HTTPTimeout),
		keys:        NewKeyMap(cfg.Keys.Bindings),
		state:       initial,
		pending:     effects,
		input:       ti,
		spinner:     sp,
		viewport:    viewport.New(0, 0),
		help:        help.New(),
		sourceLabel: sourceLabel(cfg),
	}
	app.resize(defaultWidth, defaultHeight)
	return app
}

func sourceLabel(cfg *config.Config) string {
	switch cfg.Source.Mode {
	case config.SourceHTTP:
		return cfg.Source.BaseURL
	case config.SourceCatalog:
		return "catalog " + cfg.Catalog.Path
	default:
		return cfg.Source.Mode
	}
}

// State returns the current application state.
func (a *App) State() state.State { return a.state }

func (a *App) Init() tea.Cmd {
	effects := a.pending
	a.pending = nil
	return tea.Batch(a.executor.Run(effects), a.startSpinner())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case spinner.TickMsg:
		if !a.state.Fetching {
			a.spinning = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case state.Event:
		return a, a.dispatch(msg)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// dispatch runs ev through the reducer, brings the widgets in line with
// the new state and returns the commands for the resulting effects.
func (a *App) dispatch(ev state.Event) tea.Cmd {
	prev := a.state
	next, effects := a.reducer.Reduce(prev, ev)
	a.state = next

	debuglog.Debugf("event %T: fetching=%v generation=%d stories=%d", ev, next.Fetching, next.Generation, next.Stories.Len())

	cmds := []tea.Cmd{a.executor.Run(effects)}
	cmds = append(cmds, a.syncInput(prev))
	if next.Fetching {
		cmds = append(cmds, a.startSpinner())
	}
	a.clampCursor()
	a.syncDetail()
	return tea.Batch(cmds...)
}

func (a *App) syncInput(prev state.State) tea.Cmd {
	switch {
	case a.state.EditingFilter && !prev.EditingFilter:
		a.input.SetValue(a.state.Filter)
		a.input.CursorEnd()
		return a.input.Focus()
	case !a.state.EditingFilter && prev.EditingFilter:
		a.input.Blur()
	}
	return nil
}

func (a *App) startSpinner() tea.Cmd {
	if a.spinning || !a.state.Fetching {
		return nil
	}
	a.spinning = true
	return a.spinner.Tick
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	if a.state.EditingFilter {
		if key.Matches(msg, a.keys.Confirm) {
			return a.dispatch(state.ConfirmEditFilter{})
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		if word := a.input.Value(); word != a.state.Filter {
			return tea.Batch(cmd, a.dispatch(state.SetFilterWord{Word: word}))
		}
		return cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.EditFilter):
		return a.dispatch(state.BeginEditFilter{})
	case key.Matches(msg, a.keys.Confirm):
		if id, ok := a.highlighted(); ok {
			return a.dispatch(state.SelectStory{ID: id})
		}
		return nil
	case key.Matches(msg, a.keys.Refresh):
		return a.dispatch(state.RequestRefetch{})
	case key.Matches(msg, a.keys.AutoUpdate):
		return a.dispatch(state.ToggleAutoUpdate{})
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
		return nil
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
		return nil
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

// highlighted returns the id of the story under the cursor.
func (a *App) highlighted() (string, bool) {
	ids := a.state.Stories.IDs()
	if a.cursor < 0 || a.cursor >= len(ids) {
		return "", false
	}
	return ids[a.cursor], true
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := a.state.Stories.Len()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}

	visible := a.visibleStories()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+visible {
		a.offset = a.cursor - visible + 1
	}
	if a.offset > n-visible {
		a.offset = max(0, n-visible)
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	a.viewport.Width = a.detailWidth()
	a.viewport.Height = a.bodyHeight()
	a.input.Width = max(10, a.listWidth()-12)
	a.help.Width = width

	a.clampCursor()
	a.syncDetail()
}

func (a *App) bodyHeight() int {
	return max(2, a.height-chromeHeight)
}

// visibleStories is how many two-line list rows fit in the body.
func (a *App) visibleStories() int {
	return max(1, a.bodyHeight()/2)
}

func (a *App) listWidth() int {
	return max(24, a.width*2/5)
}

func (a *App) detailWidth() int {
	return max(10, a.width-a.listWidth()-3)
}

// syncDetail re-renders the detail pane when the open story or the pane
// width changed.
func (a *App) syncDetail() {
	story, ok := a.state.Open()
	want := renderedStory{width: a.detailWidth()}
	if ok {
		want.id = a.state.Reading
		want.story = story
	}
	// Seen does not show in the detail pane.
	want.story.Seen = false
	if want == a.rendered {
		return
	}
	a.rendered = want

	if !ok {
		a.renderErr = nil
		a.viewport.SetContent("")
		return
	}

	content, err := a.renderStory(story)
	a.renderErr = err
	if err != nil {
		debuglog.Errorf("%v", err)
		content = story.Title + "\n\n" + placeholderBody + "\n\n" + story.Author
	}
	a.viewport.SetContent(content)
	a.viewport.GotoTop()
}

// placeholderBody stands in for story text, which the collections do not carry.
const placeholderBody = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do " +
	"eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad " +
	"minim veniam, qui nostrud exercitation ullamco laboris nisi ut aliquip " +
	"ex ea commodo consequat."

func storyMarkdown(story state.Story) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(story.Title)
	b.WriteString("\n\n")
	b.WriteString(placeholderBody)
	b.WriteString("\n\n")
	if story.Author != "" {
		b.WriteString("*")
		b.WriteString(story.Author)
		b.WriteString("*\n")
	}
	return b.String()
}

func (a *App) renderStory(story state.Story) (string, error) {
	r, err := a.getRenderer()
	if err != nil {
		return "", wrapErr("initializing renderer", err)
	}
	out, err := r.Render(storyMarkdown(story))
	if err != nil {
		return "", wrapErr("rendering story", err)
	}
	return out, nil
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	detail := a.config.UI.Detail
	wordWrapWidth := a.detailWidth() - 2
	if detail.WordWrapMaxWidth > 0 && wordWrapWidth > detail.WordWrapMaxWidth {
		wordWrapWidth = detail.WordWrapMaxWidth
	}
	if wordWrapWidth < detail.WordWrapMinWidth {
		wordWrapWidth = detail.WordWrapMinWidth
	}
	if wordWrapWidth < 10 {
		wordWrapWidth = 10
	}

	style := detail.Style
	if style == "" {
		style = styles.AutoStyle
	}

	if a.glamourRenderer == nil || a.rendererWidth != wordWrapWidth {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}
