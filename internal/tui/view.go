package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hatut/internal/state"
)

func (a *App) View() string {
	list := lipgloss.NewStyle().
		Width(a.listWidth()).
		Height(a.bodyHeight()).
		MaxHeight(a.bodyHeight()).
		Render(a.renderList())

	divider := strings.TrimSuffix(strings.Repeat(SeparatorStyle.Render("│")+"\n", a.bodyHeight()), "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " "+divider+" ", a.renderDetail())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.renderFilterBar(),
		renderSeparator(a.width),
		body,
		renderSeparator(a.width),
		a.renderStatusBar(),
		a.renderHelpLine(),
	)
}

func (a *App) renderFilterBar() string {
	label := HeaderStyle.Render(CompactLogo) + " Filter: "
	if a.state.EditingFilter {
		return label + a.input.View() + " [✓]"
	}
	return label + FilterWordStyle.Render(a.state.Filter) + " [✎]"
}

func (a *App) renderList() string {
	if a.state.Stories.Len() == 0 {
		msg := MsgNoStories
		if a.state.Fetching {
			msg = MsgFetching
		}
		return renderCentered(a.listWidth(), a.bodyHeight(), renderMuted(msg))
	}

	ids := a.state.Stories.IDs()
	end := min(len(ids), a.offset+a.visibleStories())
	rows := make([]string, 0, 2*(end-a.offset))
	for i := a.offset; i < end; i++ {
		story, _ := a.state.Stories.Get(ids[i])
		rows = append(rows, a.renderStoryRow(ids[i], story, i == a.cursor)...)
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderStoryRow(id string, story state.Story, underCursor bool) []string {
	width := a.listWidth() - 4

	marker := "  "
	if !story.Seen {
		marker = UnreadItemStyle.Render("● ")
	}
	pointer := "  "
	if underCursor {
		pointer = CursorStyle.Render("› ")
	}

	style := ReadItemStyle
	switch {
	case id == a.state.Reading:
		style = ReadingItemStyle
	case !story.Seen:
		style = UnreadItemStyle
	}

	title := emphasize(a.state.Filter, truncateEnd(story.Title, width), style)
	author := AuthorStyle.Render(truncateEnd(story.Author, width))
	return []string{pointer + marker + title, "    " + author}
}

func (a *App) renderDetail() string {
	width := a.detailWidth()
	if !a.state.HasReading() {
		return renderCentered(width, a.bodyHeight(), renderHelp(MsgNoneOpen))
	}
	if _, ok := a.state.Open(); !ok {
		return renderCentered(width, a.bodyHeight(), renderMuted(MsgNoStories))
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxHeight(a.bodyHeight()).
		Render(a.viewport.View())
}

func (a *App) renderStatusBar() string {
	var left string
	kind := StatusInfo
	switch {
	case a.state.Fetching:
		left = a.spinner.View() + " " + MsgFetching
	case a.state.Err != nil:
		left = MsgFetchFailed(a.state.Err)
		kind = StatusError
	case a.renderErr != nil:
		left = MsgFetchFailed(a.renderErr)
		kind = StatusWarn
	default:
		left = MsgStoryCount(a.state.Stories.Len(), a.state.Stories.Unread())
	}

	right := renderCheckbox("Auto update:", a.state.AutoUpdate)
	src := renderMuted(truncateMiddle(a.sourceLabel, max(8, a.width/3)))

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(src) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return " " + kind.style().Render(left) + strings.Repeat(" ", gap) + src + "  " + right
}

func (a *App) renderHelpLine() string {
	if a.state.EditingFilter {
		return " " + a.help.ShortHelpView(a.keys.editingHelp())
	}
	return " " + a.help.View(a.keys)
}
