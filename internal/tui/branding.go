package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hatut/internal/config"
)

const AppName = "hatut"

// LogoLines is the block-letter logo shown in the banner.
var LogoLines = []string{
	"██  ██  ▄████▄  ██████ ██  ██ ██████",
	"██  ██ ██    ██   ██   ██  ██   ██  ",
	"██████ ████████   ██   ██  ██   ██  ",
	"██  ██ ██    ██   ██   ██  ██   ██  ",
	"██  ██ ██    ██   ██    ████    ██  ",
}

const CompactLogo = `hatut ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FF6B6B"),
}

// Palette. ApplyTheme replaces these from the ui.colors config section.
var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")
	TextColor      = lipgloss.Color("#EAEAEA")
	MutedColor     = lipgloss.Color("#94A3B8")
	UnreadColor    = lipgloss.Color("#FFE66D")
	ErrorColor     = lipgloss.Color("#EF4444")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	ReadColor       = lipgloss.Color("#64748B")
)

// Styled components, rebuilt by refreshStyles whenever the palette changes.
var (
	LogoStyle        lipgloss.Style
	HeaderStyle      lipgloss.Style
	FilterWordStyle  lipgloss.Style
	UnreadItemStyle  lipgloss.Style
	ReadItemStyle    lipgloss.Style
	ReadingItemStyle lipgloss.Style
	CursorStyle      lipgloss.Style
	AuthorStyle      lipgloss.Style
	EmphasisStyle    lipgloss.Style
	HelpStyle        lipgloss.Style
	SeparatorStyle   lipgloss.Style

	StatusInfoStyle  lipgloss.Style
	StatusWarnStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style

	EmptyStyle = lipgloss.NewStyle()
)

func init() {
	refreshStyles()
}

func refreshStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	FilterWordStyle = lipgloss.NewStyle().
		Foreground(AccentColor).
		Bold(true)

	UnreadItemStyle = lipgloss.NewStyle().
		Foreground(UnreadColor).
		Bold(true)

	ReadItemStyle = lipgloss.NewStyle().
		Foreground(TextColor)

	ReadingItemStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true)

	CursorStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	AuthorStyle = lipgloss.NewStyle().
		Foreground(ReadColor)

	EmphasisStyle = lipgloss.NewStyle().
		Italic(true).
		Underline(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(UnreadColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// ApplyTheme installs the configured palette. Empty entries keep the
// current color.
func ApplyTheme(colors config.UIColors) {
	set := func(dst *lipgloss.Color, value string) {
		if value != "" {
			*dst = lipgloss.Color(value)
		}
	}
	set(&PrimaryColor, colors.Primary)
	set(&SecondaryColor, colors.Secondary)
	set(&AccentColor, colors.Accent)
	set(&TextColor, colors.Text)
	set(&MutedColor, colors.Muted)
	set(&UnreadColor, colors.Unread)
	set(&ErrorColor, colors.Error)
	refreshStyles()
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// Banner renders the startup banner for version.
func Banner(version string) string {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("    Story Reader %s", versionTag))
	} else {
		lines = append(lines, "    Story Reader")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderChars := lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "║",
		Right:       "║",
		TopLeft:     "╔",
		TopRight:    "╗",
		BottomLeft:  "╚",
		BottomRight: "╝",
	}

	borderStyle := lipgloss.NewStyle().
		Border(borderChars).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		Render(borderStyle.Render(banner))

	separator := lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(lipgloss.NewStyle().Foreground(AccentColor).Render("◆ ◇ ◆ ◇ ◆"))

	return output + "\n" + separator
}

// ShowBanner prints Banner(version) to stdout.
func ShowBanner(version string) {
	fmt.Println(Banner(version))
}
