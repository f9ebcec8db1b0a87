package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgFetching  = "Fetching stories…"
	MsgNoStories = "No stories"
	MsgNoneOpen  = "Select a story to read it"
)

func MsgStoryCount(total, unread int) string {
	noun := "stories"
	if total == 1 {
		noun = "story"
	}
	if unread == 0 {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d %s • %d unread", total, noun, unread)
}

func MsgFetchFailed(err error) string {
	return fmt.Sprintf("✗ %v", err)
}
