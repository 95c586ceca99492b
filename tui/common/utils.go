package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Mention builds the reply prefill for a username: the mention token
// plus a single separating space.
func Mention(username string) string {
	return "@" + username + " "
}

// LikeLabel renders the like counter exactly as the platform does:
// singular for a count of one, plural otherwise.
func LikeLabel(count int) string {
	if count == 1 {
		return "1 like"
	}
	return fmt.Sprintf("%d likes", count)
}

// DecodeEntities turns rendered comment markup into human-readable
// plain text for editing.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// EncodeEntities escapes text destined for rendered comment markup so
// that '<', '>', '&' and quotes display as literal characters.
func EncodeEntities(s string) string {
	return html.EscapeString(s)
}

// TruncateLine shortens a single line to the given display width,
// accounting for ANSI escapes and wide runes.
func TruncateLine(s string, width int) string {
	if width < 4 {
		width = 4
	}
	return ansi.Truncate(s, width, "…")
}

// TruncateLines wraps text to width and keeps at most maxLines lines.
func TruncateLines(text string, width, maxLines int) string {
	if width < 12 {
		width = 12
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= maxLines {
		return wrapped
	}
	return strings.Join(lines[:maxLines], "\n") + "..."
}
