package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"postdeck/tui/common"
)

// View renders the post with its comment thread.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("postdeck")
	tagline := common.TaglineStyle.Render("<the blog, without the browser>")
	b.WriteString(title + tagline + "\n\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("  %s Loading post...\n", m.spinner.View()))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(common.ErrorStyle.Render("  Error: "+m.err.Error()) + "\n")
		b.WriteString(common.StatusBarStyle.Render("  R: retry • esc: back") + "\n")
		return b.String()
	}

	b.WriteString(m.renderPostCard())
	b.WriteString("\n")
	b.WriteString(m.renderThread())

	if m.status != "" {
		b.WriteString("\n" + common.StatusBarStyle.Render("  "+m.status))
	}
	b.WriteString("\n" + common.StatusBarStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderPostCard() string {
	postWidth := m.cardWidth()
	contentWidth := max(postWidth-6, 24)

	style := common.UnselectedStyle.Width(postWidth).MarginLeft(1)
	if m.cursor == 0 {
		style = common.SelectedStyle.Width(postWidth).MarginLeft(1)
	}

	var card strings.Builder
	card.WriteString(common.TitleStyle.Render(m.post.Title) + "\n")
	card.WriteString(common.AuthorStyle.Render("@"+m.post.Author) + " " +
		common.TimestampStyle.Render(m.post.CreatedAt.Format("Jan 02, 2006 at 15:04")) + "\n\n")
	card.WriteString(common.ContentStyle.Width(contentWidth).Render(common.DecodeEntities(m.post.Content)) + "\n\n")

	likeIcon := "♡"
	likeStyle := common.MetadataStyle
	if m.post.Liked {
		likeIcon = "♥"
		likeStyle = common.LikeActiveStyle
	}
	meta := fmt.Sprintf("%s %s  |  %d comments",
		likeStyle.Render(likeIcon), common.LikeLabel(m.post.LikeCount), m.post.CommentCount)
	card.WriteString(common.MetadataStyle.Render(meta))

	return style.Render(card.String())
}

func (m Model) renderThread() string {
	rows := m.rows()
	if len(rows) == 0 {
		var b strings.Builder
		b.WriteString(common.MetadataStyle.MarginLeft(2).Render("No comments yet.") + "\n")
		if m.replying && m.replyParent == 0 {
			b.WriteString(m.renderComposer(m.replyField.View(), m.replyWarning, "comment"))
		}
		return b.String()
	}

	var b strings.Builder
	b.WriteString(common.MetadataStyle.MarginLeft(2).Render(fmt.Sprintf("Comments (%d)", m.post.CommentCount)) + "\n")

	if m.replying && m.replyParent == 0 {
		b.WriteString(m.renderComposer(m.replyField.View(), m.replyWarning, "comment"))
	}

	slots := m.commentSlots()
	end := min(m.start+slots, len(rows))
	if m.start > 0 {
		b.WriteString(common.MetadataStyle.MarginLeft(2).Render("↑ more") + "\n")
	}
	for i := m.start; i < end; i++ {
		b.WriteString(m.renderCommentRow(rows[i], i+1 == m.cursor))
	}
	if end < len(rows) {
		b.WriteString(common.MetadataStyle.MarginLeft(2).Render("↓ more") + "\n")
	}
	return b.String()
}

func (m Model) renderCommentRow(r row, selected bool) string {
	width := m.cardWidth() - r.depth*4
	indent := 1 + r.depth*4

	style := common.UnselectedStyle.Width(width).MarginLeft(indent)
	if selected {
		style = common.SelectedStyle.Width(width).MarginLeft(indent)
	}

	c := r.comment

	var body strings.Builder
	author := common.AuthorStyle.Render("@" + c.Author)
	if m.isOwn(c) {
		author += common.OwnBadgeStyle.Render("(you)")
	}
	body.WriteString(author + " " + common.TimestampStyle.Render(c.CreatedAt.Format("Jan 02 15:04")))
	if c.RepliedTo != "" {
		body.WriteString(" " + common.MentionStyle.Render("⬑ @"+c.RepliedTo))
	}
	body.WriteString("\n")

	if m.editingID == c.ID {
		// Editing: the field replaces the rendered content region.
		body.WriteString(m.editField.View())
		if m.editWarning != "" {
			body.WriteString("\n" + common.WarningStyle.Render(m.editWarning))
		}
		body.WriteString("\n" + common.MetadataStyle.Render("ctrl+d: save • esc: cancel"))
		return style.Render(body.String()) + "\n"
	}

	contentWidth := max(width-6, 20)
	body.WriteString(common.ContentStyle.Width(contentWidth).Render(common.DecodeEntities(c.Content)))

	if m.confirmDeleteID == c.ID {
		body.WriteString("\n" + common.ConfirmStyle.Render("Delete this comment? (y/n)"))
	}

	out := style.Render(body.String()) + "\n"
	if m.replying && m.replyParent == c.ID {
		out += m.renderComposer(m.replyField.View(), m.replyWarning, "reply")
	}
	return out
}

func (m Model) renderComposer(fieldView, warning, noun string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().MarginLeft(3).Render(fieldView) + "\n")
	if warning != "" {
		b.WriteString(common.WarningStyle.MarginLeft(3).Render(warning) + "\n")
	}
	b.WriteString(common.MetadataStyle.MarginLeft(3).Render("ctrl+d: post "+noun+" • esc: cancel") + "\n")
	return b.String()
}

func (m Model) helpLine() string {
	if m.editingID != 0 || m.replying {
		return "  @: mention • ↑/↓: pick suggestion • enter/tab: insert"
	}
	if m.viewer == "" {
		return "  ↑/↓: move • Y: copy • R: refresh • esc: back"
	}
	return "  l: like • c: comment • r: reply • e: edit • d: delete • D: pdf • esc: back"
}

func (m Model) cardWidth() int {
	if m.width == 0 {
		return 74
	}
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 78 {
		w = 78
	}
	return w
}
