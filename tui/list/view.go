package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"postdeck/domain"
	"postdeck/tui/common"
)

// View renders the post list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("postdeck"))
	b.WriteString("\n")
	b.WriteString(common.TaglineStyle.Render("<the blog, without the browser>"))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	} else if label := m.filterLabel(); label != "" {
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("filter: %q (esc clears)", label)))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("%s Loading posts...", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render("Could not load posts."))
		b.WriteString("\n")
		b.WriteString(common.MetadataStyle.Render("Press R to retry."))
	case len(m.items) == 0:
		b.WriteString(common.MetadataStyle.Render("No posts here."))
	default:
		b.WriteString(m.renderItems())
	}

	b.WriteString("\n\n")
	b.WriteString(common.StatusBarStyle.Render(m.helpLine()))

	return b.String()
}

func (m Model) renderItems() string {
	slots := m.listSlots()
	end := m.start + slots
	if end > len(m.items) {
		end = len(m.items)
	}

	var rows []string
	if m.start > 0 {
		rows = append(rows, common.MetadataStyle.Render("  ↑ more"))
	}
	for i := m.start; i < end; i++ {
		rows = append(rows, m.renderItem(m.items[i], i == m.cursor))
	}
	if end < len(m.items) {
		rows = append(rows, common.MetadataStyle.Render("  ↓ more"))
	}
	rows = append(rows, common.MetadataStyle.Render(fmt.Sprintf("page %d", m.page)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderItem(p domain.Post, selected bool) string {
	width := m.cardWidth()

	title := common.TitleStyle.Render(common.TruncateLine(p.Title, width-4))
	meta := common.MetadataStyle.Render(fmt.Sprintf(
		"%s · %s · %s · %d comments",
		p.Author, p.CreatedAt.Format("Jan 2, 2006"), common.LikeLabel(p.LikeCount), p.CommentCount,
	))
	preview := common.ContentStyle.Render(
		common.TruncateLines(common.DecodeEntities(p.Content), width-4, 1),
	)

	card := lipgloss.JoinVertical(lipgloss.Left, title, meta, preview)
	if selected {
		return common.SelectedStyle.Width(width).Render(card)
	}
	return common.UnselectedStyle.Width(width).Render(card)
}

func (m Model) cardWidth() int {
	width := m.width - 4
	if width < 32 {
		width = 32
	}
	if width > 96 {
		width = 96
	}
	return width
}

func (m Model) helpLine() string {
	if m.searching {
		return "enter: search • esc: cancel"
	}
	return "↑/↓: move • enter: open • /: search • n/p: page • R: refresh • q: quit"
}
