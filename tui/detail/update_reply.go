package detail

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"postdeck/tui/mention"
)

// openReply shows the reply composer bound to parentID (0 for a
// top-level comment), hiding any other open composer first. prefill is
// the mention of the comment's author, already followed by a space.
func (m Model) openReply(parentID int, prefill string) (Model, tea.Cmd) {
	if m.editingID != 0 {
		m.restoreEditing()
	}

	m.replying = true
	m.replyParent = parentID
	m.replyWarning = ""
	m.status = ""

	placeholder := "Write a reply..."
	if parentID == 0 {
		placeholder = "Write a comment..."
	}
	m.replyField = mention.New(m.users, placeholder)
	m.replyField.SetWidth(m.fieldWidth())
	m.replyField.SetHeight(3)
	m.replyField.SetValue(prefill)
	return m, m.replyField.Focus()
}

// closeReply hides the reply composer without touching anything else.
func (m *Model) closeReply() {
	m.replying = false
	m.replyParent = 0
	m.replyWarning = ""
	m.replyField.Blur()
}

func (m Model) handleReplyKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.replyField.SuggestionsVisible() {
			var cmd tea.Cmd
			m.replyField, cmd = m.replyField.Update(msg)
			return m, cmd
		}
		m.closeReply()
		return m, nil

	case "ctrl+d":
		content := strings.TrimSpace(m.replyField.Value())
		if content == "" {
			m.replyWarning = "Comment cannot be empty."
			return m, nil
		}
		m.replyWarning = ""
		return m, m.submitReply(m.replyParent, content)
	}

	var cmd tea.Cmd
	m.replyField, cmd = m.replyField.Update(msg)
	return m, cmd
}
