package detail

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"postdeck/tui/common"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// While an editor or reply composer is open, keystrokes belong to
	// its field except for the save/cancel chords.
	if m.editingID != 0 {
		return m.handleEditorKey(msg)
	}
	if m.replying {
		return m.handleReplyKey(msg)
	}

	if m.confirmDeleteID != 0 {
		switch msg.String() {
		case "y":
			id := m.confirmDeleteID
			return m, m.deleteComment(id)
		case "n", "esc":
			m.confirmDeleteID = 0
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		m.fetchSeq++
		return m, m.fetchPost(m.fetchSeq)

	case key.Matches(msg, m.keys.Back):
		return m, back()

	case key.Matches(msg, m.keys.Up):
		m.status = ""
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		m.status = ""
		if m.cursor < len(m.rows()) {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Like):
		// One like control per page, and only for signed-in viewers;
		// its absence never blocks anything else.
		if m.viewer == "" {
			return m, nil
		}
		return m, m.toggleLike()

	case key.Matches(msg, m.keys.Reply):
		if m.viewer == "" {
			return m, nil
		}
		c, ok := m.selectedComment()
		if !ok {
			// No comment under the cursor: nothing to reply to.
			return m, nil
		}
		return m.openReply(c.ID, common.Mention(c.Author))

	case key.Matches(msg, m.keys.Comment):
		if m.viewer == "" {
			return m, nil
		}
		return m.openReply(0, "")

	case key.Matches(msg, m.keys.Edit):
		c, ok := m.selectedComment()
		if !ok || !m.isOwn(c) {
			return m, nil
		}
		return m.openEditor(c)

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selectedComment()
		if !ok || !m.isOwn(c) {
			return m, nil
		}
		m.confirmDeleteID = c.ID

	case key.Matches(msg, m.keys.Yank):
		text := common.DecodeEntities(m.post.Content)
		if c, ok := m.selectedComment(); ok {
			text = common.DecodeEntities(c.Content)
		}
		if err := clipboard.WriteAll(text); err != nil {
			m.status = "Clipboard unavailable."
		} else {
			m.status = "Copied to clipboard."
		}

	case key.Matches(msg, m.keys.Download):
		if m.viewer == "" {
			return m, nil
		}
		m.status = "Requesting PDF..."
		return m, m.requestPDF()
	}

	return m, nil
}
