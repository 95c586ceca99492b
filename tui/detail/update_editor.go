package detail

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"postdeck/domain"
	"postdeck/tui/common"
	"postdeck/tui/mention"
)

// openEditor moves comment c from Rendered to Editing. If another
// comment is already Editing it is restored from its snapshot first:
// at most one editor is ever open.
func (m Model) openEditor(c domain.Comment) (Model, tea.Cmd) {
	if m.editingID != 0 {
		m.restoreEditing()
	}
	if m.replying {
		m.closeReply()
	}

	// Snapshot the rendered content before swapping in the field.
	m.snapshots[c.ID] = c.Content
	m.editingID = c.ID
	m.editWarning = ""
	m.status = ""

	m.editField = mention.New(m.users, "")
	m.editField.SetWidth(m.fieldWidth())
	m.editField.SetHeight(4)
	// The field shows human-readable text, not entities.
	m.editField.SetValue(common.DecodeEntities(c.Content))
	return m, m.editField.Focus()
}

// restoreEditing puts the currently Editing comment back to its
// pre-edit rendered content and clears the active-editor reference.
func (m *Model) restoreEditing() {
	if m.editingID == 0 {
		return
	}
	if snapshot, ok := m.snapshots[m.editingID]; ok {
		m.setCommentContent(m.editingID, snapshot)
	}
	m.closeEditor()
}

// closeEditor clears the active-editor reference and its snapshot.
func (m *Model) closeEditor() {
	delete(m.snapshots, m.editingID)
	m.editingID = 0
	m.editWarning = ""
	m.editField.Blur()
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.editField.SuggestionsVisible() {
			// First esc only dismisses the suggestion list.
			var cmd tea.Cmd
			m.editField, cmd = m.editField.Update(msg)
			return m, cmd
		}
		m.restoreEditing()
		return m, nil

	case "ctrl+d":
		content := strings.TrimSpace(m.editField.Value())
		if content == "" {
			// Empty comments are never submitted; block locally.
			m.editWarning = "Comment cannot be empty."
			return m, nil
		}
		m.editWarning = ""
		return m, m.saveComment(m.editingID, content)
	}

	var cmd tea.Cmd
	m.editField, cmd = m.editField.Update(msg)
	return m, cmd
}
