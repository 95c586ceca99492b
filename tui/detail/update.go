package detail

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"postdeck/domain"
	"postdeck/tui/common"
	"postdeck/tui/mention"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.replyField.SetWidth(m.fieldWidth())
		m.editField.SetWidth(m.fieldWidth())
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostLoadedMsg:
		if msg.ReqSeq != m.fetchSeq {
			return m, nil
		}
		m.post = msg.Post
		m.thread = msg.Comments
		m.loading = false
		m.err = nil
		m.ensureCursorVisible()
		return m, nil

	case PostErrorMsg:
		if msg.ReqSeq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case LikeResultMsg:
		return m.handleLikeResult(msg)

	case EditResultMsg:
		return m.handleEditResult(msg)

	case ReplyResultMsg:
		return m.handleReplyResult(msg)

	case DeleteResultMsg:
		m.confirmDeleteID = 0
		if msg.Err != nil {
			m.status = "Error deleting: " + msg.Err.Error()
			return m, nil
		}
		m.status = "Comment deleted."
		m.fetchSeq++
		return m, m.fetchPost(m.fetchSeq)

	case PDFResultMsg:
		if msg.Err != nil {
			m.status = "Error: " + msg.Err.Error()
			return m, nil
		}
		m.status = msg.Message
		return m, nil

	case mention.SuggestionsMsg:
		// Both fields check the field ID, so misdirected results are
		// dropped on the floor.
		m.replyField, _ = m.replyField.Update(msg)
		m.editField, _ = m.editField.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleLikeResult renders exactly what the server confirmed. Failures
// are logged, never surfaced as an alert, and the control keeps its
// last confirmed state.
func (m Model) handleLikeResult(msg LikeResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("like toggle failed", "post", msg.PostID, "err", msg.Err)
		return m, nil
	}
	if msg.PostID != m.postID {
		return m, nil
	}
	m.post.Liked = msg.State.Liked
	m.post.LikeCount = msg.State.Count
	return m, nil
}

func (m Model) handleEditResult(msg EditResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		if m.editingID != msg.CommentID {
			// The editor moved on; nothing left to warn about.
			return m, nil
		}
		m.editWarning = editFailureMessage(msg.Err)
		return m, nil
	}

	// Escape on the way back into rendered content so saved markup
	// displays as literal characters.
	m.setCommentContent(msg.CommentID, common.EncodeEntities(msg.Content))
	if m.editingID == msg.CommentID {
		m.closeEditor()
		m.status = "Comment updated."
	}
	return m, nil
}

func editFailureMessage(err error) string {
	var serverErr *domain.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}
	if errors.Is(err, domain.ErrEmptyComment) {
		return "Comment cannot be empty."
	}
	return "Network error. Your text was kept, try again."
}

func (m Model) handleReplyResult(msg ReplyResultMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.replyWarning = editFailureMessage(msg.Err)
		return m, nil
	}
	wasTopLevel := m.replyParent == 0
	m.closeReply()
	if wasTopLevel {
		m.status = "Comment posted."
	} else {
		m.status = "Reply posted."
	}
	m.fetchSeq++
	return m, m.fetchPost(m.fetchSeq)
}

func (m Model) fieldWidth() int {
	w := m.width - 12
	if w < 24 {
		w = 24
	}
	if w > 72 {
		w = 72
	}
	return w
}
