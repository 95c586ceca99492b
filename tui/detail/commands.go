package detail

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchPost(reqSeq int) tea.Cmd {
	posts := m.posts
	id := m.postID
	return func() tea.Msg {
		post, comments, err := posts.FetchPost(context.Background(), id)
		if err != nil {
			return PostErrorMsg{Err: err, ReqSeq: reqSeq}
		}
		return PostLoadedMsg{Post: post, Comments: comments, ReqSeq: reqSeq}
	}
}

// toggleLike issues one toggle request. There is no debouncing: rapid
// repeats issue one request each, and the UI renders whatever the
// server confirms last.
func (m Model) toggleLike() tea.Cmd {
	posts := m.posts
	id := m.postID
	return func() tea.Msg {
		state, err := posts.ToggleLike(context.Background(), id)
		return LikeResultMsg{PostID: id, State: state, Err: err}
	}
}

func (m Model) saveComment(commentID int, content string) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		updated, err := comments.Update(context.Background(), commentID, content)
		return EditResultMsg{CommentID: commentID, Content: updated, Err: err}
	}
}

func (m Model) submitReply(parentID int, content string) tea.Cmd {
	comments := m.comments
	postID := m.postID
	return func() tea.Msg {
		c, err := comments.Add(context.Background(), postID, content, parentID)
		return ReplyResultMsg{Comment: c, Err: err}
	}
}

func (m Model) deleteComment(commentID int) tea.Cmd {
	comments := m.comments
	return func() tea.Msg {
		err := comments.Delete(context.Background(), commentID)
		return DeleteResultMsg{CommentID: commentID, Err: err}
	}
}

func (m Model) requestPDF() tea.Cmd {
	posts := m.posts
	id := m.postID
	return func() tea.Msg {
		message, err := posts.RequestPDF(context.Background(), id)
		return PDFResultMsg{Message: message, Err: err}
	}
}

func back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}
