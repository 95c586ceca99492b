package detail

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"postdeck/app"
	"postdeck/domain"
)

type stubPosts struct {
	fetchCalls  int
	toggleCalls int
	likeState   app.LikeState
	likeErr     error
	post        domain.Post
	comments    []domain.Comment
	pdfMessage  string
}

func (s *stubPosts) FetchPosts(context.Context, app.PostFilter) ([]domain.Post, error) {
	return nil, nil
}

func (s *stubPosts) FetchPost(context.Context, int) (domain.Post, []domain.Comment, error) {
	s.fetchCalls++
	return s.post, s.comments, nil
}

func (s *stubPosts) ToggleLike(context.Context, int) (app.LikeState, error) {
	s.toggleCalls++
	return s.likeState, s.likeErr
}

func (s *stubPosts) RequestPDF(context.Context, int) (string, error) {
	return s.pdfMessage, nil
}

type updateCall struct {
	commentID int
	content   string
}

type stubComments struct {
	updates   []updateCall
	updateErr error
	added     []updateCall
	addErr    error
	deleted   []int
}

func (s *stubComments) Add(_ context.Context, postID int, content string, parentID int) (domain.Comment, error) {
	s.added = append(s.added, updateCall{commentID: parentID, content: content})
	if s.addErr != nil {
		return domain.Comment{}, s.addErr
	}
	return domain.Comment{ID: 99, PostID: postID, Content: content, ParentID: parentID}, nil
}

func (s *stubComments) Update(_ context.Context, commentID int, content string) (string, error) {
	s.updates = append(s.updates, updateCall{commentID: commentID, content: content})
	if s.updateErr != nil {
		return "", s.updateErr
	}
	return content, nil
}

func (s *stubComments) Delete(_ context.Context, commentID int) error {
	s.deleted = append(s.deleted, commentID)
	return nil
}

type stubUsers struct {
	usernames []string
}

func (s *stubUsers) CurrentUsername(context.Context) (string, error) {
	return "rikka", nil
}

func (s *stubUsers) SearchUsernames(context.Context, string) ([]string, error) {
	return s.usernames, nil
}

func makeComment(id int, author, content string, replies ...domain.Comment) domain.Comment {
	return domain.Comment{
		ID:        id,
		PostID:    1,
		Author:    author,
		Content:   content,
		CreatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Replies:   replies,
	}
}

func makePost(likeCount int, liked bool) domain.Post {
	return domain.Post{
		ID:        1,
		Title:     "a post",
		Author:    "yui",
		Content:   "post body",
		CreatedAt: time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		Liked:     liked,
		LikeCount: likeCount,
	}
}

// loadedModel builds a detail model with the thread already in place.
func loadedModel(t *testing.T, posts *stubPosts, comments *stubComments, viewer string) Model {
	t.Helper()
	m := New(posts, comments, &stubUsers{}, log.New(io.Discard), 1, viewer)
	m.width = 80
	m.height = 30
	m, _ = m.Update(PostLoadedMsg{Post: posts.post, Comments: posts.comments, ReqSeq: 0})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
