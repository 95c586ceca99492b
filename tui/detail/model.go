package detail

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"postdeck/app"
	"postdeck/domain"
	"postdeck/tui/common"
	"postdeck/tui/mention"
)

// --- Messages ---

// PostLoadedMsg is sent when the post and its comment thread load.
type PostLoadedMsg struct {
	Post     domain.Post
	Comments []domain.Comment
	ReqSeq   int
}

// PostErrorMsg is sent when loading the post fails.
type PostErrorMsg struct {
	Err    error
	ReqSeq int
}

// LikeResultMsg carries the server-confirmed like state of the post.
type LikeResultMsg struct {
	PostID int
	State  app.LikeState
	Err    error
}

// EditResultMsg is sent after a comment update attempt.
type EditResultMsg struct {
	CommentID int
	Content   string // Server-confirmed content on success
	Err       error
}

// ReplyResultMsg is sent after submitting a reply or top-level comment.
type ReplyResultMsg struct {
	Comment domain.Comment
	Err     error
}

// DeleteResultMsg is sent after a comment deletion attempt.
type DeleteResultMsg struct {
	CommentID int
	Err       error
}

// PDFResultMsg is sent after requesting a PDF of the post.
type PDFResultMsg struct {
	Message string
	Err     error
}

// BackMsg asks the root model to return to the post list.
type BackMsg struct{}

// --- Model ---

type services struct {
	posts    app.PostService
	comments app.CommentService
	users    app.UserService
	log      *log.Logger
}

type postState struct {
	postID   int
	post     domain.Post
	thread   []domain.Comment
	loading  bool
	err      error
	fetchSeq int
}

// composeState is the reply-form controller: at most one reply composer
// is open at a time, bound to a parent comment (or the post itself for
// top-level comments).
type composeState struct {
	replying     bool
	replyParent  int // Comment ID being replied to; 0 for a top-level comment
	replyField   mention.Field
	replyWarning string
}

// editorState is the comment editor controller. editingID is the
// single active-editor reference; snapshots is the side table of
// pre-edit rendered content keyed by comment ID.
type editorState struct {
	editingID   int
	snapshots   map[int]string
	editField   mention.Field
	editWarning string
}

type uiState struct {
	keys            common.KeyMap
	spinner         spinner.Model
	width           int
	height          int
	cursor          int // 0 for the post, 1..n for flattened comment rows
	start           int // First visible comment row
	status          string
	viewer          string // Authenticated username; empty for anonymous viewers
	confirmDeleteID int
}

// Model holds the state for the post-detail view.
type Model struct {
	services
	postState
	composeState
	editorState
	uiState
}

// New creates a detail model for one post. viewer is the authenticated
// username, or empty for an anonymous session.
func New(posts app.PostService, comments app.CommentService, users app.UserService, logger *log.Logger, postID int, viewer string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		services: services{
			posts:    posts,
			comments: comments,
			users:    users,
			log:      logger,
		},
		postState: postState{
			postID:  postID,
			loading: true,
		},
		editorState: editorState{
			snapshots: make(map[int]string),
		},
		uiState: uiState{
			keys:    common.DefaultKeyMap(),
			spinner: s,
			viewer:  viewer,
		},
	}
}

// Init starts the initial post fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPost(m.fetchSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Post returns the currently loaded post.
func (m Model) Post() domain.Post {
	return m.post
}

// Thread returns the current comment tree.
func (m Model) Thread() []domain.Comment {
	return m.thread
}

// EditingID returns the comment currently in edit mode, 0 if none.
func (m Model) EditingID() int {
	return m.editingID
}

// ReplyParent returns the comment the open reply composer is bound to.
// The second return is false when no composer is open.
func (m Model) ReplyParent() (int, bool) {
	return m.replyParent, m.replying
}
