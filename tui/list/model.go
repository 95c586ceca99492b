package list

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"postdeck/app"
	"postdeck/domain"
	"postdeck/tui/common"
)

// --- Messages ---

// PostsLoadedMsg is sent when a post page loads.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	ReqSeq int
}

// PostsErrorMsg is sent when loading posts fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// OpenPostMsg asks the root model to open a post's detail view.
type OpenPostMsg struct {
	ID int
}

// --- Model ---

// Model holds the state for the browse (post list) view.
type Model struct {
	posts app.PostService

	items   []domain.Post
	cursor  int
	start   int
	page    int
	loading bool
	err     error
	reqSeq  int

	query       string
	author      string
	searching   bool
	searchInput textinput.Model

	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int
}

// New creates a list model with an injected post service.
func New(posts app.PostService) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7"))

	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.CharLimit = 120
	ti.Width = 40

	return Model{
		posts:       posts,
		page:        1,
		loading:     true,
		searchInput: ti,
		keys:        common.DefaultKeyMap(),
		spinner:     s,
	}
}

// Init starts the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.reqSeq),
		m.spinner.Tick,
	)
}

func (m Model) fetchPosts(reqSeq int) tea.Cmd {
	posts := m.posts
	filter := app.PostFilter{Query: m.query, Author: m.author, Page: m.page}
	return func() tea.Msg {
		items, err := posts.FetchPosts(context.Background(), filter)
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: items, ReqSeq: reqSeq}
	}
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.items = msg.Posts
		m.loading = false
		m.err = nil
		m.cursor = 0
		m.start = 0
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			// "@name" filters by author, anything else is a free-text
			// search.
			value := strings.TrimSpace(m.searchInput.Value())
			if name, ok := strings.CutPrefix(value, "@"); ok {
				m.query, m.author = "", name
			} else {
				m.query, m.author = value, ""
			}
			return m.refetchFirstPage()
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.reqSeq++
		return m, m.fetchPosts(m.reqSeq)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.filterLabel())
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Enter):
		if len(m.items) == 0 {
			return m, nil
		}
		id := m.items[m.cursor].ID
		return m, func() tea.Msg { return OpenPostMsg{ID: id} }

	case msg.String() == "n":
		if len(m.items) == 0 {
			// The platform serves fixed-size pages; an empty page
			// means we ran past the end.
			return m, nil
		}
		m.page++
		return m.refetch()

	case msg.String() == "p":
		if m.page <= 1 {
			return m, nil
		}
		m.page--
		return m.refetch()

	case key.Matches(msg, m.keys.Back):
		if m.query != "" || m.author != "" {
			m.query, m.author = "", ""
			return m.refetchFirstPage()
		}
	}

	return m, nil
}

func (m Model) refetchFirstPage() (Model, tea.Cmd) {
	m.page = 1
	return m.refetch()
}

func (m Model) refetch() (Model, tea.Cmd) {
	m.loading = true
	m.reqSeq++
	return m, m.fetchPosts(m.reqSeq)
}

func (m Model) listSlots() int {
	slots := (m.height - 10) / 5
	if slots < 3 {
		slots = 3
	}
	return slots
}

func (m *Model) ensureCursorVisible() {
	slots := m.listSlots()
	if m.cursor < m.start {
		m.start = m.cursor
	}
	if m.cursor >= m.start+slots {
		m.start = m.cursor - slots + 1
	}
	if m.start < 0 {
		m.start = 0
	}
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.items) == 0 {
		return domain.Post{}, false
	}
	return m.items[m.cursor], true
}

// Query returns the active search query.
func (m Model) Query() string {
	return m.query
}

// filterLabel renders the active filter the way the search input
// accepts it.
func (m Model) filterLabel() string {
	if m.author != "" {
		return "@" + m.author
	}
	return m.query
}

// Searching reports whether the search input owns the keyboard.
func (m Model) Searching() bool {
	return m.searching
}
