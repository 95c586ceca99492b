// Package tui wires the terminal views together.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"postdeck/app"
	"postdeck/tui/common"
	"postdeck/tui/detail"
	"postdeck/tui/list"
)

type view int

const (
	listView view = iota
	detailView
)

// Deps carries everything the UI needs from the outside.
type Deps struct {
	Posts    app.PostService
	Comments app.CommentService
	Users    app.UserService
	Logger   *log.Logger
	Viewer   string
}

// App is the root model. It owns the active view and global keys.
type App struct {
	deps   Deps
	view   view
	list   list.Model
	detail detail.Model
	keys   common.KeyMap
	width  int
	height int
}

// NewApp creates the root model starting on the post list.
func NewApp(deps Deps) App {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return App{
		deps: deps,
		list: list.New(deps.Posts),
		keys: common.DefaultKeyMap(),
	}
}

// Init starts the list view.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// Update routes messages to the active view.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var listCmd, detailCmd tea.Cmd
		a.list, listCmd = a.list.Update(msg)
		if a.view == detailView {
			a.detail, detailCmd = a.detail.Update(msg)
		}
		return a, tea.Batch(listCmd, detailCmd)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) && !a.typing() {
			return a, tea.Quit
		}

	case list.OpenPostMsg:
		a.view = detailView
		a.detail = detail.New(
			a.deps.Posts, a.deps.Comments, a.deps.Users,
			a.deps.Logger, msg.ID, a.deps.Viewer,
		)
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, tea.Batch(a.detail.Init(), cmd)

	case detail.BackMsg:
		a.view = listView
		return a, nil
	}

	var cmd tea.Cmd
	switch a.view {
	case detailView:
		a.detail, cmd = a.detail.Update(msg)
	default:
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

// typing reports whether a text field currently owns the keyboard, in
// which case q must insert a letter instead of quitting.
func (a App) typing() bool {
	if a.view != detailView {
		return a.list.Searching()
	}
	if a.detail.EditingID() != 0 {
		return true
	}
	_, replying := a.detail.ReplyParent()
	return replying
}

// View renders the active view.
func (a App) View() string {
	if a.view == detailView {
		return a.detail.View()
	}
	return a.list.View()
}
