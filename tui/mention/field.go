package mention

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"postdeck/app"
	"postdeck/tui/common"
)

// trailingMentionRe captures the word fragment after an '@' at the end
// of the text. A bare '@' captures an empty fragment.
var trailingMentionRe = regexp.MustCompile(`@(\w*)$`)

// SuggestionsMsg delivers a username search result to the field that
// issued it.
type SuggestionsMsg struct {
	FieldID   string
	Seq       int
	Usernames []string
	Err       error
}

// Field is a content textarea with live @mention autocomplete attached.
// It can be created at any time, including for dynamically opened
// comment editors, and issues one search per keystroke that leaves a
// non-empty trailing mention fragment.
type Field struct {
	id    string
	users app.UserService

	textarea textarea.Model

	// Search sequencing: responses older than the last applied one are
	// discarded, so overlapping searches cannot reorder visibly.
	seq         int
	lastApplied int

	suggestions []string
	selected    int
	visible     bool
}

// New creates a field with autocomplete wired to the given user search
// service.
func New(users app.UserService, placeholder string) Field {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 2000
	ta.SetWidth(72)
	ta.SetHeight(4)
	return Field{
		id:       uuid.NewString(),
		users:    users,
		textarea: ta,
	}
}

// Focus gives the field input focus.
func (f *Field) Focus() tea.Cmd {
	return f.textarea.Focus()
}

// Blur removes focus and hides the suggestion list.
func (f *Field) Blur() {
	f.textarea.Blur()
	f.hideSuggestions()
}

// Focused reports whether the field has input focus.
func (f Field) Focused() bool {
	return f.textarea.Focused()
}

// Value returns the field's current text.
func (f Field) Value() string {
	return f.textarea.Value()
}

// SetValue replaces the field's text without triggering a search.
func (f *Field) SetValue(s string) {
	f.textarea.SetValue(s)
}

// SetWidth resizes the field and its suggestion list.
func (f *Field) SetWidth(w int) {
	f.textarea.SetWidth(w)
}

// SetHeight resizes the field.
func (f *Field) SetHeight(h int) {
	f.textarea.SetHeight(h)
}

// SuggestionsVisible reports whether the suggestion list is showing.
func (f Field) SuggestionsVisible() bool {
	return f.visible
}

// Suggestions returns the current suggestion rows.
func (f Field) Suggestions() []string {
	return f.suggestions
}

func (f *Field) hideSuggestions() {
	f.visible = false
	f.suggestions = nil
	f.selected = 0
}

// Update handles key and suggestion messages. While the suggestion
// list is visible it captures up/down/enter/tab/esc for list
// navigation; everything else is delegated to the textarea.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	switch msg := msg.(type) {
	case SuggestionsMsg:
		if msg.FieldID != f.id {
			return f, nil
		}
		if msg.Seq <= f.lastApplied {
			// A newer search already resolved; discard the stale result.
			return f, nil
		}
		f.lastApplied = msg.Seq
		if msg.Err != nil || len(msg.Usernames) == 0 {
			// Fail closed: the list is simply never shown.
			f.hideSuggestions()
			return f, nil
		}
		if fragment, ok := trailingFragment(f.textarea.Value()); !ok || fragment == "" {
			// The text no longer ends in a mention token.
			f.hideSuggestions()
			return f, nil
		}
		f.suggestions, f.selected, f.visible = msg.Usernames, 0, true
		return f, nil

	case tea.KeyMsg:
		if !f.textarea.Focused() {
			return f, nil
		}
		if f.visible {
			switch msg.String() {
			case "up", "ctrl+p":
				if f.selected > 0 {
					f.selected--
				}
				return f, nil
			case "down", "ctrl+n":
				if f.selected < len(f.suggestions)-1 {
					f.selected++
				}
				return f, nil
			case "enter", "tab":
				f.applySelection()
				return f, nil
			case "esc":
				f.hideSuggestions()
				return f, nil
			}
		}

		var cmd tea.Cmd
		f.textarea, cmd = f.textarea.Update(msg)
		searchCmd := f.refreshSuggestions()
		return f, tea.Batch(cmd, searchCmd)
	}

	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	return f, cmd
}

// refreshSuggestions inspects the trailing mention token and either
// hides the list or issues a sequenced search for the fragment.
func (f *Field) refreshSuggestions() tea.Cmd {
	fragment, ok := trailingFragment(f.textarea.Value())
	if !ok || fragment == "" {
		f.hideSuggestions()
		return nil
	}

	f.seq++
	seq := f.seq
	id := f.id
	users := f.users
	return func() tea.Msg {
		usernames, err := users.SearchUsernames(context.Background(), fragment)
		return SuggestionsMsg{FieldID: id, Seq: seq, Usernames: usernames, Err: err}
	}
}

// applySelection splices the chosen username over the trailing
// @fragment token and hides the list.
func (f *Field) applySelection() {
	if f.selected < 0 || f.selected >= len(f.suggestions) {
		f.hideSuggestions()
		return
	}
	username := f.suggestions[f.selected]
	value := f.textarea.Value()
	loc := trailingMentionRe.FindStringIndex(value)
	if loc != nil {
		f.textarea.SetValue(value[:loc[0]] + common.Mention(username))
	}
	f.hideSuggestions()
}

// trailingFragment extracts the word fragment of a trailing mention
// token. ok is false when the text does not end in a mention at all.
func trailingFragment(text string) (string, bool) {
	match := trailingMentionRe.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// View renders the textarea with the suggestion list, if visible,
// directly below and matched to the field's width.
func (f Field) View() string {
	var b strings.Builder
	b.WriteString(f.textarea.View())
	if !f.visible {
		return b.String()
	}

	width := f.textarea.Width()
	rows := make([]string, 0, len(f.suggestions))
	for i, username := range f.suggestions {
		row := common.TruncateLine("@"+username, width)
		if i == f.selected {
			row = common.SuggestionActiveStyle.Width(width).Render(row)
		} else {
			row = common.MentionStyle.Width(width).Render(row)
		}
		rows = append(rows, row)
	}
	b.WriteString("\n")
	b.WriteString(common.SuggestionBoxStyle.Width(width).Render(strings.Join(rows, "\n")))
	return b.String()
}
