package detail

import "postdeck/domain"

// row is one visible line-item in the thread: a top-level comment or a
// nested reply.
type row struct {
	comment domain.Comment
	depth   int
}

// rows flattens the two-level thread in display order: top-level
// comments as served (newest first), each followed by its replies
// (oldest first).
func (m Model) rows() []row {
	out := make([]row, 0, len(m.thread))
	for _, c := range m.thread {
		out = append(out, row{comment: c, depth: 0})
		for _, r := range c.Replies {
			out = append(out, row{comment: r, depth: 1})
		}
	}
	return out
}

// selectedComment returns the comment under the cursor, if the cursor
// is on a comment row at all.
func (m Model) selectedComment() (domain.Comment, bool) {
	rows := m.rows()
	idx := m.cursor - 1
	if idx < 0 || idx >= len(rows) {
		return domain.Comment{}, false
	}
	return rows[idx].comment, true
}

// findComment looks a comment up by ID anywhere in the thread.
func (m Model) findComment(id int) (domain.Comment, bool) {
	for _, c := range m.thread {
		if c.ID == id {
			return c, true
		}
		for _, r := range c.Replies {
			if r.ID == id {
				return r, true
			}
		}
	}
	return domain.Comment{}, false
}

// setCommentContent rewrites a comment's rendered content in place.
func (m *Model) setCommentContent(id int, content string) {
	for i := range m.thread {
		if m.thread[i].ID == id {
			m.thread[i].Content = content
			return
		}
		for j := range m.thread[i].Replies {
			if m.thread[i].Replies[j].ID == id {
				m.thread[i].Replies[j].Content = content
				return
			}
		}
	}
}

// isOwn reports whether the viewer authored the comment.
func (m Model) isOwn(c domain.Comment) bool {
	return m.viewer != "" && c.Author == m.viewer
}

// commentSlots is how many comment rows fit under the post card.
func (m Model) commentSlots() int {
	slots := (m.height - 16) / 4
	if slots < 3 {
		slots = 3
	}
	return slots
}

func (m *Model) ensureCursorVisible() {
	rows := len(m.rows())
	if m.cursor > rows {
		m.cursor = rows
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor == 0 {
		m.start = 0
		return
	}
	idx := m.cursor - 1
	slots := m.commentSlots()
	if idx < m.start {
		m.start = idx
	}
	if idx >= m.start+slots {
		m.start = idx - slots + 1
	}
	if m.start < 0 {
		m.start = 0
	}
}
