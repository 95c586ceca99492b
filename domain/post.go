package domain

import "time"

// Post is a blog post as rendered on the platform.
type Post struct {
	ID           int
	Title        string
	Author       string // Username of the post author
	Content      string
	CreatedAt    time.Time
	Liked        bool // Whether the current viewer has liked the post
	LikeCount    int
	CommentCount int
}

// Comment is a comment on a post. The platform keeps a two-level
// structure: top-level comments carry their replies, replies carry the
// username they were addressed to.
type Comment struct {
	ID        int
	PostID    int
	Author    string
	Content   string // Rendered text; HTML entities are escaped server-side
	CreatedAt time.Time
	ParentID  int    // 0 for top-level comments
	RepliedTo string // Username this reply was addressed to, if any
	Replies   []Comment
}
