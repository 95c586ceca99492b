package app

import (
	"context"

	"postdeck/domain"
)

// CommentService creates, edits, and deletes comments on the platform.
type CommentService interface {
	// Add posts a new comment. A non-zero parentID makes it a reply to
	// that comment; the platform attaches it to the root of the thread
	// and tags the replied-to user.
	Add(ctx context.Context, postID int, content string, parentID int) (domain.Comment, error)

	// Update replaces a comment's content and returns the
	// server-confirmed rendered content. A server-reported failure is
	// returned as a *domain.ServerError.
	Update(ctx context.Context, id int, content string) (string, error)

	// Delete removes the viewer's own comment.
	Delete(ctx context.Context, id int) error
}
