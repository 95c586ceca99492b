package app

import (
	"context"

	"postdeck/domain"
)

// PostFilter narrows the post list the way the platform's browse page does.
type PostFilter struct {
	Query  string // Free-text search across title, content and author
	Author string // Username prefix filter
	Page   int    // 1-based page number; zero means first page
}

// LikeState is the server-confirmed like state of a post.
type LikeState struct {
	Liked bool
	Count int
}

// PostService reads posts and performs post-level actions on the platform.
type PostService interface {
	// FetchPosts returns posts matching the filter, newest first.
	FetchPosts(ctx context.Context, filter PostFilter) ([]domain.Post, error)

	// FetchPost returns a single post with its comment thread.
	FetchPost(ctx context.Context, id int) (domain.Post, []domain.Comment, error)

	// ToggleLike flips the viewer's like on a post and returns the
	// server-confirmed state. The client never computes the new state
	// locally.
	ToggleLike(ctx context.Context, id int) (LikeState, error)

	// RequestPDF asks the platform to generate a PDF of the post.
	// It returns the server's status message.
	RequestPDF(ctx context.Context, id int) (string, error)
}
