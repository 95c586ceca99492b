package domain

import "errors"

var (
	// ErrUnauthorized indicates a missing or expired session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds the platform limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")
)

// CommentMaxLen mirrors the platform's comment length limit.
const CommentMaxLen = 2000

// ServerError carries an application-level failure message reported by
// the platform, e.g. the "error" field of a comment-update response.
// The message is meant to be shown to the user verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

