package app

import "context"

// UserService looks up mentionable usernames and the viewer's identity.
type UserService interface {
	// CurrentUsername returns the authenticated viewer's username, or
	// an empty string for an anonymous session.
	CurrentUsername(ctx context.Context) (string, error)

	// SearchUsernames returns usernames matching the fragment typed
	// after an '@'.
	SearchUsernames(ctx context.Context, fragment string) ([]string, error)
}
