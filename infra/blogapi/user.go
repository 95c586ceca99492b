package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// userService implements app.UserService against the platform API.
type userService struct {
	client *Client
}

// NewUserService creates a UserService backed by the platform.
func NewUserService(client *Client) *userService {
	return &userService{client: client}
}

func (s *userService) CurrentUsername(_ context.Context) (string, error) {
	data, err := s.client.Get("/api/users/profile/")
	if err != nil {
		return "", fmt.Errorf("fetching profile: %w", err)
	}

	var resp struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parsing profile: %w", err)
	}
	return resp.Username, nil
}

func (s *userService) SearchUsernames(_ context.Context, fragment string) ([]string, error) {
	params := url.Values{}
	params.Set("q", fragment)

	data, err := s.client.Get("/api/users/search/?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("searching usernames: %w", err)
	}

	var usernames []string
	if err := json.Unmarshal(data, &usernames); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	return usernames, nil
}
