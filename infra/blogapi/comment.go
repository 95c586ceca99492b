package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"postdeck/domain"
)

// commentService implements app.CommentService against the platform API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the platform.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

func (s *commentService) Add(_ context.Context, postID int, content string, parentID int) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}
	if len(content) > domain.CommentMaxLen {
		return domain.Comment{}, domain.ErrCommentTooLong
	}

	form := url.Values{}
	form.Set("content", content)
	if parentID > 0 {
		form.Set("parent_id", strconv.Itoa(parentID))
	}

	data, err := s.client.PostForm(fmt.Sprintf("/api/posts/%d/comment/", postID), form)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}

	var wc wireComment
	if err := json.Unmarshal(data, &wc); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	return wc.toDomain(), nil
}

func (s *commentService) Update(_ context.Context, id int, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrEmptyComment
	}

	form := url.Values{}
	form.Set("content", content)

	data, httpErr := s.client.PostForm(fmt.Sprintf("/posts/comment/%d/edit/", id), form)

	// The endpoint reports application failures as JSON on non-2xx
	// statuses too, so parse the body before giving up on the request.
	var resp struct {
		Success        bool   `json:"success"`
		UpdatedContent string `json:"updated_content"`
		Error          string `json:"error"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		if httpErr != nil {
			return "", fmt.Errorf("updating comment: %w", httpErr)
		}
		return "", fmt.Errorf("parsing update response: %w", err)
	}

	if !resp.Success {
		return "", &domain.ServerError{Message: fallbackMessage(resp.Error, "Could not update comment")}
	}
	return resp.UpdatedContent, nil
}

func (s *commentService) Delete(_ context.Context, id int) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/comments/%d/delete/", id)); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
