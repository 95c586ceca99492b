package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"postdeck/app"
	"postdeck/domain"
)

// postService implements app.PostService against the platform API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the platform.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

// wirePost is the subset of the platform's post payload we care about.
type wirePost struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Author       string        `json:"author"`
	CreatedAt    string        `json:"created_at"`
	Liked        bool          `json:"liked"` // Optional; stock deployments omit it and the toggle response corrects the state
	LikesCount   int           `json:"likes_count"`
	CommentCount int           `json:"comments_count"`
	Comments     []wireComment `json:"comments"`
}

type wireComment struct {
	ID        int           `json:"id"`
	Post      int           `json:"post"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Parent    *int          `json:"parent"`
	RepliedTo string        `json:"replied_to"`
	Replies   []wireComment `json:"replies"`
}

// wirePage is the platform's paginated list envelope.
type wirePage struct {
	Count   int        `json:"count"`
	Next    *string    `json:"next"`
	Results []wirePost `json:"results"`
}

func (s *postService) FetchPosts(_ context.Context, filter app.PostFilter) ([]domain.Post, error) {
	params := url.Values{}
	if filter.Query != "" {
		params.Set("query", filter.Query)
	}
	if filter.Author != "" {
		params.Set("author", filter.Author)
	}
	if filter.Page > 1 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	path := "/api/posts/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	data, err := s.client.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}

	var page wirePage
	if err := json.Unmarshal(data, &page); err != nil {
		// Unpaginated deployments return a plain array.
		var posts []wirePost
		if err2 := json.Unmarshal(data, &posts); err2 != nil {
			return nil, fmt.Errorf("parsing post list: %w", err)
		}
		page.Results = posts
	}

	posts := make([]domain.Post, 0, len(page.Results))
	for _, wp := range page.Results {
		posts = append(posts, wp.toDomain())
	}
	return posts, nil
}

func (s *postService) FetchPost(_ context.Context, id int) (domain.Post, []domain.Comment, error) {
	data, err := s.client.Get(fmt.Sprintf("/api/posts/%d/", id))
	if err != nil {
		return domain.Post{}, nil, fmt.Errorf("fetching post %d: %w", id, err)
	}

	var wp wirePost
	if err := json.Unmarshal(data, &wp); err != nil {
		return domain.Post{}, nil, fmt.Errorf("parsing post: %w", err)
	}

	comments := make([]domain.Comment, 0, len(wp.Comments))
	for _, wc := range wp.Comments {
		comments = append(comments, wc.toDomain())
	}
	return wp.toDomain(), comments, nil
}

func (s *postService) ToggleLike(_ context.Context, id int) (app.LikeState, error) {
	data, err := s.client.PostForm(fmt.Sprintf("/posts/%d/like/", id), nil)
	if err != nil {
		return app.LikeState{}, fmt.Errorf("toggling like: %w", err)
	}

	var resp struct {
		Liked     bool `json:"liked"`
		LikeCount int  `json:"like_count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return app.LikeState{}, fmt.Errorf("parsing like response: %w", err)
	}
	return app.LikeState{Liked: resp.Liked, Count: resp.LikeCount}, nil
}

func (s *postService) RequestPDF(_ context.Context, id int) (string, error) {
	data, err := s.client.PostForm(fmt.Sprintf("/api/posts/%d/generate-pdf/", id), nil)
	if err != nil {
		return "", fmt.Errorf("requesting pdf: %w", err)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parsing pdf response: %w", err)
	}
	if !resp.Success {
		return "", &domain.ServerError{Message: fallbackMessage(resp.Message, "PDF generation failed")}
	}
	return resp.Message, nil
}

func (wp wirePost) toDomain() domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, wp.CreatedAt)
	return domain.Post{
		ID:           wp.ID,
		Title:        wp.Title,
		Author:       wp.Author,
		Content:      wp.Content,
		CreatedAt:    createdAt,
		Liked:        wp.Liked,
		LikeCount:    wp.LikesCount,
		CommentCount: wp.CommentCount,
	}
}

func (wc wireComment) toDomain() domain.Comment {
	createdAt, _ := time.Parse(time.RFC3339, wc.CreatedAt)
	parentID := 0
	if wc.Parent != nil {
		parentID = *wc.Parent
	}
	replies := make([]domain.Comment, 0, len(wc.Replies))
	for _, r := range wc.Replies {
		replies = append(replies, r.toDomain())
	}
	return domain.Comment{
		ID:        wc.ID,
		PostID:    wc.Post,
		Author:    wc.Author,
		Content:   wc.Content,
		CreatedAt: createdAt,
		ParentID:  parentID,
		RepliedTo: wc.RepliedTo,
		Replies:   replies,
	}
}

func fallbackMessage(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
