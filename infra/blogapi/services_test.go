package blogapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"postdeck/app"
	"postdeck/domain"
)

func appFilter(query string) app.PostFilter {
	return app.PostFilter{Query: query}
}

type staticCSRF string

func (s staticCSRF) CSRFToken() (string, error) { return string(s), nil }

type handlerRoundTripper struct {
	h http.Handler
}

func (rt handlerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := newResponseRecorder()
	rt.h.ServeHTTP(rec, req)
	return rec.response(req), nil
}

type responseRecorder struct {
	header http.Header
	body   strings.Builder
	code   int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{header: make(http.Header), code: http.StatusOK}
}

func (r *responseRecorder) Header() http.Header         { return r.header }
func (r *responseRecorder) Write(p []byte) (int, error) { return r.body.Write(p) }
func (r *responseRecorder) WriteHeader(statusCode int)  { r.code = statusCode }

func (r *responseRecorder) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: r.code,
		Header:     r.header.Clone(),
		Body:       io.NopCloser(strings.NewReader(r.body.String())),
		Request:    req,
	}
}

func newTestClient(h http.Handler) *Client {
	return &Client{
		baseURL: "http://blog.test",
		csrf:    staticCSRF("tok-csrf"),
		http:    &http.Client{Transport: handlerRoundTripper{h: h}},
		log:     log.New(io.Discard),
	}
}

func TestToggleLike_RequestShapeAndMapping(t *testing.T) {
	var gotPath, gotCSRF, gotMarker string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCSRF = r.Header.Get("X-CSRFToken")
		gotMarker = r.Header.Get("X-Requested-With")
		w.Write([]byte(`{"liked": true, "like_count": 5}`))
	})

	svc := NewPostService(newTestClient(h))
	state, err := svc.ToggleLike(context.Background(), 42)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if gotPath != "/posts/42/like/" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotCSRF != "tok-csrf" || gotMarker != "XMLHttpRequest" {
		t.Fatalf("missing csrf/ajax headers: csrf=%q marker=%q", gotCSRF, gotMarker)
	}
	if !state.Liked || state.Count != 5 {
		t.Fatalf("unexpected like state: %#v", state)
	}
}

func TestToggleLike_MalformedResponse(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login</html>"))
	})
	svc := NewPostService(newTestClient(h))
	if _, err := svc.ToggleLike(context.Background(), 1); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUpdateComment_Success(t *testing.T) {
	var gotBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"success": true, "updated_content": "fixed &lt;text&gt;"}`))
	})

	svc := NewCommentService(newTestClient(h))
	updated, err := svc.Update(context.Background(), 7, "  fixed <text>  ")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated != "fixed &lt;text&gt;" {
		t.Fatalf("unexpected updated content: %q", updated)
	}
	if gotBody != "content=fixed+%3Ctext%3E" {
		t.Fatalf("unexpected form body: %q", gotBody)
	}
}

func TestUpdateComment_ServerReportedFailure(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "Empty content."}`))
	})

	svc := NewCommentService(newTestClient(h))
	_, err := svc.Update(context.Background(), 7, "x")
	var serverErr *domain.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if serverErr.Message != "Empty content." {
		t.Fatalf("server message must pass through verbatim: %q", serverErr.Message)
	}
}

func TestUpdateComment_EmptyRejectedLocally(t *testing.T) {
	called := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	svc := NewCommentService(newTestClient(h))
	_, err := svc.Update(context.Background(), 7, "   ")
	if !errors.Is(err, domain.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if called {
		t.Fatalf("empty update must not hit the network")
	}
}

func TestAddComment_ReplyCarriesParent(t *testing.T) {
	var gotBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"id": 99, "post": 3, "author": "alice", "content": "@bob hi", "created_at": "2026-01-02T10:00:00Z", "parent": 7, "replied_to": "bob"}`))
	})

	svc := NewCommentService(newTestClient(h))
	c, err := svc.Add(context.Background(), 3, "@bob hi", 7)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(gotBody, "parent_id=7") {
		t.Fatalf("reply must carry parent_id: %q", gotBody)
	}
	if c.ID != 99 || c.ParentID != 7 || c.RepliedTo != "bob" {
		t.Fatalf("unexpected comment mapping: %#v", c)
	}
}

func TestDeleteComment_UsesDeleteMethod(t *testing.T) {
	var gotMethod, gotPath, gotCSRF, gotMarker string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCSRF = r.Header.Get("X-CSRFToken")
		gotMarker = r.Header.Get("X-Requested-With")
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"detail": "Comment deleted successfully."}`))
	})

	svc := NewCommentService(newTestClient(h))
	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Fatalf("unexpected method: %q", gotMethod)
	}
	if gotPath != "/api/comments/7/delete/" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotCSRF != "tok-csrf" || gotMarker != "XMLHttpRequest" {
		t.Fatalf("missing csrf/ajax headers: csrf=%q marker=%q", gotCSRF, gotMarker)
	}
}

func TestFetchPost_MapsNestedComments(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts/3/" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"id": 3, "title": "T", "content": "C", "author": "carol",
			"created_at": "2026-01-02T10:00:00Z",
			"liked": true, "likes_count": 2, "comments_count": 2,
			"comments": [
				{"id": 1, "post": 3, "author": "alice", "content": "top", "created_at": "2026-01-02T11:00:00Z", "parent": null,
				 "replies": [{"id": 2, "post": 3, "author": "bob", "content": "@alice yes", "created_at": "2026-01-02T12:00:00Z", "parent": 1, "replied_to": "alice"}]}
			]
		}`))
	})

	svc := NewPostService(newTestClient(h))
	post, comments, err := svc.FetchPost(context.Background(), 3)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if post.ID != 3 || !post.Liked || post.LikeCount != 2 {
		t.Fatalf("unexpected post: %#v", post)
	}
	if len(comments) != 1 || len(comments[0].Replies) != 1 {
		t.Fatalf("unexpected comment tree: %#v", comments)
	}
	if comments[0].Replies[0].ParentID != 1 || comments[0].Replies[0].RepliedTo != "alice" {
		t.Fatalf("unexpected reply mapping: %#v", comments[0].Replies[0])
	}
}

func TestFetchPosts_PaginatedAndPlainArray(t *testing.T) {
	paged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "go" {
			t.Errorf("query param not forwarded: %q", got)
		}
		w.Write([]byte(`{"count": 1, "next": null, "results": [{"id": 1, "title": "A", "author": "a", "created_at": "2026-01-02T10:00:00Z"}]}`))
	})
	svc := NewPostService(newTestClient(paged))
	posts, err := svc.FetchPosts(context.Background(), appFilter("go"))
	if err != nil || len(posts) != 1 || posts[0].Title != "A" {
		t.Fatalf("paginated fetch failed: %v %#v", err, posts)
	}

	plain := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 2, "title": "B", "author": "b", "created_at": "2026-01-02T10:00:00Z"}]`))
	})
	svc = NewPostService(newTestClient(plain))
	posts, err = svc.FetchPosts(context.Background(), appFilter(""))
	if err != nil || len(posts) != 1 || posts[0].Title != "B" {
		t.Fatalf("plain array fetch failed: %v %#v", err, posts)
	}
}

func TestSearchUsernames_RequestAndMapping(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/search/" || r.URL.Query().Get("q") != "bo" {
			t.Errorf("unexpected search request: %q", r.URL.String())
		}
		w.Write([]byte(`["bob", "bobby"]`))
	})

	svc := NewUserService(newTestClient(h))
	names, err := svc.SearchUsernames(context.Background(), "bo")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(names) != 2 || names[0] != "bob" || names[1] != "bobby" {
		t.Fatalf("unexpected usernames: %#v", names)
	}
}

func TestClient_MapsUnauthorized(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	svc := NewUserService(newTestClient(h))
	_, err := svc.CurrentUsername(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
