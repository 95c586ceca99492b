package blogapi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"postdeck/domain"
	"postdeck/infra/session"
)

// Client is a thin HTTP wrapper for the blog platform.
// It handles base URL construction, session cookies, and CSRF token
// injection on mutating requests.
type Client struct {
	baseURL string
	csrf    session.CSRFProvider
	http    *http.Client
	log     *log.Logger
}

// NewClient creates a platform API client. The jar carries the session
// cookies; the CSRF provider supplies the anti-forgery token attached
// to every mutating call.
func NewClient(baseURL string, jar http.CookieJar, csrf session.CSRFProvider, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		baseURL: baseURL,
		csrf:    csrf,
		http:    &http.Client{Jar: jar},
		log:     logger,
	}
}

// Get performs a GET request.
func (c *Client) Get(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, path)
}

// PostForm performs a form-encoded POST with CSRF and AJAX marker
// headers, the way the platform's own page scripts call its endpoints.
func (c *Client) PostForm(path string, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if err := c.setMutationHeaders(req); err != nil {
		return nil, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return c.do(req, path)
}

// Delete performs a DELETE request with the same CSRF and AJAX marker
// headers as PostForm.
func (c *Client) Delete(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if err := c.setMutationHeaders(req); err != nil {
		return nil, err
	}
	return c.do(req, path)
}

func (c *Client) setMutationHeaders(req *http.Request) error {
	token, err := c.csrf.CSRFToken()
	if err != nil {
		return fmt.Errorf("csrf: %w", err)
	}
	req.Header.Set("X-CSRFToken", token)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return nil
}

func (c *Client) do(req *http.Request, path string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", req.Method, "path", path, "err", err)
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Warn("request rejected", "method", req.Method, "path", path, "status", resp.StatusCode)
		return data, fmt.Errorf("API %s %s: %w", req.Method, path, domain.ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.log.Warn("request failed", "method", req.Method, "path", path, "status", resp.StatusCode)
		return data, fmt.Errorf("API %s %s returned %d", req.Method, path, resp.StatusCode)
	}

	return data, nil
}
