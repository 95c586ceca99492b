package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
)

const (
	csrfCookieName    = "csrftoken"
	sessionCookieName = "sessionid"
)

// CSRFProvider supplies the anti-forgery token attached to every
// mutating request.
type CSRFProvider interface {
	CSRFToken() (string, error)
}

// Jar holds the platform session cookies loaded from disk. It wraps an
// http.CookieJar scoped to the platform origin and exposes the CSRF
// token stored in it.
type Jar struct {
	jar  *cookiejar.Jar
	base *url.URL
}

// LoadJar reads a cookie file (a JSON object of cookie name to value)
// and seeds a cookie jar for the given base URL. A missing file yields
// an empty jar: the viewer simply browses unauthenticated.
func LoadJar(path, baseURL string) (*Jar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	j := &Jar{jar: jar, base: base}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cookies from %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing cookie file %s: %w", path, err)
	}

	cookies := make([]*http.Cookie, 0, len(raw))
	for name, value := range raw {
		if name == "" || value == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	jar.SetCookies(base, cookies)

	return j, nil
}

// HTTPJar returns the underlying jar for use on an http.Client.
func (j *Jar) HTTPJar() http.CookieJar {
	return j.jar
}

// CSRFToken returns the anti-forgery token from the stored cookie jar.
func (j *Jar) CSRFToken() (string, error) {
	for _, c := range j.jar.Cookies(j.base) {
		if c.Name == csrfCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("no %s cookie in jar", csrfCookieName)
}

// HasSession reports whether a session cookie is present, i.e. whether
// the viewer is authenticated.
func (j *Jar) HasSession() bool {
	for _, c := range j.jar.Cookies(j.base) {
		if c.Name == sessionCookieName && c.Value != "" {
			return true
		}
	}
	return false
}
