package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application-level configuration.
type Config struct {
	BaseURL     string // e.g. "https://blog.example.com"
	CookiesPath string // Path to the session cookie file
	LogPath     string // Path to the debug log file
}

// Load reads configuration from environment variables.
//
//	POSTDECK_BASE_URL: platform base URL (default: http://localhost:8000)
//	POSTDECK_COOKIES:  path to cookie file (default: ~/.config/postdeck/cookies.json)
//	POSTDECK_LOG:      path to log file (default: ~/.config/postdeck/postdeck.log)
func Load() (Config, error) {
	base := os.Getenv("POSTDECK_BASE_URL")
	if base == "" {
		base = "http://localhost:8000"
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid POSTDECK_BASE_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return Config{}, fmt.Errorf("invalid POSTDECK_BASE_URL: only http and https are allowed")
	}
	base = strings.TrimRight(parsed.String(), "/")

	cookiesPath := os.Getenv("POSTDECK_COOKIES")
	logPath := os.Getenv("POSTDECK_LOG")
	if cookiesPath == "" || logPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if cookiesPath == "" {
			cookiesPath = filepath.Join(home, ".config", "postdeck", "cookies.json")
		}
		if logPath == "" {
			logPath = filepath.Join(home, ".config", "postdeck", "postdeck.log")
		}
	}

	return Config{
		BaseURL:     base,
		CookiesPath: cookiesPath,
		LogPath:     logPath,
	}, nil
}
