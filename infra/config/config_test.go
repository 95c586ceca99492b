package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_ParsesEnvAndNormalizes(t *testing.T) {
	t.Setenv("POSTDECK_BASE_URL", "https://blog.example.com/")
	t.Setenv("POSTDECK_COOKIES", filepath.Join(t.TempDir(), "cookies.json"))
	t.Setenv("POSTDECK_LOG", filepath.Join(t.TempDir(), "postdeck.log"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "https://blog.example.com" {
		t.Fatalf("base URL must be normalized: %q", cfg.BaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTDECK_BASE_URL", "")
	t.Setenv("POSTDECK_COOKIES", "/tmp/cookies.json")
	t.Setenv("POSTDECK_LOG", "/tmp/postdeck.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected default base URL: %q", cfg.BaseURL)
	}
}

func TestLoad_RejectsBadSchemes(t *testing.T) {
	for _, raw := range []string{"ftp://blog.example.com", "blog.example.com", "://nope"} {
		t.Setenv("POSTDECK_BASE_URL", raw)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for base URL %q", raw)
		}
	}
}
