package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"postdeck/infra/blogapi"
	"postdeck/infra/config"
	"postdeck/infra/session"
	"postdeck/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: postdeck [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// openLogger writes debug output to a file. The terminal belongs to the
// UI, so nothing may log to stdout or stderr while it runs.
func openLogger(path string) (*log.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.New(f)
	logger.SetLevel(log.DebugLevel)
	logger.SetReportTimestamp(true)
	return logger, func() { f.Close() }
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("postdeck %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
	}

	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger(cfg.LogPath)
	defer closeLog()

	// 2. Build infrastructure. A missing cookie file just means an
	// anonymous, read-only session.
	jar, err := session.LoadJar(cfg.CookiesPath, cfg.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cookies: %v\n", err)
		os.Exit(1)
	}

	client := blogapi.NewClient(cfg.BaseURL, jar.HTTPJar(), jar, logger)

	// 3. Build services (concrete types satisfy app.* interfaces).
	postSvc := blogapi.NewPostService(client)
	commentSvc := blogapi.NewCommentService(client)
	userSvc := blogapi.NewUserService(client)

	// Resolve the signed-in username up front so views can tell the
	// viewer's own comments apart. Anonymous sessions get an empty name.
	viewer := ""
	if jar.HasSession() {
		viewer, err = userSvc.CurrentUsername(context.Background())
		if err != nil {
			logger.Warn("could not resolve current user", "err", err)
			viewer = ""
		}
	}

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Posts:    postSvc,
		Comments: commentSvc,
		Users:    userSvc,
		Logger:   logger,
		Viewer:   viewer,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "postdeck: %v\n", err)
		os.Exit(1)
	}
}
