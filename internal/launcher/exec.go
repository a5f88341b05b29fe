package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ExecLauncher implements Launcher with os/exec and the platform's
// application directories.
type ExecLauncher struct {
	// extraDirs are additional directories to scan for applications,
	// typically from the user's config.
	extraDirs []string
}

// NewExecLauncher creates an ExecLauncher. extraDirs may be nil.
func NewExecLauncher(extraDirs []string) *ExecLauncher {
	return &ExecLauncher{extraDirs: extraDirs}
}

// ScanApplications discovers installed applications. On Linux it parses
// .desktop entries, on macOS it lists /Applications bundles. Other
// platforms return ErrUnsupportedPlatform.
func (l *ExecLauncher) ScanApplications(ctx context.Context) ([]ScannedApp, error) {
	switch runtime.GOOS {
	case "linux":
		return l.scanDesktopEntries(ctx)
	case "darwin":
		return l.scanAppBundles(ctx)
	default:
		return nil, fmt.Errorf("application scan: %w", ErrUnsupportedPlatform)
	}
}

// desktopDirs returns the directories searched for .desktop files.
func (l *ExecLauncher) desktopDirs() []string {
	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	return append(dirs, l.extraDirs...)
}

func (l *ExecLauncher) scanDesktopEntries(ctx context.Context) ([]ScannedApp, error) {
	var apps []ScannedApp
	seen := make(map[string]bool)

	for _, dir := range l.desktopDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			app, ok := parseDesktopEntry(path)
			if !ok || seen[app.Path] {
				continue
			}
			seen[app.Path] = true
			apps = append(apps, app)
		}
	}

	return apps, nil
}

// parseDesktopEntry reads the [Desktop Entry] section of a .desktop file.
// Hidden entries (NoDisplay/Hidden) are skipped.
func parseDesktopEntry(path string) (ScannedApp, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScannedApp{}, false
	}

	app := ScannedApp{Path: path}
	inEntry := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "Name":
			if app.Name == "" {
				app.Name = value
			}
		case "Comment":
			app.Description = value
		case "Version":
			app.Version = value
		case "Icon":
			app.IconPath = value
		case "Categories":
			app.Category = displayCategory(value)
		case "NoDisplay", "Hidden":
			if value == "true" {
				return ScannedApp{}, false
			}
		case "Type":
			if value != "Application" {
				return ScannedApp{}, false
			}
		}
	}

	return app, app.Name != ""
}

// displayCategory maps freedesktop Categories= values to a display category.
func displayCategory(raw string) string {
	for _, c := range strings.Split(raw, ";") {
		switch c {
		case "WebBrowser", "Network", "Email":
			return "Internet"
		case "Development", "IDE", "TerminalEmulator":
			return "Development"
		case "AudioVideo", "Audio", "Video", "Player":
			return "Multimedia"
		case "Graphics", "Photography":
			return "Graphics"
		case "Office", "WordProcessor", "Spreadsheet":
			return "Office"
		case "Game":
			return "Games"
		case "Settings", "System":
			return "System"
		case "Utility":
			return "Utilities"
		}
	}
	return ""
}

func (l *ExecLauncher) scanAppBundles(ctx context.Context) ([]ScannedApp, error) {
	dirs := append([]string{"/Applications", "/System/Applications"}, l.extraDirs...)
	var apps []ScannedApp

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !strings.HasSuffix(entry.Name(), ".app") {
				continue
			}
			apps = append(apps, ScannedApp{
				Name: strings.TrimSuffix(entry.Name(), ".app"),
				Path: filepath.Join(dir, entry.Name()),
			})
		}
	}

	return apps, nil
}

// Launch starts an application by its scan path and does not wait for it.
func (l *ExecLauncher) Launch(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch {
	case runtime.GOOS == "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case strings.HasSuffix(path, ".desktop"):
		cmd = exec.CommandContext(ctx, "gio", "launch", path)
	default:
		cmd = exec.CommandContext(ctx, path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}
	return nil
}

// OpenURL opens a URL in the default browser.
func (l *ExecLauncher) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("open url: %w", ErrUnsupportedPlatform)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// iconThemeDirs are the places a bare .desktop Icon= name is resolved from.
var iconThemeDirs = []string{
	"/usr/share/icons/hicolor/256x256/apps",
	"/usr/share/icons/hicolor/128x128/apps",
	"/usr/share/icons/hicolor/64x64/apps",
	"/usr/share/icons/hicolor/48x48/apps",
	"/usr/share/pixmaps",
}

// ExtractIcon resolves the icon for an application path. Returns nil without
// error when no icon can be found; the caller keeps the old icon.
func (l *ExecLauncher) ExtractIcon(ctx context.Context, path string) (*Icon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasSuffix(path, ".desktop") {
		app, ok := parseDesktopEntry(path)
		if !ok || app.IconPath == "" {
			return nil, nil
		}
		if filepath.IsAbs(app.IconPath) {
			if _, err := os.Stat(app.IconPath); err == nil {
				return &Icon{IconPath: app.IconPath}, nil
			}
			return nil, nil
		}
		for _, dir := range iconThemeDirs {
			for _, ext := range []string{".png", ".svg", ".xpm"} {
				candidate := filepath.Join(dir, app.IconPath+ext)
				if _, err := os.Stat(candidate); err == nil {
					return &Icon{IconPath: candidate}, nil
				}
			}
		}
		return nil, nil
	}

	if runtime.GOOS == "darwin" && strings.HasSuffix(path, ".app") {
		candidate := filepath.Join(path, "Contents", "Resources", "AppIcon.icns")
		if _, err := os.Stat(candidate); err == nil {
			return &Icon{IconPath: candidate}, nil
		}
	}

	return nil, nil
}
