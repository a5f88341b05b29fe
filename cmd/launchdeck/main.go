package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/launchdeck/launchdeck/internal/config"
	"github.com/launchdeck/launchdeck/internal/exporter"
	"github.com/launchdeck/launchdeck/internal/importer"
	"github.com/launchdeck/launchdeck/internal/launcher"
	"github.com/launchdeck/launchdeck/internal/linkcheck"
	"github.com/launchdeck/launchdeck/internal/logger"
	"github.com/launchdeck/launchdeck/internal/model"
	"github.com/launchdeck/launchdeck/internal/picker"
	"github.com/launchdeck/launchdeck/internal/reconcile"
	"github.com/launchdeck/launchdeck/internal/search"
	"github.com/launchdeck/launchdeck/internal/storage"
	"github.com/launchdeck/launchdeck/internal/store"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: launchdeck add <url> [title] [category]\n")
				os.Exit(1)
			}
			runAdd(os.Args[2:])
			return
		case "scan":
			runScan()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: launchdeck import <file.html|file.csv|file.json>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		case "due":
			runDue()
			return
		default:
			// Treat as search query (join all remaining args)
			runPicker(strings.Join(os.Args[1:], " "))
			return
		}
	}

	// No args - open the picker over everything
	runPicker("")
}

func printHelp() {
	help := `launchdeck - bookmark manager and application launcher

Usage:
  launchdeck                     Open the quick-launch picker
  launchdeck <query>             Search bookmarks and apps, then launch
  launchdeck add <url> [title] [category]
                                 Add a bookmark
  launchdeck scan                Rescan installed applications
  launchdeck import <file>       Import bookmarks (.html, .csv, .json)
  launchdeck export [path]       Export bookmarks (format from extension)
  launchdeck check               Check bookmark URLs for dead links
  launchdeck due                 List bookmarks with elapsed reminders
  launchdeck help                Show this help

Picker keys:
  up/down, ctrl+p/n   Move selection
  enter               Launch selection
  ctrl+y              Copy URL or path to clipboard
  esc                 Quit

Data Storage:
  ~/.config/launchdeck/state.json (or launchdeck.db)
`
	fmt.Print(help)
}

// env wires the composition root: one store instance per process, injected
// into everything that needs it.
type env struct {
	cfg    *config.Config
	log    logger.Logger
	store  *store.Store
	launch launcher.Launcher
}

func setup() *env {
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, !cfg.LogJSON)

	rulesPath := cfg.RulesFile
	if rulesPath == "" {
		rulesPath, err = config.DefaultRulesPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error locating rules file: %v\n", err)
			os.Exit(1)
		}
	}
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		log.Warn("ignoring unreadable rules file", logger.Err(err))
		rules = &config.Rules{}
	}

	gateway, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	st := store.New(gateway, reconcile.NewMatcher(rules.Aliases), log)
	st.LoadFromStorage()
	st.SeedCategoryRules(rules.Categories)

	return &env{
		cfg:    cfg,
		log:    log,
		store:  st,
		launch: launcher.NewExecLauncher(cfg.ScanDirs),
	}
}

// runPicker searches bookmarks and applications and launches the selection.
func runPicker(query string) {
	e := setup()
	defer e.log.Sync()

	state := e.store.GetState()
	items := search.Items(state)

	if query != "" {
		results := search.Find(items, query)
		if len(results) == 0 {
			fmt.Printf("Nothing found for '%s'\n", query)
			return
		}
		if len(results) == 1 {
			launchResult(e, results[0])
			return
		}
	}

	p := picker.New(items, query)
	program := tea.NewProgram(p)
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
		os.Exit(1)
	}

	final := finalModel.(picker.Picker)
	if !final.Confirmed() {
		return
	}
	if result, ok := final.Selected(); ok {
		launchResult(e, result)
	}
}

// launchResult launches a picked item and records the use.
func launchResult(e *env, result search.Result) {
	ctx := context.Background()

	switch result.Item.Kind {
	case search.KindBookmark:
		b := result.Item.Bookmark
		fmt.Printf("Opening: %s\n", b.Title)
		if _, err := e.store.RecordVisit(b.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record visit: %v\n", err)
		}
		if err := e.launch.OpenURL(ctx, b.URL); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", b.URL, err)
			os.Exit(1)
		}
	case search.KindApplication:
		a := result.Item.Application
		fmt.Printf("Launching: %s\n", a.Name)
		if _, err := e.store.RecordLaunch(a.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record launch: %v\n", err)
		}
		if err := e.launch.Launch(ctx, a.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error launching %s: %v\n", a.Name, err)
			os.Exit(1)
		}
	}
}

// runAdd handles the add subcommand.
func runAdd(args []string) {
	e := setup()
	defer e.log.Sync()

	rawURL := args[0]
	title := ""
	category := ""
	if len(args) >= 2 {
		title = args[1]
	}
	if len(args) >= 3 {
		category = args[2]
	}
	if title == "" {
		title = titleFromURL(rawURL)
	}

	bookmark, err := e.store.AddBookmark(model.NewBookmarkParams{
		Title:    title,
		URL:      rawURL,
		Category: category,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding bookmark: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Added %s (%s) in %s\n", bookmark.Title, bookmark.URL, bookmark.Category)
}

// titleFromURL falls back to the host when no title was given.
func titleFromURL(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if parsed, err := url.Parse(raw); err == nil && parsed.Host != "" {
		return strings.TrimPrefix(parsed.Host, "www.")
	}
	return raw
}

// runScan rescans installed applications and merges them into state.
func runScan() {
	e := setup()
	defer e.log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	before := len(e.store.GetState().Applications)

	scanned, err := e.launch.ScanApplications(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning applications: %v\n", err)
		os.Exit(1)
	}

	merged := e.store.ApplyScan(launcher.Records(scanned))

	// Best-effort icon resolution for records that still lack one.
	for _, app := range merged {
		if app.LocalIconPath != "" || app.Path == "" {
			continue
		}
		icon, err := e.launch.ExtractIcon(ctx, app.Path)
		if err != nil || icon == nil {
			continue
		}
		// Old icon is kept on failure; only found icons are applied.
		_, _ = e.store.SetApplicationIcon(app.ID, icon.IconURL, icon.IconPath)
	}

	fmt.Printf("Scanned %d applications (%d known before, %d after merge)\n",
		len(scanned), before, len(merged))
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	e := setup()
	defer e.log.Sync()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var bookmarks []model.Bookmark
	var skipped int

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		bookmarks, skipped, err = importer.ParseHTML(file)
	case ".csv":
		bookmarks, skipped, err = importer.ParseCSV(file)
	case ".json":
		bookmarks, skipped, err = importer.ParseJSON(file)
	default:
		fmt.Fprintf(os.Stderr, "Unsupported import format: %s\n", filePath)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", filePath, err)
		os.Exit(1)
	}

	added, duplicates, err := e.store.ImportBookmarks(bookmarks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d bookmarks", added)
	if duplicates > 0 {
		fmt.Printf(" (%d duplicates skipped)", duplicates)
	}
	if skipped > 0 {
		fmt.Printf(" (%d invalid entries skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	e := setup()
	defer e.log.Sync()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath("html")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	state := e.store.GetState()

	var err error
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".csv":
		err = writeFile(outputPath, func(f *os.File) error {
			return exporter.ExportCSV(f, state.Bookmarks)
		})
	case ".json":
		err = writeFile(outputPath, func(f *os.File) error {
			return exporter.ExportJSON(f, state.Bookmarks)
		})
	default:
		html := exporter.ExportHTML(state.Bookmarks, state.Categories)
		err = os.WriteFile(outputPath, []byte(html), 0644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(state.Bookmarks), outputPath)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runCheck handles the check subcommand.
func runCheck() {
	e := setup()
	defer e.log.Sync()

	state := e.store.GetState()
	if len(state.Bookmarks) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	fmt.Printf("Checking %d bookmarks...\n", len(state.Bookmarks))
	results := linkcheck.CheckAll(
		state.Bookmarks,
		e.cfg.CheckConcurrency,
		10*time.Second,
		e.cfg.CheckExcludeDomains,
		func(completed, total int) {
			fmt.Printf("\r%d/%d", completed, total)
		},
	)
	fmt.Println()

	healthy := 0
	for _, r := range results {
		switch r.Status {
		case linkcheck.Healthy:
			healthy++
		case linkcheck.Dead:
			fmt.Printf("DEAD        %-40s %s (%d)\n", r.Bookmark.Title, r.Bookmark.URL, r.StatusCode)
		case linkcheck.Unreachable:
			fmt.Printf("UNREACHABLE %-40s %s (%s)\n", r.Bookmark.Title, r.Bookmark.URL, r.Error)
		}
	}
	fmt.Printf("%d checked, %d healthy\n", len(results), healthy)
}

// runDue lists bookmarks whose revisit reminder has elapsed.
func runDue() {
	e := setup()
	defer e.log.Sync()

	now := time.Now()
	due := 0
	for _, b := range e.store.GetState().Bookmarks {
		if b.ReminderDue(now) {
			fmt.Printf("%-40s %s\n", b.Title, b.URL)
			due++
		}
	}
	if due == 0 {
		fmt.Println("No reminders due")
	}
}
