package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/anthropic"
	"github.com/eflotty/facultysnipe/gemini"
	"github.com/eflotty/facultysnipe/goquery"
	snipehttp "github.com/eflotty/facultysnipe/http"
	"github.com/eflotty/facultysnipe/rod"
	"github.com/eflotty/facultysnipe/scrape"
	sniplog "github.com/eflotty/facultysnipe/slog"
	"github.com/eflotty/facultysnipe/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	TargetService facultysnipe.TargetService
	RecordService facultysnipe.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("facultysnipe"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'facultysnipe --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FACULTYSNIPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.TargetService = sqlite.NewTargetService(m.DB)
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Targets = m.TargetService
	deps.Records = m.RecordService

	// The scraping pipeline is only wired for "run"; every other command
	// is configuration CRUD against the database.
	if cmd == "run" {
		level := slog.LevelInfo
		if cli.Run.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

		staticFetcher := sniplog.NewLoggingFetcher(snipehttp.NewFetcher(), logger)

		var browserFetcher facultysnipe.Fetcher
		browser, err := rod.NewFetcher(logger)
		if err != nil {
			// Browser rendering is an escalation step, not a requirement.
			logger.Warn("browser unavailable, static fetching only", "err", err)
			fmt.Fprintln(stderr, "Hint: install Chrome or Chromium to enable rendered-page scraping")
		} else {
			defer browser.Close()
			browserFetcher = sniplog.NewLoggingFetcher(browser, logger)
		}

		ai, err := newAIExtractor(ctx, logger)
		if err != nil {
			return err
		}

		// 0.5 req/s keeps 2s between directory pages of the same domain.
		limiter := scrape.NewDomainLimiter(0.5)
		cascade := &scrape.Cascade{
			StaticFetcher:  staticFetcher,
			BrowserFetcher: browserFetcher,
			AI:             ai,
			Strategies:     goquery.DefaultStrategies(),
			Paginator:      scrape.NewPaginator(limiter, logger),
			Enricher:       scrape.NewEnricher(staticFetcher, logger),
			Logger:         logger,
		}

		registry := scrape.NewRegistry(sniplog.NewLoggingScraper(cascade, logger))

		deps.Monitor = &scrape.Monitor{
			Targets:  m.TargetService,
			Records:  sniplog.NewLoggingRecordService(m.RecordService, logger),
			Scrapers: registry,
			Notifier: newConsoleNotifier(stdout),
			Logger:   logger,
		}
	}

	return kongCtx.Run(deps)
}

// newAIExtractor selects the AI extraction backend from the environment.
// Anthropic wins when both keys are set; neither key means the cascade
// runs without its AI step.
func newAIExtractor(ctx context.Context, logger *slog.Logger) (facultysnipe.AIExtractor, error) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		return anthropic.NewExtractor(apiKey), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Debug("no AI API key set, cascade runs without AI extraction")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewExtractor(client), nil
}

func defaultDBPath() string {
	if path := os.Getenv("FACULTYSNIPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "facultysnipe.db"
	}
	dir := filepath.Join(home, ".facultysnipe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "facultysnipe.db")
}
