package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
	"github.com/fwojciec/docchain/gemini"
	"github.com/fwojciec/docchain/goquery"
	"github.com/fwojciec/docchain/htmltomarkdown"
	dchttp "github.com/fwojciec/docchain/http"
	"github.com/fwojciec/docchain/readability"
	"github.com/fwojciec/docchain/rod"
	dcslog "github.com/fwojciec/docchain/slog"
	"github.com/fwojciec/docchain/sqlite"
	"github.com/fwojciec/docchain/trafilatura"
	"google.golang.org/genai"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil they are wired from flags.
	DocumentService docchain.DocumentService
	Crawler         *crawl.Crawler
	TokenCounter    docchain.TokenCounter
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
		kong.Name("docchain"),
		kong.Description("Compile a chain of documentation pages into one indexed document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docchain --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, closeLog := newLogger(cli.Verbose, cli.LogFile, stderr)
	defer closeLog()
	deps.Logger = logger
	logger.Info("command", "name", cmd)

	if m.DocumentService == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCCHAIN_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		m.DocumentService = sqlite.NewDocumentService(m.DB)
	}
	deps.DB = m.DB
	deps.Documents = m.DocumentService

	if cmd == "crawl" {
		if m.Crawler == nil {
			crawler, closeCrawler, err := newCrawler(ctx, &cli.Crawl, logger, stderr)
			if err != nil {
				return err
			}
			defer closeCrawler()
			m.Crawler = crawler
		}
		deps.Crawler = m.Crawler

		if m.TokenCounter == nil {
			tc, err := gemini.NewTokenCounter("")
			if err != nil {
				logger.Warn("token counting disabled", "err", err)
			} else {
				m.TokenCounter = tc
			}
		}
		deps.Tokens = m.TokenCounter
	}

	return kongCtx.Run(deps)
}

// newCrawler wires a crawler from the crawl flags. The returned function
// releases the fetcher.
func newCrawler(ctx context.Context, c *CrawlCmd, logger *slog.Logger, stderr io.Writer) (*crawl.Crawler, func(), error) {
	httpFetcher := dchttp.NewFetcher(dchttp.WithTimeout(c.Timeout))

	var fetcher docchain.Fetcher = httpFetcher
	if c.Render {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}

	crawler := &crawl.Crawler{
		Fetcher:     dcslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   dcslog.NewLoggingExtractor(newExtractor(c.Extractor), logger),
		Converter:   htmltomarkdown.NewConverter(),
		Successors:  dcslog.NewLoggingSuccessorFinder(goquery.NewSuccessorFinder(), logger),
		Images:      dcslog.NewLoggingImageFetcher(httpFetcher, logger),
		RateLimiter: crawl.NewDomainLimiter(c.Rate),
		Concurrency: c.Concurrency,
	}

	if c.Summarize && c.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fetcher.Close()
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid or pass --no-summarize")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		crawler.Summarizer = dcslog.NewLoggingSummarizer(gemini.NewSummarizer(client, gemini.DefaultModel), logger)
	}

	return crawler, func() { _ = fetcher.Close() }, nil
}

// newExtractor returns the content extractor registered under name.
func newExtractor(name string) docchain.Extractor {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

// newLogger builds the program logger. Logs go to a rotating JSON file when
// logFile is set, to stderr as text when verbose, and nowhere otherwise.
func newLogger(verbose bool, logFile string, stderr io.Writer) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch {
	case logFile != "":
		w := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		return slog.New(slog.NewJSONHandler(w, opts)), func() { _ = w.Close() }
	case verbose:
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}
	default:
		return slog.New(slog.DiscardHandler), func() {}
	}
}

func defaultDBPath() string {
	if path := os.Getenv("DOCCHAIN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docchain.db"
	}
	dir := filepath.Join(home, ".docchain")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docchain.db")
}
