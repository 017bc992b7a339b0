package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
	"github.com/fwojciec/docchain/fs"
	"github.com/fwojciec/docchain/goquery"
	"github.com/fwojciec/docchain/htmltomarkdown"
	dchttp "github.com/fwojciec/docchain/http"
	"github.com/fwojciec/docchain/readability"
	"github.com/fwojciec/docchain/rod"
	dcslog "github.com/fwojciec/docchain/slog"
	"github.com/fwojciec/docchain/trafilatura"
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
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docfetch"),
		kong.Description("Fetch a chain of documentation pages into one markdown file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	httpFetcher := dchttp.NewFetcher(dchttp.WithTimeout(cli.Timeout))
	var fetcher docchain.Fetcher = httpFetcher
	if cli.Render {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	}
	defer fetcher.Close()

	var extractor docchain.Extractor
	switch cli.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Crawler: &crawl.Crawler{
			Fetcher:     dcslog.NewLoggingFetcher(fetcher, logger),
			Extractor:   dcslog.NewLoggingExtractor(extractor, logger),
			Converter:   htmltomarkdown.NewConverter(),
			Successors:  dcslog.NewLoggingSuccessorFinder(goquery.NewSuccessorFinder(), logger),
			Images:      dcslog.NewLoggingImageFetcher(httpFetcher, logger),
			RateLimiter: crawl.NewDomainLimiter(cli.Rate),
			Concurrency: cli.Concurrency,
		},
		Writer: fs.NewWriter(cli.Dir),
	}

	cmd := &FetchCmd{
		URL:      cli.URL,
		MaxPages: cli.MaxPages,
		Title:    cli.Title,
		Preview:  cli.Preview,
	}

	return cmd.Run(deps)
}
