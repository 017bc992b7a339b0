package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
	"github.com/fwojciec/docchain/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents docchain.DocumentService
	Crawler   *crawl.Crawler
	Tokens    docchain.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log crawl activity to stderr"`
	LogFile string `name:"log-file" env:"DOCCHAIN_LOG_FILE" help:"Write JSON logs to a rotating file"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl a documentation chain into a stored document"`
	List   ListCmd   `cmd:"" help:"List stored documents"`
	Show   ShowCmd   `cmd:"" help:"Show a document and its page index"`
	Read   ReadCmd   `cmd:"" help:"Print a document, one page, or a word range"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored document"`
	Export ExportCmd `cmd:"" help:"Export a document as markdown"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Start URL of the documentation chain"`
	MaxPages    int           `short:"n" name:"max-pages" default:"10" help:"Maximum pages to visit (1-50)"`
	Title       string        `short:"t" help:"Document title (derived from the URL when empty)"`
	Update      string        `short:"u" placeholder:"ID" help:"Replace an existing document instead of creating one"`
	Concurrency int           `short:"c" default:"1" help:"Pages processed in parallel (max 4)"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	Rate        float64       `default:"2" help:"Requests per second per domain (0 disables)"`
	Render      bool          `help:"Render pages in a headless browser"`
	Extractor   string        `short:"e" enum:"selector,trafilatura,readability" default:"selector" help:"Content extractor (selector, trafilatura, readability)"`
	Summarize   bool          `default:"true" negatable:"" help:"Describe the document with Gemini when GEMINI_API_KEY is set"`
	APIKey      string        `name:"api-key" env:"GEMINI_API_KEY" hidden:"" help:"Gemini API key"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Title string `help:"Only list documents whose title contains this text"`
	Limit int    `help:"Maximum number of documents to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Page  int    `short:"p" help:"Print only this page number"`
	Start int    `help:"First word of a word range"`
	End   int    `help:"Word after the end of a word range"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" help:"Document ID"`
	Dir string `short:"o" default:"." help:"Output directory"`
}
