package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docchain/crawl"
	"github.com/fwojciec/docchain/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Crawler *crawl.Crawler
	Writer  *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" help:"Start URL of the documentation chain"`
	Dir         string        `arg:"" optional:"" default:"." help:"Output directory (default: current directory)"`
	MaxPages    int           `short:"n" name:"max-pages" default:"10" help:"Maximum pages to visit (1-50)"`
	Title       string        `short:"t" help:"Document title (derived from the URL when empty)"`
	Preview     bool          `short:"p" help:"List the chain without writing files"`
	Concurrency int           `short:"c" default:"1" help:"Pages processed in parallel (max 4)"`
	Timeout     time.Duration `default:"10s" help:"Per-request timeout"`
	Rate        float64       `default:"2" help:"Requests per second per domain (0 disables)"`
	Render      bool          `help:"Render pages in a headless browser"`
	Extractor   string        `short:"e" enum:"selector,trafilatura,readability" default:"selector" help:"Content extractor (selector, trafilatura, readability)"`
	Verbose     bool          `short:"v" help:"Log crawl activity to stderr"`
}

// FetchCmd crawls a chain and writes it as one markdown file.
type FetchCmd struct {
	URL      string
	MaxPages int
	Title    string
	Preview  bool
}
