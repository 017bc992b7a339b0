// Package crawl follows a sequential chain of documentation pages and
// compiles them into one aggregated document.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docchain"
	"golang.org/x/sync/errgroup"
)

// DefaultSummaryTimeout bounds the optional summarization step.
const DefaultSummaryTimeout = 30 * time.Second

// MaxConcurrency caps the number of pages fetched in parallel.
const MaxConcurrency = 4

// Crawler walks a chain of "next" pages starting from one URL.
//
// Fetcher, Extractor, Converter and Successors are required. Images,
// RateLimiter and Summarizer are optional.
type Crawler struct {
	Fetcher     docchain.Fetcher
	Extractor   docchain.Extractor
	Converter   docchain.Converter
	Successors  docchain.SuccessorFinder
	Images      docchain.ImageFetcher
	RateLimiter docchain.DomainLimiter
	Summarizer  docchain.Summarizer

	// Concurrency is the number of queued pages processed in parallel.
	// Defaults to 1, which reproduces a strictly sequential crawl.
	Concurrency int

	// SummaryTimeout defaults to DefaultSummaryTimeout.
	SummaryTimeout time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	// Pages are the successfully processed pages in visitation order.
	Pages []*docchain.Page

	// Failures lists attempted URLs that could not be processed.
	Failures []docchain.Failure

	// Image is the cover image as a data URI, if one was found.
	Image string

	// Attempted lists every dequeued URL in dequeue order.
	Attempted []string
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// outcome holds the result of processing a single URL.
type outcome struct {
	url      string
	html     string
	page     *docchain.Page
	imageURL string
	err      error
}

// Crawl follows the chain described by req. It returns an error only for an
// invalid request or when ctx is canceled; in the latter case the pages
// collected so far are returned alongside the context error. A chain whose
// start page fails yields a Result with no pages.
func (c *Crawler) Crawl(ctx context.Context, req docchain.CrawlRequest, progress ProgressFunc) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	frontier := NewFrontier(req.StartURL)
	result := &Result{}

	progress(ProgressEvent{Type: ProgressStarted, Total: req.MaxPages})

	var err error
	for frontier.VisitedCount() < req.MaxPages {
		if err = ctx.Err(); err != nil {
			break
		}

		batch := frontier.NextBatch(min(c.concurrency(), req.MaxPages-frontier.VisitedCount()))
		if len(batch) == 0 {
			break
		}

		for _, out := range c.processBatch(ctx, batch) {
			if out.err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(out.err, ctxErr) {
					continue
				}
				failure := docchain.Failure{URL: out.url, Reason: docchain.FailureReason(out.err)}
				result.Failures = append(result.Failures, failure)
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: frontier.VisitedCount(),
					Total:     req.MaxPages,
					URL:       out.url,
					Error:     out.err,
				})
				continue
			}

			frontier.MarkVisited(out.url)
			result.Pages = append(result.Pages, out.page)

			if result.Image == "" && out.imageURL != "" {
				result.Image = c.fetchImage(ctx, out.imageURL)
			}

			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: frontier.VisitedCount(),
				Total:     req.MaxPages,
				URL:       out.url,
			})

			if frontier.VisitedCount() >= req.MaxPages {
				continue
			}
			successors, serr := c.Successors.FindSuccessors(out.url, out.html)
			if serr != nil {
				continue
			}
			for _, next := range successors {
				frontier.Push(next)
			}
		}
	}

	result.Attempted = frontier.AttemptedURLs()

	progress(ProgressEvent{
		Type:      ProgressFinished,
		Completed: frontier.VisitedCount(),
		Total:     req.MaxPages,
	})

	return result, err
}

// Compile crawls the chain and aggregates the visited pages into a single
// document with a word-span index. When a Summarizer is configured, the
// document description is filled from it; summarizer failures leave the
// description empty.
//
// On cancellation the partial document is returned with the context error.
func (c *Crawler) Compile(ctx context.Context, req docchain.CrawlRequest, progress ProgressFunc) (*docchain.AggregatedDocument, *Result, error) {
	result, err := c.Crawl(ctx, req, progress)
	if result == nil {
		return nil, nil, err
	}

	title := docchain.DeriveTitle(req.StartURL, req.ExistingTitle)
	doc := docchain.Aggregate(req.StartURL, title, result.Pages)
	doc.Image = result.Image
	if err != nil {
		return doc, result, err
	}

	if c.Summarizer != nil && !doc.IsEmpty() {
		doc.Description = c.summarize(ctx, doc)
	}

	return doc, result, nil
}

func (c *Crawler) summarize(ctx context.Context, doc *docchain.AggregatedDocument) string {
	timeout := c.SummaryTimeout
	if timeout <= 0 {
		timeout = DefaultSummaryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summary, err := c.Summarizer.Summarize(ctx, docchain.StripCodeFences(doc.Content), len(doc.Index))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(summary)
}

func (c *Crawler) concurrency() int {
	switch {
	case c.Concurrency <= 0:
		return 1
	case c.Concurrency > MaxConcurrency:
		return MaxConcurrency
	default:
		return c.Concurrency
	}
}

// processBatch processes URLs in parallel and returns their outcomes in
// the order of batch.
func (c *Crawler) processBatch(ctx context.Context, batch []string) []outcome {
	outcomes := make([]outcome, len(batch))
	if len(batch) == 1 {
		outcomes[0] = c.processURL(ctx, batch[0])
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(len(batch))
	for i, u := range batch {
		g.Go(func() error {
			outcomes[i] = c.processURL(ctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// processURL fetches, extracts and converts a single page.
func (c *Crawler) processURL(ctx context.Context, pageURL string) outcome {
	out := outcome{url: pageURL}

	if err := c.wait(ctx, pageURL); err != nil {
		out.err = err
		return out
	}

	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		out.err = err
		return out
	}

	extracted, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		out.err = err
		return out
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML, pageURL)
	if err != nil {
		out.err = err
		return out
	}
	if strings.TrimSpace(markdown) == "" {
		out.err = docchain.Errorf(docchain.ENOTFOUND, docchain.ReasonNoMainContent)
		return out
	}

	out.html = html
	out.imageURL = extracted.ImageURL
	out.page = &docchain.Page{
		URL:     pageURL,
		Title:   extracted.Title,
		Content: markdown,
	}
	return out
}

// fetchImage embeds the cover image. Failures yield no image.
func (c *Crawler) fetchImage(ctx context.Context, imageURL string) string {
	if c.Images == nil {
		return ""
	}
	if err := c.wait(ctx, imageURL); err != nil {
		return ""
	}
	dataURI, err := c.Images.FetchImage(ctx, imageURL)
	if err != nil {
		return ""
	}
	return dataURI
}

// wait applies the per-domain rate limit, if any.
func (c *Crawler) wait(ctx context.Context, rawURL string) error {
	if c.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return c.RateLimiter.Wait(ctx, u.Host)
}
