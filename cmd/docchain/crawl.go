package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
	"github.com/schollz/progressbar/v3"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if deps.Crawler == nil {
		fmt.Fprintln(deps.Stderr, "error: crawler is not configured")
		return docchain.Errorf(docchain.EINTERNAL, "crawler is not configured")
	}

	title := c.Title
	if c.Update != "" {
		existing, err := deps.Documents.FindDocumentByID(deps.Ctx, c.Update)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
			return err
		}
		if title == "" {
			title = existing.Title
		}
	}

	req := docchain.CrawlRequest{
		StartURL:      c.URL,
		MaxPages:      c.MaxPages,
		ExistingTitle: title,
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	bar := newProgressBar(deps, req.MaxPages)
	agg, result, err := deps.Crawler.Compile(deps.Ctx, req, progressReporter(bar))
	_ = bar.Finish()

	if result != nil {
		for _, f := range result.Failures {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", f.URL, f.Reason)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	if agg.IsEmpty() {
		fmt.Fprintf(deps.Stderr, "error: no pages could be crawled from %s\n", c.URL)
		return docchain.Errorf(docchain.ENOTFOUND, "no pages could be crawled from %s", c.URL)
	}

	doc := docchain.NewDocument(agg)
	if c.Update != "" {
		doc, err = deps.Documents.ReplaceDocument(deps.Ctx, c.Update, doc)
	} else {
		err = deps.Documents.CreateDocument(deps.Ctx, doc)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	verb := "Saved"
	if c.Update != "" {
		verb = "Updated"
	}
	fmt.Fprintf(deps.Stdout, "%s %q (%s)\n", verb, doc.Title, doc.ID)

	summary := fmt.Sprintf("  %d pages, %s", len(doc.Pages), crawl.FormatWords(doc.WordCount))
	if len(doc.Pages) == 1 {
		summary = "  1 page, " + crawl.FormatWords(doc.WordCount)
	}
	if deps.Tokens != nil {
		if n, err := deps.Tokens.CountTokens(deps.Ctx, doc.Content); err == nil {
			summary += ", " + crawl.FormatTokens(n)
		}
	}
	fmt.Fprintln(deps.Stdout, summary)

	return nil
}

func newProgressBar(deps *Dependencies, maxPages int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxPages,
		progressbar.OptionSetWriter(deps.Stderr),
		progressbar.OptionSetDescription("crawling"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// progressReporter advances bar as pages are committed. A chain that ends
// before the page cap still finishes at 100%.
func progressReporter(bar *progressbar.ProgressBar) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			bar.Describe(crawl.TruncateURL(event.URL, 40))
			_ = bar.Set(event.Completed)
		case crawl.ProgressFinished:
			bar.ChangeMax(max(event.Completed, 1))
			_ = bar.Set(event.Completed)
		}
	}
}
