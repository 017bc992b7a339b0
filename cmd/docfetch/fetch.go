package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	req := docchain.CrawlRequest{
		StartURL:      c.URL,
		MaxPages:      c.MaxPages,
		ExistingTitle: c.Title,
	}
	if err := req.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	if c.Preview {
		return c.runPreview(deps, req)
	}
	return c.runFetch(deps, req)
}

// runPreview walks the chain and prints each attempted URL without writing.
func (c *FetchCmd) runPreview(deps *Dependencies, req docchain.CrawlRequest) error {
	result, err := deps.Crawler.Crawl(deps.Ctx, req, nil)
	if result != nil {
		failed := make(map[string]string, len(result.Failures))
		for _, f := range result.Failures {
			failed[f.URL] = f.Reason
		}
		for _, u := range result.Attempted {
			if reason, ok := failed[u]; ok {
				fmt.Fprintf(deps.Stdout, "%s  (skip: %s)\n", u, reason)
				continue
			}
			fmt.Fprintln(deps.Stdout, u)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	return nil
}

func (c *FetchCmd) runFetch(deps *Dependencies, req docchain.CrawlRequest) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "\r[%d/%d] %-40s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 40))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\rskip %s: %s\n", event.URL, docchain.FailureReason(event.Error))
		case crawl.ProgressFinished:
			fmt.Fprintf(deps.Stderr, "\r%60s\r", "")
		}
	}

	agg, _, err := deps.Crawler.Compile(deps.Ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	if agg.IsEmpty() {
		fmt.Fprintf(deps.Stderr, "error: no pages could be crawled from %s\n", c.URL)
		return docchain.Errorf(docchain.ENOTFOUND, "no pages could be crawled from %s", c.URL)
	}

	doc := docchain.NewDocument(agg)
	path, err := deps.Writer.WriteDocument(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s, %s) to %s\n",
		len(doc.Pages), crawl.FormatWords(doc.WordCount), crawl.FormatBytes(len(doc.Content)), path)
	return nil
}
