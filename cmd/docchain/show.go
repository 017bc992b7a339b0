package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	w := deps.Stdout
	fmt.Fprintf(w, "%s\n", doc.Title)
	fmt.Fprintf(w, "  id:      %s\n", doc.ID)
	fmt.Fprintf(w, "  source:  %s\n", doc.URL)
	fmt.Fprintf(w, "  words:   %s\n", crawl.FormatWords(doc.WordCount))
	fmt.Fprintf(w, "  hash:    %s\n", doc.ContentHash)
	fmt.Fprintf(w, "  updated: %s\n", doc.UpdatedAt.Format(time.DateTime))
	if doc.Image != "" {
		fmt.Fprintf(w, "  image:   %s\n", crawl.FormatBytes(len(doc.Image)))
	}
	if doc.Description != "" {
		fmt.Fprintf(w, "\n%s\n", doc.Description)
	}

	fmt.Fprintf(w, "\nPages (%d):\n", len(doc.Pages))
	for _, p := range doc.Pages {
		fmt.Fprintf(w, "  %2d. %s  [words %d-%d]\n      %s\n", p.PageNumber, p.Title, p.StartWord, p.EndWord, p.URL)
	}

	return nil
}
