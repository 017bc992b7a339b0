package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/crawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := docchain.DocumentFilter{Limit: c.Limit}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'docchain crawl' to create one.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  (%s)\n", d.ID, d.Title, d.URL, crawl.FormatWords(d.WordCount))
	}

	return nil
}
