package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
	"github.com/fwojciec/docchain/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	path, err := fs.NewWriter(c.Dir).WriteDocument(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %q to %s\n", doc.Title, path)
	return nil
}
