package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docchain.Errorf(docchain.EINVALID, "use --force to confirm deletion")
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		if docchain.ErrorCode(err) == docchain.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'docchain list' to see available documents.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q\n", doc.Title)
	return nil
}
