package main

import (
	"fmt"

	"github.com/fwojciec/docchain"
)

// Run executes the read command. With no flags the whole document body is
// printed; --page selects one page and --start/--end a word range.
func (c *ReadCmd) Run(deps *Dependencies) error {
	if c.Page != 0 && (c.Start != 0 || c.End != 0) {
		fmt.Fprintln(deps.Stderr, "error: use either --page or --start/--end")
		return docchain.Errorf(docchain.EINVALID, "use either --page or --start/--end")
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	var text string
	switch {
	case c.Page != 0:
		text, err = doc.ReadPage(c.Page)
	case c.Start != 0 || c.End != 0:
		end := c.End
		if end == 0 {
			end = docchain.CountWords(doc.Content)
		}
		text, err = docchain.SliceWords(doc.Content, c.Start, end)
	default:
		text = doc.Content
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docchain.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}
