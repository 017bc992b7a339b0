package docchain

import (
	"regexp"
	"strings"
)

// SectionSeparator joins page sections in an aggregated document. It
// tokenizes to exactly one whitespace-delimited word.
const SectionSeparator = "\n\n---\n\n"

// FormatSection formats one page as an aggregated document section: a
// heading line with the page title, a source line, a blank line, then the
// page content. Uses the URL as heading when the title is empty.
func FormatSection(page *Page) string {
	header := page.Title
	if header == "" {
		header = page.URL
	}
	return "# " + header + "\nSource: " + page.URL + "\n\n" + page.Content
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// StripCodeFences removes fenced code blocks from markdown, leaving prose.
// An unterminated fence drops the rest of the input.
func StripCodeFences(markdown string) string {
	var sb strings.Builder
	fence := ""
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
			continue
		}
		if marker := fenceMarker(trimmed); marker != "" {
			fence = marker
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(blankRunRe.ReplaceAllString(sb.String(), "\n\n"))
}

// fenceMarker returns the opening run of backticks or tildes when line opens
// a fenced code block.
func fenceMarker(line string) string {
	for _, c := range []string{"`", "~"} {
		n := len(line) - len(strings.TrimLeft(line, c))
		if n >= 3 {
			return strings.Repeat(c, n)
		}
	}
	return ""
}
