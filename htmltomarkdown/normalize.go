package htmltomarkdown

import "strings"

// maxBlankLines is the longest run of blank lines kept outside code blocks.
const maxBlankLines = 2

var unescaper = strings.NewReplacer(
	`\_`, `_`,
	"\\`", "`",
	"\u00a0", " ",
	"&nbsp;", " ",
)

// Normalize cleans converter output: it undoes escaping of underscores and
// backticks, replaces non-breaking spaces, collapses runs of blank lines,
// and puts a blank line before every fenced code block. Fenced code blocks,
// including ones indented inside list items, are left byte for byte.
func Normalize(markdown string) string {
	var out []string
	fence := ""
	blanks := 0

	for _, line := range strings.Split(markdown, "\n") {
		if fence != "" {
			out = append(out, line)
			if closesFence(line, fence) {
				fence = ""
			}
			continue
		}

		if marker := openingFence(line); marker != "" {
			fence = marker
			blanks = 0
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, line)
			continue
		}

		line = unescaper.Replace(line)
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks <= maxBlankLines {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, line)
	}

	return strings.Trim(strings.Join(out, "\n"), "\n")
}

// openingFence returns the backtick or tilde run opening a fenced code
// block at any indentation, or "" when line is not a fence. A backtick
// fence whose info string contains a backtick is inline code, not a fence.
func openingFence(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, c := range []string{"`", "~"} {
		n := len(trimmed) - len(strings.TrimLeft(trimmed, c))
		if n < 3 {
			continue
		}
		if c == "`" && strings.Contains(trimmed[n:], "`") {
			return ""
		}
		return strings.Repeat(c, n)
	}
	return ""
}

// closesFence reports whether line closes a block opened by fence: a run of
// the same character at least as long, at any indentation, with nothing after.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == ""
}
