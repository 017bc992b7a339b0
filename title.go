package docchain

import (
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTitle is used when no title can be derived from the start URL.
const DefaultTitle = "Documentation"

// genericSegments are path segments that say nothing about the project.
var genericSegments = map[string]bool{
	"docs":          true,
	"documentation": true,
	"index":         true,
	"home":          true,
}

// pageExtensions are file extensions dropped from a path segment.
var pageExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".php":  true,
	".md":   true,
}

// DeriveTitle returns a human-readable document title for a crawl starting
// at startURL. A non-empty existingTitle is returned unchanged.
func DeriveTitle(startURL, existingTitle string) string {
	if existingTitle != "" {
		return existingTitle
	}

	u, err := url.Parse(startURL)
	if err != nil || u.Hostname() == "" {
		return DefaultTitle
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if pageExtensions[strings.ToLower(path.Ext(s))] {
			s = strings.TrimSuffix(s, path.Ext(s))
		}
		if s != "" {
			segments = append(segments, s)
		}
	}

	hosts := strings.Split(u.Hostname(), ".")
	if len(hosts) > 1 && hosts[0] == "www" {
		hosts = hosts[1:]
	}

	switch {
	case len(segments) > 0 && !genericSegments[strings.ToLower(segments[len(segments)-1])]:
		return humanize(segments[len(segments)-1])
	case len(hosts) >= 2:
		return humanize(hosts[len(hosts)-2])
	case len(segments) > 0:
		return humanize(segments[0])
	default:
		return humanize(strings.Join(hosts, "."))
	}
}

// humanize turns a slug such as "getting-started" into "Getting Started".
func humanize(slug string) string {
	if s, err := url.PathUnescape(slug); err == nil {
		slug = s
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	if len(words) == 0 {
		return DefaultTitle
	}
	return strings.Join(words, " ")
}
