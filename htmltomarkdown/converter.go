// Package htmltomarkdown converts extracted HTML to normalized Markdown
// using html-to-markdown.
package htmltomarkdown

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchain"
)

// Ensure Converter implements docchain.Converter at compile time.
var _ docchain.Converter = (*Converter)(nil)

// hardBreak stands in for <br> while the document passes through the
// converter, so the break survives whitespace collapsing. It is a
// private-use rune and is stripped from the input before substitution.
const hardBreak = "\uE000"

var hardBreakRe = regexp.MustCompile(`[ \t]*` + hardBreak + `[ \t]*\n?`)

// languagePrefixes are class token prefixes naming a code block language.
var languagePrefixes = []string{"language-", "lang-", "highlight-source-"}

var languageRe = regexp.MustCompile(`^[A-Za-z0-9_+#.-]+$`)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into normalized Markdown. Relative links
// and images resolve against pageURL when it is set.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docchain.Errorf(docchain.EINVALID, "empty HTML input")
	}

	prepared, err := prepare(html)
	if err != nil {
		return "", err
	}

	var result string
	if domain := domainOf(pageURL); domain != "" {
		result, err = c.conv.ConvertString(prepared, converter.WithDomain(domain))
	} else {
		result, err = c.conv.ConvertString(prepared)
	}
	if err != nil {
		return "", err
	}

	result = hardBreakRe.ReplaceAllString(result, "  \n")
	return Normalize(result), nil
}

// prepare rewrites the parts of the DOM the converter would otherwise lose:
// code block languages from theme-specific classes, and line breaks.
func prepare(html string) (string, error) {
	html = strings.ReplaceAll(html, hardBreak, "")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docchain.Errorf(docchain.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		pre.Find("br").ReplaceWithHtml("\n")

		lang := codeLanguage(pre)
		if lang == "" {
			return
		}
		if pre.Find("code").Length() == 0 {
			pre.WrapInnerHtml("<code></code>")
		}
		pre.Find("code").First().SetAttr("class", "language-"+lang)
	})

	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		if br.Closest("td, th").Length() > 0 {
			return
		}
		br.ReplaceWithHtml(hardBreak)
	})

	return doc.Find("body").Html()
}

// codeLanguage looks for a language class on the code element, the pre
// element, then the pre's ancestors.
func codeLanguage(pre *goquery.Selection) string {
	candidates := pre.Find("code").First().AddSelection(pre).AddSelection(pre.ParentsUntil("body"))
	var lang string
	candidates.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, class := range strings.Fields(sel.AttrOr("class", "")) {
			for _, prefix := range languagePrefixes {
				if l := strings.TrimPrefix(class, prefix); l != class && languageRe.MatchString(l) {
					lang = l
					return false
				}
			}
		}
		return true
	})
	return lang
}

func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
