package view

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DescriptionText reduces a backend HTML job description to plain text
// suitable for the terminal, collapsing runs of whitespace. Input that is
// not parseable HTML is returned trimmed as-is.
func DescriptionText(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	// Paragraph-level elements become line breaks so the text keeps some
	// structure after tags are dropped.
	doc.Find("p, br, li, div, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		sel.AfterHtml("\n")
	})

	text := doc.Text()
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
