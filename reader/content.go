package reader

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SplitParagraphs reduces a chapter body to its ordered paragraphs.
// Plain text splits on newlines; HTML bodies are flattened first (tags
// stripped, images dropped). Paragraphs empty after trimming are
// discarded; order is preserved.
func SplitParagraphs(body string) []string {
	if looksLikeHTML(body) {
		body = flattenHTML(body)
	}

	var paragraphs []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return paragraphs
}

func looksLikeHTML(body string) bool {
	return strings.Contains(body, "<p") || strings.Contains(body, "<br") || strings.Contains(body, "<div")
}

func flattenHTML(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("img").Remove()

	blocks := doc.Find("p")
	if blocks.Length() == 0 {
		return doc.Text()
	}

	var sb strings.Builder
	blocks.Each(func(i int, s *goquery.Selection) {
		sb.WriteString(s.Text())
		sb.WriteString("\n")
	})
	return sb.String()
}
