package markdown

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// ExtractText reduces sanitized HTML to the plain text the search evaluator
// matches against. Element boundaries collapse to single spaces so words
// from adjacent blocks do not concatenate.
func ExtractText(sanitized []byte) string {
	doc, err := html.Parse(bytes.NewReader(sanitized))
	if err != nil {
		// Sanitized input should always parse; fall back to the raw bytes
		// rather than losing the note from search.
		return strings.Join(strings.Fields(string(sanitized)), " ")
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(trimmed)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
