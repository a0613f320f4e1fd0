package resolve

import (
	"strings"

	"golang.org/x/net/html"
)

// maxParagraphs caps how much of the article body we keep: the title and
// the leading paragraphs carry the claim being analyzed.
const maxParagraphs = 8

// extractArticle pulls the title and leading paragraph text out of a page
func extractArticle(htmlContent string) (title string, body string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", err
	}

	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside":
				return
			case "title":
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
				return
			case "h1":
				// an on-page headline beats the <title> tag's site suffix
				if t := strings.TrimSpace(nodeText(n)); t != "" {
					title = t
				}
				return
			case "p":
				if len(paragraphs) < maxParagraphs {
					if t := strings.TrimSpace(nodeText(n)); t != "" {
						paragraphs = append(paragraphs, t)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.Join(paragraphs, " "), nil
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
