package extractor

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// HeuristicStrategy fetches raw HTML and strips boilerplate itself: it
// prefers the <main> or <article> subtree, falls back to <body>, and skips
// navigation, footers, scripts, and ad-like containers while collecting
// paragraph text.
type HeuristicStrategy struct {
	client    *http.Client
	userAgent string
}

var _ Strategy = (*HeuristicStrategy)(nil)

// NewHeuristicStrategy shares the caller's HTTP client so its timeout bounds
// every download.
func NewHeuristicStrategy(client *http.Client, userAgent string) *HeuristicStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	return &HeuristicStrategy{client: client, userAgent: userAgent}
}

func (h *HeuristicStrategy) Name() string { return "heuristic" }

func (h *HeuristicStrategy) TryExtract(ctx context.Context, pageURL string) (string, error) {
	body, err := fetchHTML(ctx, h.client, pageURL, h.userAgent)
	if err != nil {
		return "", err
	}
	return textFromHTML(body), nil
}

// textFromHTML walks the parsed tree and collects readable text.
func textFromHTML(input []byte) string {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return ""
	}

	content := findFirst(root, "main")
	if content == nil {
		content = findFirst(root, "article")
	}
	if content == nil {
		content = findFirst(root, "body")
	}
	if content == nil {
		return ""
	}

	var builder strings.Builder
	collectText(&builder, content)
	return normalizeWhitespace(builder.String())
}

func findFirst(node *html.Node, tag string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(current *html.Node) {
		if found != nil {
			return
		}
		if current.Type == html.ElementNode && strings.EqualFold(current.Data, tag) {
			found = current
			return
		}
		for child := current.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
			if found != nil {
				return
			}
		}
	}
	walk(node)
	return found
}

func collectText(builder *strings.Builder, node *html.Node) {
	if node.Type == html.ElementNode {
		if isBoilerplateContainer(node) {
			return
		}
		switch strings.ToLower(node.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "form", "header":
			return
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			builder.WriteString("\n")
		}
	}

	if node.Type == html.TextNode {
		builder.WriteString(node.Data)
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(builder, child)
	}

	if node.Type == html.ElementNode {
		switch strings.ToLower(node.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			builder.WriteString("\n")
		}
	}
}

// isBoilerplateContainer flags elements whose id/class markers indicate
// cookie banners, consent dialogs, or ad slots.
func isBoilerplateContainer(node *html.Node) bool {
	for _, attr := range node.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" {
			continue
		}
		value := strings.ToLower(attr.Val)
		for _, marker := range []string{"cookie", "consent", "gdpr", "advert", "sidebar", "related-", "share-", "comment"} {
			if strings.Contains(value, marker) {
				return true
			}
		}
	}
	return false
}

var blankLines = regexp.MustCompile(`\n{3,}`)

func normalizeWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	joined := strings.Join(lines, "\n")
	joined = blankLines.ReplaceAllString(joined, "\n\n")
	return strings.TrimSpace(joined)
}
