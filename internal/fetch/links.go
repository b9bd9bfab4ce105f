package fetch

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// DiscoverRegisterLinks fetches a council index page and returns the
// absolute URLs of the register PDFs it links to, in document order.
// Duplicate links are returned once.
func (c *Client) DiscoverRegisterLinks(ctx context.Context, indexURL string) ([]string, error) {
	body, err := c.FetchDocument(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(indexURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse index URL")
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse index page")
	}

	var links []string
	seen := make(map[string]bool)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if link, ok := pdfLink(base, attributeValue(n, "href")); ok && !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links, nil
}

// pdfLink resolves an href against the index page URL and reports whether
// it points at a PDF.
func pdfLink(base *url.URL, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "mailto:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)

	if !strings.HasSuffix(strings.ToLower(resolved.Path), ".pdf") {
		return "", false
	}
	return resolved.String(), true
}

func attributeValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
