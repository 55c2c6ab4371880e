package quality

import (
	"bytes"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// inPageLinks renders the document and returns the fragment of every "#..." link, in order.
func (c *Checker) inPageLinks(src []byte) ([]string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, err
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" || !strings.HasPrefix(attr.Val, "#") {
					continue
				}
				frag := attr.Val[1:]
				if unescaped, err := url.PathUnescape(frag); err == nil {
					frag = unescaped
				}
				links = append(links, frag)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links, nil
}

func (c *Checker) checkLinks(r *Report, text string) {
	links, err := c.inPageLinks([]byte(text))
	if err != nil {
		r.add(CategoryLinks, 0, "render failed: %v", err)
		return
	}
	anchors := c.toc.Anchors(text)
	reported := make(map[string]bool)
	for _, frag := range links {
		if anchors[frag] || reported[frag] {
			continue
		}
		reported[frag] = true
		r.add(CategoryLinks, 0, "broken in-page link: #%s", frag)
	}
}
