// Package goquery turns retailer listing HTML into candidate text blocks.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/camseed"
	"golang.org/x/net/html"
)

var _ camseed.ListingParser = (*ListingParser)(nil)

// Card layout selectors. Listings that use this layout expose the part
// number in its own element, so blocks carry it structurally.
const (
	cardSelector        = "div.item.row"
	cardPartSelector    = "p.item-part-number span"
	cardDescSelector    = "p.item-description"
	cardHeadingSelector = "h2, h3, h4"
)

// DefaultContainerSelectors are tried in order when a page has no cards.
// The first selector that matches anything wins.
func DefaultContainerSelectors() []string {
	return []string{
		`div[class*="product"]`,
		`div[class*="item"]`,
		"h2",
		`a[href*="/parts/"]`,
	}
}

// ListingParser parses listing pages with goquery.
type ListingParser struct {
	containers []string
}

// ParserOption configures a ListingParser.
type ParserOption func(*ListingParser)

// WithContainerSelectors overrides the heuristic container selectors.
func WithContainerSelectors(selectors []string) ParserOption {
	return func(p *ListingParser) {
		p.containers = selectors
	}
}

// NewListingParser creates a ListingParser.
func NewListingParser(opts ...ParserOption) *ListingParser {
	p := &ListingParser{containers: DefaultContainerSelectors()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts one block per product on the page, in document order.
func (p *ListingParser) Parse(htmlContent, baseURL string) ([]camseed.TextBlock, error) {
	var base *url.URL
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, camseed.Errorf(camseed.EINVALID, "invalid base URL: %v", err)
		}
		base = u
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, camseed.Errorf(camseed.EINVALID, "failed to parse HTML: %v", err)
	}

	if cards := doc.Find(cardSelector); cards.Length() > 0 {
		return parseCards(cards, base), nil
	}
	return p.parseContainers(doc, base), nil
}

func parseCards(cards *goquery.Selection, base *url.URL) []camseed.TextBlock {
	blocks := make([]camseed.TextBlock, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		partNumber := textOf(card.Find(cardPartSelector).First())
		if partNumber == "" {
			return
		}
		description := textOf(card.Find(cardDescSelector).First())

		var title, link string
		if a := productLink(card); a != nil {
			title = textOf(a)
			href, _ := a.Attr("href")
			link = resolveURL(base, href)
		}
		if title == "" {
			title = textOf(card.Find(cardHeadingSelector).First())
		}
		if title == "" {
			title = description
		}

		blocks = append(blocks, camseed.TextBlock{
			Title:      title,
			Text:       joinText(title, description),
			URL:        link,
			PartNumber: partNumber,
		})
	})
	return blocks
}

func (p *ListingParser) parseContainers(doc *goquery.Document, base *url.URL) []camseed.TextBlock {
	var containers *goquery.Selection
	for _, selector := range p.containers {
		found := doc.Find(selector)
		if found.Length() > 0 {
			containers = found
			break
		}
	}
	if containers == nil {
		return nil
	}

	var blocks []camseed.TextBlock
	var accepted []*html.Node
	containers.Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "h2" {
			if parent := sel.ParentsFiltered("div").First(); parent.Length() > 0 {
				sel = parent
			}
		}
		if sel.Length() == 0 || insideAny(sel.Get(0), accepted) {
			return
		}
		// Wrappers around several products are skipped; their children match too.
		if distinctProductLinks(sel) > 1 {
			return
		}

		a := productLink(sel)
		if a == nil {
			return
		}
		href, _ := a.Attr("href")
		link := resolveURL(base, href)
		if isReviewLink(link) {
			return
		}
		title := textOf(a)
		if title == "" {
			return
		}

		accepted = append(accepted, sel.Get(0))
		blocks = append(blocks, camseed.TextBlock{
			Title: title,
			Text:  joinText(title, textOf(sel)),
			URL:   link,
		})
	})
	return blocks
}

// productLink finds the anchor naming the product within sel. An anchor
// with a product class wins; otherwise the first parts link that is not
// a reviews link. sel itself qualifies when it is such an anchor.
func productLink(sel *goquery.Selection) *goquery.Selection {
	if goquery.NodeName(sel) == "a" {
		if href, ok := sel.Attr("href"); ok && isPartsLink(href) {
			return sel
		}
	}
	if a := sel.Find(`a[class*="product"], a[class*="Product"]`).First(); a.Length() > 0 {
		if href, _ := a.Attr("href"); !isReviewLink(href) {
			return a
		}
	}
	var found *goquery.Selection
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if isPartsLink(href) {
			found = a
			return false
		}
		return true
	})
	return found
}

func distinctProductLinks(sel *goquery.Selection) int {
	seen := make(map[string]struct{})
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if isPartsLink(href) {
			seen[href] = struct{}{}
		}
	})
	return len(seen)
}

func isPartsLink(href string) bool {
	return strings.Contains(href, "/parts/") && !isReviewLink(href)
}

func isReviewLink(href string) bool {
	return strings.Contains(strings.ToLower(href), "reviews")
}

// insideAny reports whether n is one of nodes or a descendant of one.
func insideAny(n *html.Node, nodes []*html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		for _, a := range nodes {
			if p == a {
				return true
			}
		}
	}
	return false
}

// textOf returns the text nodes under sel joined by single spaces,
// skipping script and style content.
func textOf(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func joinText(title, body string) string {
	if body == "" || body == title {
		return title
	}
	if strings.HasPrefix(body, title) {
		return body
	}
	return title + " " + body
}

// resolveURL resolves href against base. Returns href unchanged when base
// is nil and empty when href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
