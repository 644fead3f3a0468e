package crawler

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/NoamNol/geoscraper/internal/model"
)

// mapAnchorText is the visible text that marks the second anchor of a
// location pair. The directory encodes each location as two adjacent
// anchors inside a list item: the name link and a literal "map" link
// whose target carries the coordinates.
const mapAnchorText = "map"

// descriptionElementID is the id of the page region holding a location's
// description on its own detail page.
const descriptionElementID = "place-description"

// Parser extracts links and location records from a parsed page.
// It is bound to the URL of the page being parsed, which anchors both
// relative-link resolution and the in-scope subtree check.
//
// Design decision: We use golang.org/x/net/html and walk the node tree
// directly rather than pulling in a CSS selector library because the two
// extraction contracts only need element names, one class and one id.
// The site-specific matching is confined to this type so it can be swapped.
type Parser struct {
	// baseURL is the URL of the page being parsed.
	baseURL *url.URL
}

// ParseResult contains everything extracted from one page scan.
type ParseResult struct {
	// Links are resolved child URLs inside the page's own subtree:
	// same authority and a path at or below the page's path.
	Links []string

	// Locations are the "name + map" pairs found on the page that carried
	// parseable coordinates. Each has exactly one point at this stage.
	Locations []*model.Location
}

// NewParser creates a parser bound to the given page URL.
func NewParser(pageURL string) (*Parser, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse runs both extraction scans over the parsed page.
// The scans are read-only; calling Parse twice on the same page yields
// the same result.
func (p *Parser) Parse(doc *html.Node) *ParseResult {
	result := &ParseResult{
		Links:     make([]string, 0),
		Locations: make([]*model.Location, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if link, ok := p.inScopeLink(getAttr(n, "href")); ok {
					result.Links = append(result.Links, link)
				}
			case "li":
				if loc := p.locationFromListItem(n); loc != nil {
					result.Locations = append(result.Locations, loc)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result
}

// inScopeLink resolves an href against the page URL and reports whether the
// target stays inside the page's subtree. Only deeper-or-equal paths under
// the same authority qualify; sideways and upward links are dropped so the
// crawl is bounded to the subtree under the starting URL.
func (p *Parser) inScopeLink(href string) (string, bool) {
	resolved := p.resolveURL(href)
	if resolved == "" {
		return "", false
	}

	u, err := url.Parse(resolved)
	if err != nil {
		return "", false
	}
	if !strings.EqualFold(u.Host, p.baseURL.Host) {
		return "", false
	}
	if !strings.HasPrefix(u.Path, p.baseURL.Path) {
		return "", false
	}
	return resolved, true
}

// locationFromListItem inspects one list item for a "name + map" anchor pair.
// A pair yields a location only when the second anchor reads "map" and its
// target carries parseable coordinates; anything else yields nil silently,
// since most list items legitimately hold no location.
func (p *Parser) locationFromListItem(li *html.Node) *model.Location {
	anchors := childAnchors(li)
	if len(anchors) != 2 || nodeText(anchors[1]) != mapAnchorText {
		return nil
	}

	nameHref := getAttr(anchors[0], "href")
	if nameHref == "" {
		return nil
	}
	locURL := p.resolveURL(nameHref)
	if locURL == "" {
		return nil
	}

	point, ok := pointFromMapURL(getAttr(anchors[1], "href"))
	if !ok {
		return nil
	}

	return model.NewLocation(locURL, nodeText(anchors[0]), point)
}

// pointFromMapURL parses coordinates out of a map link target.
//
// A map target looks like "/#lang=en&lat=-14.260057&lon=-170.649948&z=13&m=w".
// That is not a legal URL query, so everything before the literal "lat" is
// stripped and the remainder is read as a conventional query string. Missing
// or unparseable lat/lon means no point, not an error.
func pointFromMapURL(mapHref string) (model.GeoPoint, bool) {
	idx := strings.Index(mapHref, "lat")
	if idx < 0 {
		return model.GeoPoint{}, false
	}

	values, err := url.ParseQuery(mapHref[idx:])
	if err != nil {
		return model.GeoPoint{}, false
	}

	latStr := values.Get("lat")
	lonStr := values.Get("lon")
	if latStr == "" || lonStr == "" {
		return model.GeoPoint{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return model.GeoPoint{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return model.GeoPoint{}, false
	}

	return model.GeoPoint{Lon: lon, Lat: lat}, true
}

// FindListingLink scans the page's navigation listing for an anchor whose
// visible text equals the search name, ignoring case and encoding form.
// It returns the resolved target URL of the first match.
func (p *Parser) FindListingLink(doc *html.Node, searchName string) (string, bool) {
	var found string

	var walk func(n *html.Node, inListing bool) bool
	walk = func(n *html.Node, inListing bool) bool {
		if n.Type == html.ElementNode {
			if hasClass(n, "linkslist") {
				inListing = true
			}
			if inListing && n.Data == "a" {
				href := getAttr(n, "href")
				if href != "" && caselessEqual(strings.TrimSpace(nodeText(n)), searchName) {
					found = p.resolveURL(href)
					return found != ""
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c, inListing) {
				return true
			}
		}
		return false
	}
	walk(doc, false)

	return found, found != ""
}

// DescriptionText returns the text of the page's description region, if any.
// This is the single metadata field enrichment currently extracts.
func (p *Parser) DescriptionText(doc *html.Node) (string, bool) {
	node := findByID(doc, descriptionElementID)
	if node == nil {
		return "", false
	}
	text := strings.TrimSpace(nodeText(node))
	return text, text != ""
}

// resolveURL resolves a relative URL against the page URL.
// Non-navigable schemes and bare fragments resolve to "".
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

// childAnchors collects all anchor elements beneath a node in document order.
func childAnchors(n *html.Node) []*html.Node {
	var anchors []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			anchors = append(anchors, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return anchors
}

// nodeText concatenates all text nodes beneath a node.
func nodeText(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}

// findByID returns the first element with the given id attribute.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && getAttr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// hasClass reports whether an element's class attribute contains the given
// class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(getAttr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
