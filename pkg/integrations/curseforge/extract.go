package curseforge

import (
	"strings"

	"golang.org/x/net/html"
)

// Selector is a minimal CSS selector: a chain of compound selectors joined
// by the descendant combinator, e.g. "main h1" or "h2.font-bold.text-lg".
// Each compound is an optional tag name followed by zero or more classes.
type Selector struct {
	raw   string
	chain []compound
}

type compound struct {
	tag     string
	classes []string
}

// MustSelector parses s and panics on an empty selector. It is meant for
// package-level selector tables.
func MustSelector(s string) Selector {
	var chain []compound
	for _, part := range strings.Fields(s) {
		segs := strings.Split(part, ".")
		c := compound{tag: strings.ToLower(segs[0])}
		for _, cls := range segs[1:] {
			if cls != "" {
				c.classes = append(c.classes, cls)
			}
		}
		chain = append(chain, c)
	}
	if len(chain) == 0 {
		panic("curseforge: empty selector")
	}
	return Selector{raw: s, chain: chain}
}

// String returns the selector source.
func (s Selector) String() string { return s.raw }

// Selectors are tried in order; the first that yields text wins.
var (
	ProjectSelectors = []Selector{
		MustSelector("h1.project-title"),
		MustSelector("h1.text-xl"),
		MustSelector("main h1"),
		MustSelector(".project-header h1"),
	}

	FileSelectors = []Selector{
		MustSelector("h2.font-bold.text-lg"),
		MustSelector("h3.text-primary-500"),
		MustSelector(".project-file-name"),
		MustSelector("main h1"),
		MustSelector(".project-file-page-header"),
	}
)

// ExtractText parses page and returns the trimmed text of the first element
// matched by the first selector that produces non-empty text. Internal runs
// of whitespace collapse to single spaces.
//
// A matched element whose text is empty does not end the search: the next
// element for the same selector is tried, then the next selector. A page
// whose only matches are empty reports false, so the caller's placeholder
// name is used instead of an empty one.
func ExtractText(page string, selectors []Selector) (string, bool) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	var elements []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			elements = append(elements, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, sel := range selectors {
		for _, n := range elements {
			if !sel.matches(n) {
				continue
			}
			if text := textContent(n); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// matches checks n against the rightmost compound, then walks up the
// ancestors for the rest of the chain.
func (s Selector) matches(n *html.Node) bool {
	last := len(s.chain) - 1
	if !s.chain[last].matches(n) {
		return false
	}
	i := last - 1
	for p := n.Parent; p != nil && i >= 0; p = p.Parent {
		if p.Type == html.ElementNode && s.chain[i].matches(p) {
			i--
		}
	}
	return i < 0
}

func (c compound) matches(n *html.Node) bool {
	if c.tag != "" && n.Data != c.tag {
		return false
	}
	if len(c.classes) == 0 {
		return true
	}
	have := strings.Fields(attr(n, "class"))
	for _, want := range c.classes {
		found := false
		for _, h := range have {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
