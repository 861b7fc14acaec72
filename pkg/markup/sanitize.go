package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/websafe/pkg/sanitizer"
)

// defaultMaxDepth bounds element nesting and with it the walker's recursion.
// Elements past the ceiling are dropped with their contents rather than
// risking stack exhaustion on adversarially nested input.
const defaultMaxDepth = 100

// urlAttributes names the attributes whose value is resolved as a URL and
// must therefore pass scheme validation. Kept as a reviewable package-level
// variable; widen it here, not inside the walker.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"cite":       true,
	"action":     true,
	"poster":     true,
	"formaction": true,
	"background": true,
}

// Sanitize parses input as an HTML fragment and rebuilds it constrained to p.
// A nil policy applies Default. The function is total: it never returns an
// error, and input that cannot be parsed at all degrades to fully escaped
// text. Sanitizing the output again under the same policy returns it
// unchanged.
func Sanitize(input string, p *Policy) string {
	if input == "" {
		return ""
	}
	if p == nil {
		p = Default()
	}

	nodes, err := parseFragment(input)
	if err != nil {
		// Unparseable input is treated as hostile and demoted to text.
		return html.EscapeString(sanitizer.SanitizeString(input))
	}

	var buf strings.Builder
	c := p.compile()
	for _, n := range nodes {
		writeNode(&buf, c, n, 0)
	}
	return buf.String()
}

// StripTags removes all markup and returns the normalised text content only.
func StripTags(input string) string {
	if input == "" {
		return ""
	}
	nodes, err := parseFragment(input)
	if err != nil {
		return sanitizer.SanitizeString(input)
	}
	var buf strings.Builder
	for _, n := range nodes {
		writeText(&buf, n, 0)
	}
	return sanitizer.SanitizeString(buf.String())
}

func parseFragment(input string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	return html.ParseFragment(strings.NewReader(input), ctx)
}

func writeNode(buf *strings.Builder, c *compiled, n *html.Node, depth int) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(sanitizer.SanitizeString(n.Data)))

	case html.ElementNode:
		if depth >= c.maxDepth {
			// Fail closed: the unresolved remainder is dropped.
			return
		}
		tag := lower(n.Data)
		if c.del[tag] {
			return
		}
		if !c.tags[tag] {
			// Unwrap: the children survive, the wrapper does not.
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				writeNode(buf, c, child, depth+1)
			}
			return
		}

		attrs := keepAttributes(c, tag, n.Attr)
		buf.WriteByte('<')
		buf.WriteString(tag)
		for _, a := range attrs {
			buf.WriteByte(' ')
			buf.WriteString(a.Key)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(a.Val))
			buf.WriteByte('"')
		}
		if voidElements[tag] {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeNode(buf, c, child, depth+1)
		}
		buf.WriteString("</")
		buf.WriteString(tag)
		buf.WriteByte('>')

	case html.CommentNode, html.DoctypeNode:
		// Dropped entirely.

	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeNode(buf, c, child, depth)
		}
	}
}

// keepAttributes resolves the allow-list for tag, then applies the
// unconditional strip as a separate final stage so that no policy entry can
// weaken it, and validates URL-bearing values last.
func keepAttributes(c *compiled, tag string, attrs []html.Attribute) []html.Attribute {
	kept := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := lower(a.Key)
		if !c.attrAllowed(tag, name) {
			continue
		}
		kept = append(kept, html.Attribute{Key: name, Val: a.Val})
	}

	out := kept[:0]
	for _, a := range kept {
		if unconditionallyStripped(a.Key) {
			continue
		}
		if urlAttributes[a.Key] {
			val := sanitizer.SanitizeURL(a.Val, c.schemes...)
			if val == "" {
				// The attribute is dropped, never the node.
				continue
			}
			a.Val = val
		} else {
			a.Val = sanitizer.SanitizeString(a.Val)
		}
		out = append(out, a)
	}
	return out
}

// unconditionallyStripped reports whether an attribute belongs to one of the
// classes removed regardless of policy: inline styles, srcdoc, and anything
// named like an event handler. No allow-listed use case justifies the
// residual risk of these.
func unconditionallyStripped(name string) bool {
	if name == "style" || name == "srcdoc" {
		return true
	}
	return strings.HasPrefix(name, "on")
}

func writeText(buf *strings.Builder, n *html.Node, depth int) {
	if depth >= defaultMaxDepth {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(buf, child, depth+1)
	}
}

func lower(s string) string {
	return strings.ToLower(s)
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}
