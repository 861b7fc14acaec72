package markup

// Policy defines what markup is considered safe. A Policy is constructed
// once, passed by reference and never mutated by the engine, so a single
// value can be shared by any number of concurrent callers.
type Policy struct {
	// AllowedTags lists the tag names kept in output. Any other element is
	// unwrapped: its children survive, the wrapper does not.
	AllowedTags []string

	// AllowedAttributes maps tag names to the attribute names kept on that
	// tag. The key "*" allows an attribute on every tag. Entries for style,
	// srcdoc or on*-named attributes are ignored; those are stripped
	// unconditionally.
	AllowedAttributes map[string][]string

	// AllowedSchemes lists the URL schemes permitted in URL-bearing
	// attributes. Fragment-only and root-relative references are always
	// permitted; scheme-relative references are always rejected.
	AllowedSchemes []string

	// DeleteWithContents lists tags whose entire subtree is dropped instead
	// of unwrapped, for content that is unsafe regardless of wrapper. Empty
	// in the default policy.
	DeleteWithContents []string

	// MaxDepth limits element nesting. Elements past the limit are dropped
	// with their contents. Zero applies the package ceiling.
	MaxDepth int
}

// Default returns a conservative display policy: basic inline formatting and
// paragraphs, links restricted to href and title, and http/https/mailto
// targets only. Suitable for remotely-sourced descriptions and captions.
func Default() *Policy {
	return &Policy{
		AllowedTags: []string{"a", "b", "i", "em", "strong", "p", "br"},
		AllowedAttributes: map[string][]string{
			"a": {"href", "title"},
		},
		AllowedSchemes: []string{"http", "https", "mailto"},
	}
}

// Strict returns a text-only policy: every tag is unwrapped and only the
// normalised text content survives.
func Strict() *Policy {
	return &Policy{}
}

// compiled is the lookup form of a Policy built once per Sanitize call.
type compiled struct {
	tags     map[string]bool
	attrs    map[string]map[string]bool
	del      map[string]bool
	schemes  []string
	maxDepth int
}

func (p *Policy) compile() *compiled {
	c := &compiled{
		tags:     make(map[string]bool, len(p.AllowedTags)),
		attrs:    make(map[string]map[string]bool, len(p.AllowedAttributes)),
		del:      make(map[string]bool, len(p.DeleteWithContents)),
		schemes:  p.AllowedSchemes,
		maxDepth: p.MaxDepth,
	}
	if c.maxDepth <= 0 || c.maxDepth > defaultMaxDepth {
		c.maxDepth = defaultMaxDepth
	}
	for _, tag := range p.AllowedTags {
		c.tags[lower(tag)] = true
	}
	for tag, names := range p.AllowedAttributes {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			set[lower(name)] = true
		}
		c.attrs[lower(tag)] = set
	}
	for _, tag := range p.DeleteWithContents {
		c.del[lower(tag)] = true
	}
	return c
}

func (c *compiled) attrAllowed(tag, name string) bool {
	if set, ok := c.attrs["*"]; ok && set[name] {
		return true
	}
	if set, ok := c.attrs[tag]; ok && set[name] {
		return true
	}
	return false
}
