package markup_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/websafe/pkg/markup"
)

func TestSanitizeDefaultPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps allowed formatting",
			input:    "<p>Hello <b>world</b></p>",
			expected: "<p>Hello <b>world</b></p>",
		},
		{
			name:     "keeps safe link with title",
			input:    `<a href="https://example.com/a" title="x">link</a>`,
			expected: `<a href="https://example.com/a" title="x">link</a>`,
		},
		{
			name:     "renders void elements self-closed",
			input:    "line1<br>line2",
			expected: "line1<br/>line2",
		},
		{
			name:     "drops javascript href but keeps the node",
			input:    `<a href="javascript:alert(1)" title="x">link</a>`,
			expected: `<a title="x">link</a>`,
		},
		{
			name:     "drops protocol-relative href",
			input:    `<a href="//evil.example/x">link</a>`,
			expected: "<a>link</a>",
		},
		{
			name:     "drops entity-smuggled javascript href",
			input:    `<a href="jav&#x09;ascript:alert(1)">link</a>`,
			expected: "<a>link</a>",
		},
		{
			name:     "keeps fragment and relative hrefs",
			input:    `<a href="#section">a</a><a href="/docs">b</a>`,
			expected: `<a href="#section">a</a><a href="/docs">b</a>`,
		},
		{
			name:     "unwraps disallowed wrapper keeping its text",
			input:    "<div><b>keep</b> text</div>",
			expected: "<b>keep</b> text",
		},
		{
			name:     "unwraps image dropping nothing else",
			input:    `before<img src="x" onerror="alert(1)">after`,
			expected: "beforeafter",
		},
		{
			name:     "strips comments",
			input:    "a<!-- hidden -->b",
			expected: "ab",
		},
		{
			name:     "entity-encoded markup in text stays text",
			input:    "&lt;script&gt;x&lt;/script&gt;",
			expected: "&lt;script&gt;x&lt;/script&gt;",
		},
		{
			name:     "control characters removed from text",
			input:    "<p>a&#9;b\tc</p>",
			expected: "<p>abc</p>",
		},
		{
			name:     "lowercases tags and attribute names",
			input:    `<B>x</B><A HREF="https://example.com">y</A>`,
			expected: `<b>x</b><a href="https://example.com">y</a>`,
		},
		{
			name:     "handles empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "handles unclosed tag",
			input:    "<b>unclosed",
			expected: "<b>unclosed</b>",
		},
		{
			name:     "escapes stray angle bracket",
			input:    "1 < 2",
			expected: "1 &lt; 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := markup.Sanitize(tt.input, nil)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeUnwrapNotDelete(t *testing.T) {
	t.Parallel()

	policy := &markup.Policy{AllowedTags: []string{"b"}}

	result := markup.Sanitize("<script>ignored</script>visible<b>bold</b>", policy)

	assert.Equal(t, "ignoredvisible<b>bold</b>", result)
	assert.NotContains(t, result, "<script")
	assert.Contains(t, result, "visible")
	assert.Contains(t, result, "<b>bold</b>")
}

func TestSanitizeUnconditionalAttributeStrip(t *testing.T) {
	t.Parallel()

	// The policy explicitly allow-lists the forbidden attribute classes; the
	// final strip stage must win anyway.
	policy := &markup.Policy{
		AllowedTags: []string{"div", "iframe"},
		AllowedAttributes: map[string][]string{
			"div":    {"style", "onclick", "title"},
			"iframe": {"srcdoc"},
			"*":      {"onmouseover"},
		},
	}

	result := markup.Sanitize(
		`<div style="x" onclick="y" onmouseover="z" title="t">t</div><iframe srcdoc="<script>"></iframe>`,
		policy,
	)

	assert.NotContains(t, result, "style=")
	assert.NotContains(t, result, "onclick=")
	assert.NotContains(t, result, "onmouseover=")
	assert.NotContains(t, result, "srcdoc=")
	assert.Contains(t, result, `title="t"`)
}

func TestSanitizeWildcardAttributes(t *testing.T) {
	t.Parallel()

	policy := &markup.Policy{
		AllowedTags:       []string{"p", "b"},
		AllowedAttributes: map[string][]string{"*": {"title"}},
	}

	result := markup.Sanitize(`<p title="a"><b title="c" id="x">t</b></p>`, policy)

	assert.Equal(t, `<p title="a"><b title="c">t</b></p>`, result)
}

func TestSanitizeDeleteWithContents(t *testing.T) {
	t.Parallel()

	policy := &markup.Policy{
		AllowedTags:        []string{"b"},
		DeleteWithContents: []string{"script"},
	}

	result := markup.Sanitize("<script>secret()</script>ok<b>x</b>", policy)

	assert.Equal(t, "ok<b>x</b>", result)
	assert.NotContains(t, result, "secret")
}

func TestSanitizeDepthCeiling(t *testing.T) {
	t.Parallel()

	policy := &markup.Policy{AllowedTags: []string{"b"}}

	t.Run("shallow nesting survives", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat("<b>", 20) + "deep" + strings.Repeat("</b>", 20)
		assert.Contains(t, markup.Sanitize(input, policy), "deep")
	})

	t.Run("pathological nesting fails closed", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat("<b>", 150) + "deep" + strings.Repeat("</b>", 150)
		result := markup.Sanitize(input, policy)
		assert.NotContains(t, result, "deep")
	})

	t.Run("custom depth limit", func(t *testing.T) {
		t.Parallel()

		shallow := &markup.Policy{AllowedTags: []string{"b"}, MaxDepth: 2}
		result := markup.Sanitize("<b><b><b>x</b></b></b>", shallow)
		assert.Equal(t, "<b><b></b></b>", result)
	})
}

func TestSanitizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<p>Hello <b>world</b></p>",
		`<a href="https://example.com" title="t">link</a>`,
		"<script>ignored</script>visible<b>bold</b>",
		`<div style="x" onclick="y">t</div>`,
		"&lt;script&gt;x&lt;/script&gt;",
		"1 < 2 & 3 > 2",
		"<b>unclosed",
		"plain text",
		"a<!-- c -->b",
		strings.Repeat("<b>", 150) + "deep" + strings.Repeat("</b>", 150),
	}

	policies := map[string]*markup.Policy{
		"default": markup.Default(),
		"strict":  markup.Strict(),
		"custom":  {AllowedTags: []string{"b", "div"}},
	}

	for name, policy := range policies {
		for _, input := range inputs {
			once := markup.Sanitize(input, policy)
			twice := markup.Sanitize(once, policy)
			assert.Equal(t, once, twice,
				"policy %s input %q must reach a fixed point", name, input)
		}
	}
}

func TestSanitizeStrictPolicy(t *testing.T) {
	t.Parallel()

	result := markup.Sanitize(`<p>text <a href="https://x.example">link</a></p>`, markup.Strict())

	assert.Equal(t, "text link", result)
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips markup keeping text",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "decodes entities",
			input:    "a &amp; b",
			expected: "a & b",
		},
		{
			name:     "handles plain text",
			input:    "plain",
			expected: "plain",
		},
		{
			name:     "handles empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, markup.StripTags(tt.input))
		})
	}
}
