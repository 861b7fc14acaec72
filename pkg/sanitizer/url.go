package sanitizer

import (
	"html"
	"net/url"
	"strings"
	"unicode"
)

// DefaultSchemes is the scheme allow-list applied when SanitizeURL is called
// without an explicit one.
var DefaultSchemes = []string{"http", "https", "mailto"}

// DeniedSchemes lists scheme tokens that are rejected wherever they appear in
// the path portion of a URL, regardless of position. A token on this list can
// only be admitted by naming it explicitly in the allow-list (the usual case
// is "data" for trusted inline images). The list is a package-level variable
// rather than a constant buried in logic so that it stays reviewable and
// test-covered as the smuggling landscape evolves.
var DeniedSchemes = []string{"javascript", "vbscript", "data", "file", "about", "blob"}

// SanitizeURL decides whether raw is safe to use as a navigation target,
// resource source or outbound link. It returns the trimmed original when the
// URL is judged safe and the empty string when it is rejected; it never
// rewrites an accepted value.
//
// Decisions are made on a normalised copy of the input: percent-decoding and
// HTML-entity decoding are repeated to a fixed point, then whitespace and
// control characters are stripped and the result is lowercased. This defeats
// "jav\tascript:", "%6Aavascript:", "&#106;avascript:", double encoding and
// mixed-case evasion.
//
// Fragment-only references and root- or document-relative paths are accepted.
// Scheme-relative references ("//host/...") are always rejected: they inherit
// the page's active scheme and are a common smuggling vector. A denied scheme
// token is rejected anywhere in the path, not just at position zero, so
// "./javascript:alert(1)" does not pass as a relative path. Absolute URLs are
// accepted only when their scheme is in the allow-list; when no schemes are
// given, DefaultSchemes applies.
func SanitizeURL(raw string, allowedSchemes ...string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if len(allowedSchemes) == 0 {
		allowedSchemes = DefaultSchemes
	}
	allowed := make(map[string]bool, len(allowedSchemes))
	for _, s := range allowedSchemes {
		allowed[strings.ToLower(s)] = true
	}

	inspect, ok := decodeForInspection(trimmed)
	if !ok || inspect == "" {
		return ""
	}

	// Scheme-relative references inherit whatever scheme the page is using.
	if strings.HasPrefix(inspect, "//") {
		return ""
	}
	if strings.HasPrefix(inspect, "#") {
		return trimmed
	}

	// A denied scheme token reachable by URL resolution is a smuggling
	// attempt even when the reference looks relative.
	pathPart := inspect
	if i := strings.IndexAny(pathPart, "?#"); i >= 0 {
		pathPart = pathPart[:i]
	}
	for _, deny := range DeniedSchemes {
		if allowed[deny] {
			continue
		}
		if containsSchemeToken(pathPart, deny) {
			return ""
		}
	}

	scheme := leadingScheme(inspect)
	if scheme == "" {
		// Root- or document-relative reference.
		return trimmed
	}
	if !allowed[scheme] {
		return ""
	}
	return trimmed
}

// decodeForInspection produces the lowercased, decoded, whitespace-free form
// of a URL used for scheme inspection only; accepted URLs are returned to the
// caller in their original form. Reports false when the input does not reach
// a decoding fixed point within the pass budget.
func decodeForInspection(s string) (string, bool) {
	for range maxNormalizePasses {
		next := html.UnescapeString(s)
		if decoded, err := url.PathUnescape(next); err == nil {
			next = decoded
		}
		// Stripping inside the loop lets the next pass decode escape
		// sequences that were themselves broken up by whitespace.
		// Lowercasing waits until the end: entity names are case-sensitive.
		next = strings.Map(func(r rune) rune {
			if r <= 0x20 || r == 0x7f || unicode.IsSpace(r) || unicode.Is(invisibleRunes, r) {
				return -1
			}
			// Browsers fold backslashes into slashes for special schemes,
			// so "\\host" and "/\host" resolve like "//host".
			if r == '\\' {
				return '/'
			}
			return r
		}, next)
		if next == s {
			return strings.ToLower(s), true
		}
		s = next
	}
	return "", false
}

// containsSchemeToken reports whether s contains scheme followed by a colon
// as a standalone token. An alphanumeric character immediately before the
// match means the token is the tail of a longer word ("profile:" must not
// count as "file:"), while any delimiter ("./javascript:") still does.
func containsSchemeToken(s, scheme string) bool {
	token := scheme + ":"
	for from := 0; ; {
		i := strings.Index(s[from:], token)
		if i < 0 {
			return false
		}
		i += from
		if i == 0 || !isAlphanumeric(s[i-1]) {
			return true
		}
		from = i + 1
	}
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// leadingScheme returns the scheme token of an absolute reference, or the
// empty string when the reference is relative. A colon that appears after the
// first path, query or fragment delimiter does not start a scheme.
func leadingScheme(s string) string {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return ""
	}
	if j := strings.IndexAny(s, "/?#"); j >= 0 && j < i {
		return ""
	}
	return s[:i]
}
