package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxNormalizePasses bounds every decode-to-fixed-point loop in this package.
// Input that still changes after this many passes is treated as hostile.
const maxNormalizePasses = 10

// invisibleRunes covers zero-width, bidi-control and other invisible
// characters used to smuggle content past pattern checks. Reviewed together
// with DeniedSchemes when the evasion landscape changes.
var invisibleRunes = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00ad, Hi: 0x00ad, Stride: 1}, // soft hyphen
		{Lo: 0x200b, Hi: 0x200f, Stride: 1}, // zero-width space through RTL mark
		{Lo: 0x202a, Hi: 0x202e, Stride: 1}, // bidi embedding controls
		{Lo: 0x2060, Hi: 0x2064, Stride: 1}, // word joiner through invisible plus
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // bidi isolate controls
		{Lo: 0xfeff, Hi: 0xfeff, Stride: 1}, // BOM / zero-width no-break space
	},
}

// SanitizeString normalises arbitrary untrusted text into a form safe for
// display or storage. Each pass decodes HTML entities, applies Unicode NFC
// normalisation and removes all ASCII control characters (including the null
// byte) and invisible runes. The pass repeats until the value stops changing,
// so an entity that decodes to a control character is caught even though it
// looks harmless before decoding. Input that never stabilises within the
// pass budget is rejected as a whole and yields the empty string.
func SanitizeString(s string) string {
	for range maxNormalizePasses {
		next := normalizePass(s)
		if next == s {
			return s
		}
		s = next
	}
	return ""
}

func normalizePass(s string) string {
	s = html.UnescapeString(s)
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		if unicode.Is(invisibleRunes, r) {
			return -1
		}
		return r
	}, s)
}
