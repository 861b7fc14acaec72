// Package sanitizer provides pure, stateless helpers that neutralise
// injection and evasion techniques in untrusted text before it reaches a
// rendering surface, a filesystem or a network request.
//
// The helpers are grouped conceptually into three areas:
//
//   - Strings – SanitizeString normalises arbitrary text to a safe form by
//     decoding HTML entities, applying Unicode NFC normalisation and removing
//     control and invisible characters, repeated to a fixed point so that
//     layered encodings cannot smuggle dangerous bytes past a single pass.
//
//   - URLs – SanitizeURL decides whether a string is safe to use as a
//     navigation target, resource source or outbound link. It is governed by
//     a scheme allow-list and defeats the usual smuggling tricks: case
//     variation, embedded whitespace, HTML-entity encoding, percent encoding,
//     double encoding and protocol-relative references.
//
//   - Filenames – SanitizeFilename produces a filesystem-safe,
//     collision-resistant name for persisted or downloaded artifacts, and
//     RandomFilename generates a fresh name for content that arrives without
//     a usable one.
//
// All helpers are total functions: none of them returns an error or panics.
// Hostile input is the expected case, not an exceptional one, so dangerous or
// malformed values degrade to a safe default (usually the empty string or a
// fallback name) instead of raising a fault. Callers that need to detect
// rejection compare the result against the empty string.
//
// The package holds no state between calls and performs no I/O, which makes
// every helper safe for concurrent use without coordination. The Apply and
// Compose helpers allow the creation of sanitisation pipelines:
//
//	clean := sanitizer.Compose(
//	    sanitizer.SanitizeString,
//	    strings.TrimSpace,
//	)
//
// # Usage
//
// Import the package using its module-qualified path:
//
//	import "github.com/dmitrymomot/websafe/pkg/sanitizer"
//
// Example – validating an outbound link:
//
//	href := sanitizer.SanitizeURL(userInput)
//	if href == "" {
//	    // rejected: fall back to plain text
//	}
//
// Example – naming a downloaded artifact:
//
//	name := sanitizer.SanitizeFilename(remoteName) // never empty, never colliding
//
// The scheme deny-list and the default allow-list are package-level variables
// rather than constants buried in logic, so that security review can audit
// them in one place. See the individual function documentation for details.
package sanitizer
