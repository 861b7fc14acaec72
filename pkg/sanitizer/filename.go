package sanitizer

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// fallbackBaseName replaces names that are empty after stripping.
	fallbackBaseName = "file"

	// maxFilenameBytes bounds generated names to the common filesystem limit.
	maxFilenameBytes = 255
)

// filenameSeq disambiguates names generated within the same millisecond.
var filenameSeq atomic.Uint64

var (
	driveLetterRe = regexp.MustCompile(`^[a-zA-Z]:`)

	// illegalFileChars are rejected by at least one common filesystem.
	illegalFileChars = `<>:"/\|?*`
)

// SanitizeFilename produces a filesystem-safe, collision-resistant name from
// an untrusted one. Path components, traversal sequences, control characters
// and characters illegal on common filesystems are stripped; a name that is
// empty after stripping collapses to "file". Every call appends a uniqueness
// suffix derived from the current Unix-milli timestamp and a process-wide
// counter, so two sanitizations of colliding or empty inputs in the same
// session never produce the same output and a stored artifact cannot be
// silently overwritten. The result never exceeds 255 bytes; the extension is
// preserved when truncating. The function never returns the empty string.
func SanitizeFilename(name string) string {
	base := Apply(name,
		SanitizeString,
		stripPathComponents,
		stripIllegalFileChars,
		trimDotsAndSpaces,
	)
	if base == "" {
		base = fallbackBaseName
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = fallbackBaseName
	}

	suffix := "_" + strconv.FormatInt(time.Now().UnixMilli(), 36) +
		"-" + strconv.FormatUint(filenameSeq.Add(1), 36)

	// The extension is attacker-supplied too; cap it first so the fallback
	// stem and the suffix always fit.
	ext = trimToBytes(ext, maxFilenameBytes-len(fallbackBaseName)-len(suffix))
	for len(stem)+len(suffix)+len(ext) > maxFilenameBytes && stem != "" {
		r := []rune(stem)
		stem = string(r[:len(r)-1])
	}
	if stem == "" {
		stem = fallbackBaseName
	}

	return stem + suffix + ext
}

// RandomFilename generates a fresh collision-resistant name for content that
// arrives without a usable one (pasted blobs, inline attachments). The
// extension is sanitized with the same rules as SanitizeFilename and omitted
// entirely when nothing survives.
func RandomFilename(ext string) string {
	ext = Apply(ext,
		SanitizeString,
		stripPathComponents,
		stripIllegalFileChars,
		trimDotsAndSpaces,
	)
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return name
}

// stripPathComponents reduces a name to its final path element and drops
// traversal attempts and Windows drive letters.
func stripPathComponents(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = driveLetterRe.ReplaceAllString(name, "")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

func stripIllegalFileChars(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalFileChars, r) {
			return -1
		}
		return r
	}, name)
}

func trimDotsAndSpaces(name string) string {
	return strings.Trim(name, " .")
}

// trimToBytes shortens s rune by rune until it fits in n bytes.
func trimToBytes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for len(s) > n {
		r := []rune(s)
		s = string(r[:len(r)-1])
	}
	return s
}

