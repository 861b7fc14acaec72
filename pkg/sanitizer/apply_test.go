package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/websafe/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("applies transforms in order", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.Apply("  Hello\x00 World  ",
			sanitizer.SanitizeString,
			strings.TrimSpace,
			strings.ToLower,
		)
		assert.Equal(t, "hello world", result)
	})

	t.Run("returns value unchanged without transforms", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "unchanged", sanitizer.Apply("unchanged"))
	})
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(
		sanitizer.SanitizeString,
		strings.TrimSpace,
	)

	assert.Equal(t, "safe text", clean("  safe\x1f text "))
	assert.Equal(t, "", clean("\x00"))
}
