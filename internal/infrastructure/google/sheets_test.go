package google

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabTitle(t *testing.T) {
	t.Run("keeps short titles and adds a suffix", func(t *testing.T) {
		tab := tabTitle("Event Registration")

		require.True(t, strings.HasPrefix(tab, "Event Registration-"))
		assert.Len(t, strings.TrimPrefix(tab, "Event Registration-"), 8)
	})

	t.Run("truncates long titles to the rune limit", func(t *testing.T) {
		long := strings.Repeat("x", 60)
		tab := tabTitle(long)

		base := tab[:strings.LastIndex(tab, "-")]
		assert.Len(t, []rune(base), maxTabTitleRunes)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("あ", 40)
		tab := tabTitle(long)

		base := tab[:strings.LastIndex(tab, "-")]
		assert.Len(t, []rune(base), maxTabTitleRunes)
	})

	t.Run("same title twice yields distinct tabs", func(t *testing.T) {
		assert.NotEqual(t, tabTitle("Feedback"), tabTitle("Feedback"))
	})
}
