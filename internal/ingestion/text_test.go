package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t multiple    spaces")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	result := CleanText("Test with émojis 🚀 and spéciàl chàracters")

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
}

func TestRepairUTF8(t *testing.T) {
	assert.Equal(t, "café", RepairUTF8([]byte("café")))
	// "é" is 0xC3 0xA9; cutting after the first byte leaves an invalid tail
	assert.Equal(t, "caf", RepairUTF8([]byte("café")[:4]))
	assert.Equal(t, "ab", RepairUTF8([]byte{'a', 0xff, 'b'}))
}
