package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohmanhakim/dom-patcher/internal/textnorm"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Hello World", textnorm.Normalize("  Hello \t\n World  "))
}

func TestNormalize_DecodesEntities(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", textnorm.Normalize("Tom &amp; Jerry"))
	assert.Equal(t, "a < b", textnorm.Normalize("a &lt; b"))
}

func TestNormalize_NonBreakingSpaceCollapses(t *testing.T) {
	// &nbsp; decodes to U+00A0, which must collapse like any whitespace
	assert.Equal(t, "a b", textnorm.Normalize("a&nbsp;b"))
}

func TestNormalize_EmptyAndWhitespaceOnly(t *testing.T) {
	assert.Equal(t, "", textnorm.Normalize(""))
	assert.Equal(t, "", textnorm.Normalize("   \n\t  "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Hello World",
		"  Hello \t\n World  ",
		"Tom &amp; Jerry",
		"a&nbsp;b",
		"already normalized text",
	}

	for _, input := range inputs {
		once := textnorm.Normalize(input)
		twice := textnorm.Normalize(once)
		assert.Equal(t, once, twice, "Normalize must be idempotent for %q", input)
	}
}

func TestWords_SplitsNormalizedForm(t *testing.T) {
	assert.Equal(t, []string{"Talk", "to", "CRO", "Expert"}, textnorm.Words(" Talk  to\nCRO Expert "))
	assert.Nil(t, textnorm.Words("   "))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, textnorm.WordCount(""))
	assert.Equal(t, 0, textnorm.WordCount("  \t "))
	assert.Equal(t, 2, textnorm.WordCount("Hello   World"))
	assert.Equal(t, 4, textnorm.WordCount("Get Your CRO Analysis"))
}
