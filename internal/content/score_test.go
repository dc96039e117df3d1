package content

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// words builds "w w w ..." of length n.
func words(w string, n int) string {
	return strings.TrimSpace(strings.Repeat(w+" ", n))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t "))
	assert.Equal(t, 3, WordCount("one  two\nthree"))
}

func TestSEOScore_KeywordLocationLengthNoBonuses(t *testing.T) {
	text := "plumbing plumbing austin " + words("quality", 147)
	require.Equal(t, 150, WordCount(text))

	assert.Equal(t, 75, SEOScore(text, "Plumbing", "Austin"))
}

func TestSEOScore_KeywordStuffingPenalty(t *testing.T) {
	text := words("plumbing", 5)

	// only the keyword component applies: 15, not 30
	assert.Equal(t, 15, SEOScore(text, "plumbing", "Austin"))
	assert.Equal(t, 30, SEOScore(words("plumbing", 3), "plumbing", "Austin"))
}

func TestSEOScore_Components(t *testing.T) {
	base := words("filler", 10)

	tests := []struct {
		name string
		text string
		want int
	}{
		{"nothing", base, 0},
		{"exclamation", base + "!", 5},
		{"question", base + "?", 5},
		{"digit", base + " 24", 5},
		{"non-ascii digit earns nothing", base + " ٣", 0},
		{"call to action", base + " Call now", 10},
		{"contact", base + " Contact us", 10},
		{"lowercase call is not a cta", base + " call now", 0},
		{"all bonuses", base + " Call 24/7! Why wait?", 25},
		{"location only", base + " in Austin", 25},
		{"fifty words", words("filler", 50), 10},
		{"three hundred words", words("filler", 300), 20},
		{"over three hundred", words("filler", 301), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SEOScore(tt.text, "plumbing", "Austin"))
		})
	}
}

func TestSEOScore_Maximum(t *testing.T) {
	text := "Plumbing in Austin! Need help? Call 24/7. " + words("filler", 100)
	assert.Equal(t, 100, SEOScore(text, "plumbing", "austin"))
}

func TestSEOScore_EmptyKeywordAndLocation(t *testing.T) {
	assert.Equal(t, 0, SEOScore(words("filler", 5), "", ""))
}

func TestSEOScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"plumbing", "Austin", "Call", "!", "?", "7", "the", "Contact", "\n"}
	for i := 0; i < 500; i++ {
		n := rng.Intn(400)
		parts := make([]string, n)
		for j := range parts {
			parts[j] = alphabet[rng.Intn(len(alphabet))]
		}
		score := SEOScore(strings.Join(parts, " "), "plumbing", "austin")
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestKeywordDensity(t *testing.T) {
	text := "Drain cleaning in Austin. Best drain cleaning anywhere"
	d := KeywordDensity(text, []string{"drain cleaning", "Austin", "roofing"})

	assert.InDelta(t, 2.0/8.0*100, d["drain cleaning"], 0.001)
	// "austin." keeps its punctuation, so it is not an exact word match
	assert.Equal(t, 0.0, d["Austin"])
	assert.Equal(t, 0.0, d["roofing"])
}

func TestKeywordDensity_EmptyText(t *testing.T) {
	d := KeywordDensity("", []string{"x"})
	assert.Equal(t, 0.0, d["x"])
}
