package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMetaTitle(t *testing.T) {
	assert.Equal(t, "Roof Repair in Boise, ID | Summit Roofing", MetaTitle("Roof Repair", "Boise", "ID", "Summit Roofing"))
}

func TestMetaDescription(t *testing.T) {
	short := strings.Repeat("a", 155)
	assert.Equal(t, short, MetaDescription(short))

	long := strings.Repeat("b", 400)
	got := MetaDescription(long)
	assert.Equal(t, strings.Repeat("b", 155)+"...", got)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 158)
}

func TestMetaDescription_CountsRunes(t *testing.T) {
	text := strings.Repeat("é", 156)
	got := MetaDescription(text)
	assert.Equal(t, 158, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
