package services

import (
	"testing"

	"seo-spinner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestCoveragePercent(t *testing.T) {
	assert.Equal(t, 0, coveragePercent(10, 0))
	assert.Equal(t, 50, coveragePercent(3, 6))
	assert.Equal(t, 33, coveragePercent(1, 3))
	// eight templates per pair
	assert.Equal(t, 800, coveragePercent(48, 6))
}

func TestKeywordFrequency(t *testing.T) {
	lists := []models.StringList{
		{"plumbing austin", "drain cleaning", " "},
		{"plumbing austin", "water heaters"},
		{"plumbing austin", "drain cleaning"},
		nil,
	}

	got := keywordFrequency(lists, 50)
	require.Len(t, got, 3)
	assert.Equal(t, models.KeywordFrequency{Keyword: "plumbing austin", Frequency: 3}, got[0])
	assert.Equal(t, models.KeywordFrequency{Keyword: "drain cleaning", Frequency: 2}, got[1])
	assert.Equal(t, models.KeywordFrequency{Keyword: "water heaters", Frequency: 1}, got[2])

	assert.Len(t, keywordFrequency(lists, 2), 2)
	assert.Empty(t, keywordFrequency(nil, 50))
}

func TestKeywordFrequency_TiesByKeyword(t *testing.T) {
	got := keywordFrequency([]models.StringList{{"b", "a", "c"}}, 50)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Keyword)
	assert.Equal(t, "c", got[2].Keyword)
}

func TestClassifyPerformance(t *testing.T) {
	rows := []models.CombinationPerformance{
		{ServiceName: "Drains", City: "Austin", ContentCount: 8, AvgSEOScore: score(92)},
		{ServiceName: "Drains", City: "Round Rock", ContentCount: 8, AvgSEOScore: score(80)},
		{ServiceName: "Heaters", City: "Austin", ContentCount: 2, AvgSEOScore: score(45)},
		{ServiceName: "Heaters", City: "Round Rock", ContentCount: 0},
	}

	p := classifyPerformance(rows)
	assert.Len(t, p.AllCombinations, 4)
	require.Len(t, p.HighPerformers, 1)
	assert.Equal(t, "Austin", p.HighPerformers[0].City)
	require.Len(t, p.NeedsImprovement, 1)
	assert.Equal(t, "Heaters", p.NeedsImprovement[0].ServiceName)
	require.Len(t, p.ContentGaps, 1)
	assert.Equal(t, "Round Rock", p.ContentGaps[0].City)

	assert.Equal(t, models.PerformanceSummary{
		TotalCombinations:     4,
		WithContent:           3,
		GapsCount:             1,
		HighPerformersCount:   1,
		NeedsImprovementCount: 1,
	}, p.Summary)
}

func TestClassifyPerformance_Empty(t *testing.T) {
	p := classifyPerformance(nil)
	assert.NotNil(t, p.ContentGaps)
	assert.NotNil(t, p.HighPerformers)
	assert.Zero(t, p.Summary.TotalCombinations)
}
