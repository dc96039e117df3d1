package content

import (
	"strings"
)

// ReadabilityPlaceholder is persisted in place of a computed readability score.
const ReadabilityPlaceholder = 75

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SEOScore rates text against its primary keyword and target location.
//
//	keyword 1-3 times      30  (more than 3: 15)
//	location present       25
//	100-300 words          20  (50+ otherwise: 10)
//	"!"                     5
//	"?"                     5
//	any digit               5
//	"Call" or "Contact"    10
//
// The result is clamped to [0, 100].
func SEOScore(text, keyword, location string) int {
	score := 0
	lower := strings.ToLower(text)

	if n := countOccurrences(lower, strings.ToLower(keyword)); n > 0 && n <= 3 {
		score += 30
	} else if n > 3 {
		score += 15
	}

	if location != "" && strings.Contains(lower, strings.ToLower(location)) {
		score += 25
	}

	words := WordCount(text)
	if words >= 100 && words <= 300 {
		score += 20
	} else if words >= 50 {
		score += 10
	}

	if strings.Contains(text, "!") {
		score += 5
	}
	if strings.Contains(text, "?") {
		score += 5
	}
	if strings.ContainsAny(text, "0123456789") {
		score += 5
	}
	if strings.Contains(text, "Call") || strings.Contains(text, "Contact") {
		score += 10
	}

	return clamp(score, 0, 100)
}

// KeywordDensity returns, per keyword, phrase occurrences as a percentage of words.
func KeywordDensity(text string, keywords []string) map[string]float64 {
	words := strings.Fields(strings.ToLower(text))
	density := make(map[string]float64, len(keywords))
	for _, kw := range keywords {
		phrase := strings.Fields(strings.ToLower(kw))
		if len(words) == 0 || len(phrase) == 0 {
			density[kw] = 0
			continue
		}
		count := 0
		for i := 0; i+len(phrase) <= len(words); i++ {
			if equalWords(words[i:i+len(phrase)], phrase) {
				count++
			}
		}
		density[kw] = float64(count) / float64(len(words)) * 100
	}
	return density
}

// countOccurrences counts non-overlapping matches; an empty needle never matches.
func countOccurrences(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(haystack, needle)
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
