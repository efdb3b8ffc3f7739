package match

import (
	"math"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// CalculateMatchScore computes a 0-100 similarity score between two
// normalized names. Tiers are evaluated in order, first hit wins:
// exact (100), same words reordered (95), substring (80), word overlap
// tolerating one missing token (75), edit-distance fallback.
//
// The fixed tier scores mean a full-name hit always outranks a partial one:
// when a file names someone's complete name, a candidate differing only by
// an extra or missing token lands a whole tier lower, outside the ambiguity
// margin. Two candidates are only reported ambiguous when they score within
// the margin inside the same tier.
func CalculateMatchScore(input, target string) int {
	if input == "" || target == "" {
		return 0
	}
	if input == target {
		return 100
	}

	inputWords := strings.Fields(input)
	targetWords := strings.Fields(target)

	if sameWords(inputWords, targetWords) {
		return 95
	}

	if strings.Contains(input, target) || strings.Contains(target, input) {
		return 80
	}

	common := commonWordCount(inputWords, targetWords)
	maxWords := max(len(inputWords), len(targetWords))
	if common > 0 && common >= maxWords-1 {
		return 75
	}

	maxLen := max(len(input), len(target))
	if abs(len(input)-len(target))*2 > maxLen {
		return 0
	}
	dist := edlib.LevenshteinDistance(input, target)
	score := int(math.Round((1 - float64(dist)/float64(maxLen)) * 100))
	if score < 0 {
		return 0
	}
	return score
}

// SlugScore computes a coarse 0.0-1.0 similarity between two normalized
// slugs. Machine-generated slugs are near-canonical, so exact match and
// containment cover almost everything; near-equal-length slugs get a
// positional character-match ratio as a typo tolerance.
func SlugScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.9
	}

	if abs(len(a)-len(b)) <= 2 {
		longer, shorter := a, b
		if len(b) > len(a) {
			longer, shorter = b, a
		}
		matches := 0
		for i := 0; i < len(shorter); i++ {
			if shorter[i] == longer[i] {
				matches++
			}
		}
		ratio := float64(matches) / float64(len(longer))
		if ratio >= 0.8 {
			return ratio
		}
	}
	return 0
}

// sameWords reports whether two word lists contain the same words in any order.
func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// commonWordCount counts distinct words present in both lists.
func commonWordCount(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}
	count := 0
	for _, w := range b {
		if set[w] {
			count++
			set[w] = false
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
