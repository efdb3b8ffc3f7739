package match

import (
	"sort"

	"github.com/tablomester/tablomester/internal/constants"
)

// candidate is one scored person for one file.
type candidate struct {
	personID   int
	personName string
	score      int
}

// MatchFilesToPersons runs a greedy one-file-to-one-person matching pass.
// Files are processed in input order; that order is part of the contract,
// since an earlier file claims its best person before later files are
// considered. The result preserves a partial bijection by construction:
// no person is claimed twice and each file maps to at most one person.
//
// A committed match whose runner-up scores within the ambiguity margin is
// flagged ambiguous for review, not rejected.
func MatchFilesToPersons(files []FileRef, persons []Person) []FileMatchResult {
	normalized := make([]string, len(persons))
	for i, p := range persons {
		normalized[i] = NormalizeName(p.Name)
	}

	results := make([]FileMatchResult, 0, len(files))
	claimed := make(map[int]bool)

	for _, file := range files {
		name := NormalizeName(ExtractNameFromFilename(file.Name))

		var candidates []candidate
		if name != "" {
			for i, p := range persons {
				if normalized[i] == "" {
					continue
				}
				score := CalculateMatchScore(name, normalized[i])
				if score >= constants.MinMatchThreshold {
					candidates = append(candidates, candidate{p.ID, p.Name, score})
				}
			}
		}
		// Stable sort keeps roster order for equal scores, which keeps
		// repeated passes deterministic.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})

		var remaining []candidate
		for _, c := range candidates {
			if !claimed[c.personID] {
				remaining = append(remaining, c)
			}
		}

		if len(remaining) == 0 {
			results = append(results, FileMatchResult{
				File:      file,
				MatchType: MatchTypeUnmatched,
			})
			continue
		}

		best := remaining[0]
		matchType := MatchTypeMatched
		if len(remaining) > 1 && best.score-remaining[1].score <= constants.AmbiguityMargin {
			matchType = MatchTypeAmbiguous
		}

		claimed[best.personID] = true
		results = append(results, FileMatchResult{
			File:       file,
			PersonID:   best.personID,
			PersonName: best.personName,
			MatchType:  matchType,
			Confidence: best.score,
		})
	}

	return results
}
