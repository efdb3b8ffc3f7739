package match

import (
	"math"
	"strconv"
	"strings"

	"github.com/tablomester/tablomester/internal/constants"
)

// LayerMatchType classifies how a file was paired with a layer.
type LayerMatchType string

const (
	LayerMatchExact     LayerMatchType = "exact"
	LayerMatchSmart     LayerMatchType = "smart"
	LayerMatchAmbiguous LayerMatchType = "ambiguous"
	LayerMatchManual    LayerMatchType = "manual"
)

// Layer is a design-tool layer encoding a person slot, parsed from the
// "slug---personId" naming convention of the export script.
type Layer struct {
	PersonID   int    `json:"personId"`
	LayerName  string `json:"layerName"`
	Slug       string `json:"slug"`
	PersonName string `json:"personName,omitempty"`

	// Set when a file has been paired with this layer.
	File       *FileRef       `json:"file,omitempty"`
	MatchType  LayerMatchType `json:"matchType,omitempty"`
	Confidence int            `json:"confidence,omitempty"`
}

// ParseLayerNames parses "slug---personId" layer names. Names without the
// separator or with a non-positive or non-numeric id are outside the
// convention and are skipped silently.
func ParseLayerNames(names []string) []Layer {
	var layers []Layer
	for _, name := range names {
		slug, idStr, ok := strings.Cut(name, "---")
		if !ok {
			continue
		}
		personID, err := strconv.Atoi(idStr)
		if err != nil || personID <= 0 {
			continue
		}
		layers = append(layers, Layer{
			PersonID:  personID,
			LayerName: name,
			Slug:      slug,
		})
	}
	return layers
}

// EnrichWithPersons fills in PersonName from the roster, falling back to the
// layer slug for persons missing from the roster.
func EnrichWithPersons(layers []Layer, persons []Person) []Layer {
	byID := make(map[int]Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}
	enriched := make([]Layer, len(layers))
	for i, l := range layers {
		if p, ok := byID[l.PersonID]; ok {
			l.PersonName = p.Name
		} else if l.PersonName == "" {
			l.PersonName = l.Slug
		}
		enriched[i] = l
	}
	return enriched
}

// MatchFilesToLayers pairs files with layers in two tiers: a cheap, strict
// slug comparison first, then the fuzzy name-based assignor for leftover
// files against persons whose layers are still empty. Returns the layers
// (with files attached where matched) and the files nothing claimed.
func MatchFilesToLayers(files []FileRef, layers []Layer, persons []Person) ([]Layer, []FileRef) {
	matched := make([]Layer, len(layers))
	copy(matched, layers)
	used := make([]bool, len(files))

	// Tier 1: slug matching.
	for fi, file := range files {
		fileSlug := NormalizeSlug(removeExtension(file.Name))
		bestIdx := -1
		bestScore := 0.0

		for li := range matched {
			if matched[li].File != nil {
				continue
			}
			layerSlug := NormalizeSlug(layerLabel(matched[li]))
			if score := SlugScore(fileSlug, layerSlug); score > bestScore {
				bestScore = score
				bestIdx = li
			}
		}

		if bestIdx >= 0 && bestScore >= constants.SlugMatchThreshold {
			f := file
			matched[bestIdx].File = &f
			if bestScore == 1 {
				matched[bestIdx].MatchType = LayerMatchExact
			} else {
				matched[bestIdx].MatchType = LayerMatchSmart
			}
			matched[bestIdx].Confidence = int(math.Round(bestScore * 100))
			used[fi] = true
		}
	}

	// Tier 2: fuzzy name matching for the leftovers, restricted to persons
	// whose layers are still unfilled.
	var remaining []FileRef
	var remainingIdx []int
	for fi, file := range files {
		if !used[fi] {
			remaining = append(remaining, file)
			remainingIdx = append(remainingIdx, fi)
		}
	}

	if len(remaining) > 0 && len(persons) > 0 {
		filled := make(map[int]bool)
		for _, l := range matched {
			if l.File != nil {
				filled[l.PersonID] = true
			}
		}
		var available []Person
		for _, p := range persons {
			if !filled[p.ID] {
				available = append(available, p)
			}
		}

		if len(available) > 0 {
			for ri, result := range MatchFilesToPersons(remaining, available) {
				if result.PersonID == 0 {
					continue
				}
				li := findEmptyLayer(matched, result.PersonID)
				if li < 0 {
					continue
				}
				f := result.File
				matched[li].File = &f
				if result.MatchType == MatchTypeAmbiguous {
					matched[li].MatchType = LayerMatchAmbiguous
				} else {
					matched[li].MatchType = LayerMatchSmart
				}
				matched[li].Confidence = result.Confidence
				used[remainingIdx[ri]] = true
			}
		}
	}

	var unmatched []FileRef
	for fi, file := range files {
		if !used[fi] {
			unmatched = append(unmatched, file)
		}
	}
	return matched, unmatched
}

// layerLabel prefers the resolved person name over the raw slug.
func layerLabel(l Layer) string {
	if l.PersonName != "" {
		return l.PersonName
	}
	return l.Slug
}

func findEmptyLayer(layers []Layer, personID int) int {
	for i := range layers {
		if layers[i].PersonID == personID && layers[i].File == nil {
			return i
		}
	}
	return -1
}

func removeExtension(filename string) string {
	if lastDot := strings.LastIndex(filename, "."); lastDot > 0 {
		return filename[:lastDot]
	}
	return filename
}
