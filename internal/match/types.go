// Package match pairs uploaded image files with roster persons using
// filename-based fuzzy matching.
package match

// MatchType classifies the outcome of matching a single file.
type MatchType string

const (
	MatchTypeMatched   MatchType = "matched"
	MatchTypeAmbiguous MatchType = "ambiguous"
	MatchTypeUnmatched MatchType = "unmatched"
)

// Person is a match candidate from the roster.
type Person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FileRef identifies a file to be matched by name. MediaID is set when the
// file is already known to the gallery (zero otherwise).
type FileRef struct {
	Name    string `json:"name"`
	MediaID int    `json:"mediaId,omitempty"`
}

// FileMatchResult is the outcome of one matching pass for one file.
// PersonID is zero when the file is unmatched.
type FileMatchResult struct {
	File       FileRef   `json:"file"`
	PersonID   int       `json:"personId"`
	PersonName string    `json:"personName,omitempty"`
	MatchType  MatchType `json:"matchType"`
	Confidence int       `json:"confidence"`
}
