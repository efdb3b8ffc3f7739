// Package review holds the mutable person-to-photo assignment state for a
// review session. All mutation operations return new assignment slices and
// never modify their input, so callers can rely on cheap change detection
// and safely keep references to earlier states.
package review

import "github.com/tablomester/tablomester/internal/match"

// PersonType distinguishes roster entries.
type PersonType string

const (
	PersonTypeStudent PersonType = "student"
	PersonTypeTeacher PersonType = "teacher"
)

// Person is a roster entry loaded once per project and read-only within a
// review session.
type Person struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Type          PersonType `json:"type"`
	HasPhoto      bool       `json:"hasPhoto"`
	PhotoThumbURL string     `json:"photoThumbUrl,omitempty"`
}

// MatchPerson converts a roster entry into a match candidate.
func (p Person) MatchPerson() match.Person {
	return match.Person{ID: p.ID, Name: p.Name}
}

// UploadedPhoto is a gallery-acknowledged upload.
type UploadedPhoto struct {
	MediaID  int    `json:"mediaId"`
	Filename string `json:"filename"`
	ThumbURL string `json:"thumbUrl"`
	FullURL  string `json:"fullUrl"`
}

// PhotoAssignment is the persisted unit of truth pairing a person with a
// media item. The assignment list always forms a partial bijection: no
// person and no media item appears in more than one pair.
type PhotoAssignment struct {
	PersonID int `json:"personId"`
	MediaID  int `json:"mediaId"`
}

// PersonWithPhoto is the presentation join of a person with their current
// assignment. MatchConfidence is zero unless the assignment traces back to
// a matching pass.
type PersonWithPhoto struct {
	Person
	AssignedPhoto    *UploadedPhoto `json:"assignedPhoto"`
	MatchConfidence  int            `json:"matchConfidence,omitempty"`
	HasExistingPhoto bool           `json:"hasExistingPhoto"`
}

// HasImage reports whether the person currently has any photo, either
// assigned in this session or persisted from an earlier one.
func (p PersonWithPhoto) HasImage() bool {
	return p.AssignedPhoto != nil || p.HasExistingPhoto
}
