package review

import "github.com/tablomester/tablomester/internal/match"

// Session is the state of one review session: the read-only roster, the
// uploaded photo pool, the latest matching pass, and the current
// assignments. A session has exactly one logical owner; operations are
// synchronous and the assignment list is replaced wholesale on every
// mutation.
type Session struct {
	Persons     []Person                `json:"persons"`
	Photos      []UploadedPhoto         `json:"photos"`
	Matches     []match.FileMatchResult `json:"matches,omitempty"`
	Assignments []PhotoAssignment       `json:"assignments"`

	Lightbox Lightbox `json:"lightbox"`
}

// NewSession creates a review session over a roster and an uploaded photo pool.
func NewSession(persons []Person, photos []UploadedPhoto) *Session {
	return &Session{
		Persons: persons,
		Photos:  photos,
	}
}

// SeedFromMatches stores a matching pass and builds the initial assignment
// list from its committed (non-unmatched) results. Files without a known
// media id cannot be assigned and are skipped.
func (s *Session) SeedFromMatches(results []match.FileMatchResult) {
	s.Matches = results
	assignments := make([]PhotoAssignment, 0, len(results))
	for _, r := range results {
		if r.PersonID == 0 || r.File.MediaID == 0 {
			continue
		}
		assignments = AssignPhotoToPerson(assignments, r.File.MediaID, r.PersonID)
	}
	s.Assignments = assignments
}

// Assign gives mediaID to personID, replacing the assignment list.
func (s *Session) Assign(mediaID, personID int) {
	s.Assignments = AssignPhotoToPerson(s.Assignments, mediaID, personID)
}

// Swap exchanges the photos of two persons (see SwapAssignments).
func (s *Session) Swap(sourcePersonID, targetPersonID int) {
	source, ok := s.personWithPhoto(sourcePersonID)
	if !ok {
		return
	}
	target, ok := s.personWithPhoto(targetPersonID)
	if !ok {
		return
	}
	s.Assignments = SwapAssignments(s.Assignments, source, target)
}

// Remove drops the person's assignment if present.
func (s *Session) Remove(personID int) {
	s.Assignments = RemoveAssignment(s.Assignments, personID)
}

// AddPhotos appends newly uploaded photos to the pool.
func (s *Session) AddPhotos(photos []UploadedPhoto) {
	s.Photos = append(s.Photos, photos...)
}

// RemovePhotos deletes photos from the pool and drops any assignments that
// reference them.
func (s *Session) RemovePhotos(mediaIDs []int) {
	deleted := make(map[int]bool, len(mediaIDs))
	for _, id := range mediaIDs {
		deleted[id] = true
	}

	photos := make([]UploadedPhoto, 0, len(s.Photos))
	for _, p := range s.Photos {
		if !deleted[p.MediaID] {
			photos = append(photos, p)
		}
	}
	s.Photos = photos

	assignments := make([]PhotoAssignment, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		if !deleted[a.MediaID] {
			assignments = append(assignments, a)
		}
	}
	s.Assignments = assignments
}

// personWithPhoto resolves one person's presentation join by id.
func (s *Session) personWithPhoto(personID int) (PersonWithPhoto, bool) {
	for _, p := range s.PersonsWithPhotos() {
		if p.ID == personID {
			return p, true
		}
	}
	return PersonWithPhoto{}, false
}
