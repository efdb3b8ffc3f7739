package review

import "strings"

// Filter narrows the roster view. Zero value means no filtering.
type Filter struct {
	Type  PersonType `json:"type,omitempty"`
	Query string     `json:"query,omitempty"`
}

// Stats summarizes assignment progress for a slice of the roster.
type Stats struct {
	Total    int `json:"total"`
	Assigned int `json:"assigned"`
	Missing  int `json:"missing"`
}

// PersonsWithPhotos joins the roster with the current assignments and the
// latest matching pass. Every roster person appears exactly once, in roster
// order. MatchConfidence is only set when the assigned photo is the one the
// matcher proposed for that person.
func (s *Session) PersonsWithPhotos() []PersonWithPhoto {
	photosByID := make(map[int]UploadedPhoto, len(s.Photos))
	for _, p := range s.Photos {
		photosByID[p.MediaID] = p
	}
	assignedMedia := make(map[int]int, len(s.Assignments))
	for _, a := range s.Assignments {
		assignedMedia[a.PersonID] = a.MediaID
	}

	result := make([]PersonWithPhoto, 0, len(s.Persons))
	for _, person := range s.Persons {
		pw := PersonWithPhoto{Person: person, HasExistingPhoto: person.HasPhoto}

		if mediaID, ok := assignedMedia[person.ID]; ok {
			if photo, ok := photosByID[mediaID]; ok {
				assigned := photo
				pw.AssignedPhoto = &assigned
				pw.MatchConfidence = s.matchConfidence(person.ID, mediaID)
			}
		}

		result = append(result, pw)
	}
	return result
}

// matchConfidence returns the matcher's confidence for the person/photo pair,
// or zero when the pair was not produced by the matcher.
func (s *Session) matchConfidence(personID, mediaID int) int {
	for _, m := range s.Matches {
		if m.PersonID == personID && m.File.MediaID == mediaID {
			return m.Confidence
		}
	}
	return 0
}

// FilterPersons applies a type and a case-insensitive name substring filter.
func FilterPersons(persons []PersonWithPhoto, filter Filter) []PersonWithPhoto {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]PersonWithPhoto, 0, len(persons))
	for _, p := range persons {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Paired returns the persons that have a photo (assigned in this session or
// already present in the gallery).
func Paired(persons []PersonWithPhoto) []PersonWithPhoto {
	result := make([]PersonWithPhoto, 0, len(persons))
	for _, p := range persons {
		if p.HasImage() {
			result = append(result, p)
		}
	}
	return result
}

// Missing returns the persons without any photo.
func Missing(persons []PersonWithPhoto) []PersonWithPhoto {
	result := make([]PersonWithPhoto, 0, len(persons))
	for _, p := range persons {
		if !p.HasImage() {
			result = append(result, p)
		}
	}
	return result
}

// StatsByType computes progress stats for one person type across the roster.
func (s *Session) StatsByType(t PersonType) Stats {
	var stats Stats
	for _, p := range s.PersonsWithPhotos() {
		if p.Type != t {
			continue
		}
		stats.Total++
		if p.HasImage() {
			stats.Assigned++
		} else {
			stats.Missing++
		}
	}
	return stats
}

// AssignedCount returns the number of persons with a session assignment.
func (s *Session) AssignedCount() int {
	return len(s.Assignments)
}

// MissingCount returns the number of roster persons with no photo at all.
func (s *Session) MissingCount() int {
	return len(Missing(s.PersonsWithPhotos()))
}

// UnassignedPhotos returns uploaded photos not assigned to anyone, in upload
// order.
func (s *Session) UnassignedPhotos() []UploadedPhoto {
	assigned := make(map[int]bool, len(s.Assignments))
	for _, a := range s.Assignments {
		assigned[a.MediaID] = true
	}
	result := make([]UploadedPhoto, 0, len(s.Photos))
	for _, p := range s.Photos {
		if !assigned[p.MediaID] {
			result = append(result, p)
		}
	}
	return result
}
