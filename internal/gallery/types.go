package gallery

import "github.com/tablomester/tablomester/internal/review"

// AlbumType selects one of the two composite albums of a school programme.
type AlbumType string

const (
	AlbumTypeStudents AlbumType = "students"
	AlbumTypeTeachers AlbumType = "teachers"
)

// Album is a gallery album summary.
type Album struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         AlbumType `json:"type"`
	PhotoCount   int       `json:"photoCount"`
	PendingCount int       `json:"pendingCount"`
}

// uploadResponse is the wire shape of a chunk upload.
type uploadResponse struct {
	Success       bool                   `json:"success"`
	UploadedCount int                    `json:"uploadedCount"`
	Photos        []review.UploadedPhoto `json:"photos"`
	Message       string                 `json:"message,omitempty"`
}

// PersonPhoto is an individual person portrait stored by the gallery.
type PersonPhoto struct {
	MediaID  int    `json:"mediaId"`
	ThumbURL string `json:"thumbUrl"`
	URL      string `json:"url"`
	Version  int    `json:"version"`
}

// personPhotoResponse is the wire shape of a single-person portrait upload.
type personPhotoResponse struct {
	Success bool        `json:"success"`
	Photo   PersonPhoto `json:"photo"`
	Message string      `json:"message,omitempty"`
}

// AssignResult reports a finalized assignment batch.
type AssignResult struct {
	Success       bool   `json:"success"`
	AssignedCount int    `json:"assignedCount"`
	Message       string `json:"message,omitempty"`
}

// personsResponse is the wire shape of the roster listing.
type personsResponse struct {
	Persons []review.Person `json:"persons"`
}
