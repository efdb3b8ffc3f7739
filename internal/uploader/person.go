package uploader

import (
	"context"

	"github.com/tablomester/tablomester/internal/gallery"
)

// ItemStatus is the lifecycle of one per-person portrait upload.
type ItemStatus string

const (
	StatusPending   ItemStatus = "pending"
	StatusUploading ItemStatus = "uploading"
	StatusDone      ItemStatus = "done"
	StatusError     ItemStatus = "error"
)

// PersonUpload is one portrait upload job and its outcome.
type PersonUpload struct {
	PersonID int                  `json:"personId"`
	FilePath string               `json:"filePath"`
	Status   ItemStatus           `json:"status"`
	Photo    *gallery.PersonPhoto `json:"photo,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// PersonSendFunc uploads one portrait and returns the stored photo.
type PersonSendFunc func(ctx context.Context, personID int, filePath string) (*gallery.PersonPhoto, error)

// UploadPersonPhotos runs the portrait jobs one at a time. A failing item
// records its error and the run always advances to the next item. The
// callback, if set, fires on every status change. Cancellation leaves the
// remaining items pending.
func UploadPersonPhotos(ctx context.Context, items []PersonUpload, send PersonSendFunc, onChange func(PersonUpload)) []PersonUpload {
	notify := func(item PersonUpload) {
		if onChange != nil {
			onChange(item)
		}
	}

	result := make([]PersonUpload, len(items))
	copy(result, items)

	for i := range result {
		if ctx.Err() != nil {
			break
		}

		result[i].Status = StatusUploading
		notify(result[i])

		photo, err := send(ctx, result[i].PersonID, result[i].FilePath)
		if err != nil {
			result[i].Status = StatusError
			result[i].Error = err.Error()
		} else {
			result[i].Status = StatusDone
			result[i].Photo = photo
		}
		notify(result[i])
	}

	return result
}
