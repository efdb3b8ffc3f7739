package gallery

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tablomester/tablomester/internal/review"
)

// GetAlbums retrieves the composite albums of the programme.
func (c *Client) GetAlbums(ctx context.Context) ([]Album, error) {
	result, err := doGetJSON[[]Album](ctx, c, "albums")
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// GetAlbum retrieves a single album by id.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	return doGetJSON[Album](ctx, c, fmt.Sprintf("albums/%s", albumID))
}

// GetAlbumPhotos retrieves the uploaded, not yet assigned photos of an album.
func (c *Client) GetAlbumPhotos(ctx context.Context, albumID string, count, offset int) ([]review.UploadedPhoto, error) {
	endpoint := fmt.Sprintf("albums/%s/photos?count=%d&offset=%d", albumID, count, offset)
	result, err := doGetJSON[[]review.UploadedPhoto](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// DeletePendingPhotos removes uploaded photos that have not been assigned.
// Pass no media ids to clear the whole pending pool of the album.
func (c *Client) DeletePendingPhotos(ctx context.Context, albumID string, mediaIDs []int) error {
	selection := struct {
		MediaIDs []int `json:"mediaIds,omitempty"`
	}{
		MediaIDs: mediaIDs,
	}

	return doRequestRaw(ctx, c, http.MethodDelete, fmt.Sprintf("albums/%s/photos", albumID), selection)
}
