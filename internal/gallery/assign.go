package gallery

import (
	"context"

	"github.com/tablomester/tablomester/internal/review"
)

// AssignPhotos finalizes a review session by committing its assignments.
// The endpoint is idempotent, resubmitting the same batch is safe.
func (c *Client) AssignPhotos(ctx context.Context, assignments []review.PhotoAssignment) (*AssignResult, error) {
	input := struct {
		Assignments []review.PhotoAssignment `json:"assignments"`
	}{
		Assignments: assignments,
	}

	return doPostJSON[AssignResult](ctx, c, "photos/assign", input)
}
