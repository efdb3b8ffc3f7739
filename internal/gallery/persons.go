package gallery

import (
	"context"
	"fmt"

	"github.com/tablomester/tablomester/internal/review"
)

// GetPersons retrieves the full roster of the programme.
func (c *Client) GetPersons(ctx context.Context) ([]review.Person, error) {
	result, err := doGetJSON[personsResponse](ctx, c, "persons")
	if err != nil {
		return nil, err
	}
	return result.Persons, nil
}

// GetPersonsByType retrieves the roster filtered to one person type.
func (c *Client) GetPersonsByType(ctx context.Context, t review.PersonType) ([]review.Person, error) {
	result, err := doGetJSON[personsResponse](ctx, c, fmt.Sprintf("persons?type=%s", t))
	if err != nil {
		return nil, err
	}
	return result.Persons, nil
}
