package atmo

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/samber/lo"
)

func (c *Client) ListSizes() ([]models.Size, error) {
	return listResources[models.Size](c, c.url(constants.APIV2Path+"/sizes"))
}

// FindSize returns the first size with an exact name match in the platform's
// size catalog.
func (c *Client) FindSize(name string) (*models.Size, error) {
	sizes, err := c.ListSizes()
	if err != nil {
		return nil, err
	}

	size, ok := lo.Find(sizes, func(s models.Size) bool {
		return s.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("%w: no instance size with the name of %q", ErrNotFound, name)
	}

	return &size, nil
}
