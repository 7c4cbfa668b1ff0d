package atmo

import (
	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
)

func (c *Client) ListLinks() ([]models.Link, error) {
	return listResources[models.Link](c, c.url(constants.APIV2Path+"/links"))
}

func (c *Client) DeleteLink(id int) error {
	return c.delete(c.urlf(constants.APIV2Path+"/links/%d", id))
}
