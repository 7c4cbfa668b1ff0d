package atmo

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/samber/lo"
)

func (c *Client) ListImages() ([]models.Image, error) {
	return listResources[models.Image](c, c.url(constants.APIV2Path+"/images"))
}

func (c *Client) GetImage(id int) (*models.Image, error) {
	images, err := c.ListImages()
	if err != nil {
		return nil, err
	}

	image, ok := lo.Find(images, func(i models.Image) bool {
		return i.ID == id
	})
	if !ok {
		return nil, fmt.Errorf("%w: no image with the id of %d", ErrNotFound, id)
	}

	return &image, nil
}

// FindImageVersion returns the version entry of an image with an exact
// version-string match.
func FindImageVersion(image models.Image, version string) (*models.ImageVersion, error) {
	entry, ok := lo.Find(image.Versions, func(v models.ImageVersion) bool {
		return v.Name == version
	})
	if !ok {
		return nil, fmt.Errorf("%w: no version with the name of %q for image %q", ErrNotFound, version, image.Name)
	}
	return &entry, nil
}

// ListVersionMachines fetches the provider machines of an image version.
// The machine list lives behind the version's own URL.
func (c *Client) ListVersionMachines(version models.ImageVersion) ([]models.ProviderMachine, error) {
	var detail models.ImageVersionDetail
	if err := c.getJSON(version.URL, &detail); err != nil {
		return nil, err
	}
	return detail.Machines, nil
}
