package atmo

import (
	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
)

func (c *Client) ListVolumes() ([]models.Volume, error) {
	return listResources[models.Volume](c, c.url(constants.APIV2Path+"/volumes"))
}

func (c *Client) GetVolume(id int) (*models.Volume, error) {
	var volume models.Volume
	if err := c.getJSON(c.urlf(constants.APIV2Path+"/volumes/%d", id), &volume); err != nil {
		return nil, err
	}
	return &volume, nil
}

// DetachVolume requests detachment. Detachment is asynchronous; callers poll
// GetVolume until the volume reports "not attached".
func (c *Client) DetachVolume(volume models.Volume) error {
	url := c.urlf(constants.APIV1Path+"/provider/%s/identity/%s/volume/%s/action",
		volume.Provider.UUID, volume.Identity.UUID, volume.UUID)

	var ignored map[string]any
	return c.postJSON(url, models.VolumeActionRequest{Action: "detach"}, &ignored)
}

func (c *Client) DeleteVolume(volume models.Volume) error {
	url := c.urlf(constants.APIV1Path+"/provider/%s/identity/%s/volume/%s",
		volume.Provider.UUID, volume.Identity.UUID, volume.UUID)
	return c.delete(url)
}
