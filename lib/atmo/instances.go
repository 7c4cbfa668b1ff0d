package atmo

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
)

func (c *Client) ListInstances() ([]models.Instance, error) {
	return listResources[models.Instance](c, c.url(constants.APIV2Path+"/instances"))
}

func (c *Client) GetInstance(id int) (*models.Instance, error) {
	var instance models.Instance
	if err := c.getJSON(c.urlf(constants.APIV2Path+"/instances/%d", id), &instance); err != nil {
		return nil, err
	}
	return &instance, nil
}

// LaunchInstance creates an instance from fully resolved references. The
// returned instance carries the id/uuid/provider/identity needed for later
// status polls and v1 calls.
func (c *Client) LaunchInstance(req models.InstanceCreateRequest) (*models.Instance, error) {
	var instance models.Instance
	if err := c.postJSON(c.url(constants.APIV2Path+"/instances"), req, &instance); err != nil {
		return nil, fmt.Errorf("failed to launch instance %q: %w", req.Name, err)
	}
	if err := instance.Validate(); err != nil {
		return nil, err
	}
	return &instance, nil
}

// DeleteInstance tears down an instance via the provider/identity-scoped v1
// endpoint.
func (c *Client) DeleteInstance(instance models.Instance) error {
	url := c.urlf(constants.APIV1Path+"/provider/%s/identity/%s/instance/%s",
		instance.Provider.UUID, instance.Identity.UUID, instance.UUID)
	return c.delete(url)
}

// RebootInstance issues a reboot action. hard selects a HARD reboot over a
// SOFT one.
func (c *Client) RebootInstance(instance models.Instance, hard bool) error {
	url := c.urlf(constants.APIV1Path+"/provider/%s/identity/%s/instance/%s/action",
		instance.Provider.UUID, instance.Identity.UUID, instance.UUID)

	req := models.InstanceActionRequest{Action: "reboot", RebootType: "SOFT"}
	if hard {
		req.RebootType = "HARD"
	}

	var ignored map[string]any
	return c.postJSON(url, req, &ignored)
}
