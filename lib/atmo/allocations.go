package atmo

import (
	"fmt"
	"net/url"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/samber/lo"
)

func (c *Client) ListAllocationSources() ([]models.AllocationSource, error) {
	return listResources[models.AllocationSource](c, c.url(constants.APIV2Path+"/allocation_sources"))
}

// FindAllocationSource returns the first allocation source with an exact
// name match in the account's own view.
func (c *Client) FindAllocationSource(name string) (*models.AllocationSource, error) {
	sources, err := c.ListAllocationSources()
	if err != nil {
		return nil, err
	}

	source, ok := lo.Find(sources, func(s models.AllocationSource) bool {
		return s.Name == name
	})
	if !ok {
		return nil, fmt.Errorf("%w: no allocation source with the name of %q", ErrNotFound, name)
	}

	return &source, nil
}

// UserAllocationSource returns the first allocation source of the given
// user. Requires an admin token; regular accounts only see their own
// sources.
func (c *Client) UserAllocationSource(username string) (*models.AllocationSource, error) {
	reqURL := c.urlf(constants.APIV2Path+"/allocation_sources?username=%s", url.QueryEscape(username))

	var env models.ListEnvelope[models.AllocationSource]
	if err := c.getJSON(reqURL, &env); err != nil {
		return nil, err
	}
	if env.Count < 1 || len(env.Results) == 0 {
		return nil, fmt.Errorf("%w: no allocation source for username %q", ErrNotFound, username)
	}

	source := env.Results[0]
	if err := source.Validate(); err != nil {
		return nil, err
	}
	return &source, nil
}

// UpdateAllocationSource sets the AU limit of an allocation source and
// returns the updated record.
func (c *Client) UpdateAllocationSource(uuid string, computeAllowed int) (*models.AllocationSource, error) {
	reqURL := c.urlf(constants.APIV2Path+"/allocation_sources/%s", uuid)
	req := models.AllocationSourceUpdateRequest{ComputeAllowed: computeAllowed}

	var source models.AllocationSource
	if err := c.patchJSON(reqURL, req, &source); err != nil {
		return nil, err
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}
	return &source, nil
}
