package atmo

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/models"
	"github.com/samber/lo"
)

func (c *Client) ListIdentities() ([]models.Identity, error) {
	return listResources[models.Identity](c, c.url(constants.APIV2Path+"/identities"))
}

// FindIdentity returns the first identity whose owning user matches
// username. Duplicates are resolved to the first entry in response order.
func (c *Client) FindIdentity(username string) (*models.Identity, error) {
	identities, err := c.ListIdentities()
	if err != nil {
		return nil, err
	}

	identity, ok := lo.Find(identities, func(i models.Identity) bool {
		return i.User.Username == username
	})
	if !ok {
		return nil, fmt.Errorf("%w: no identity with the username of %q", ErrNotFound, username)
	}

	return &identity, nil
}

// Username reports the account's username from its first identity. Also
// serves as the fail-fast validity check for pass-through tokens.
func (c *Client) Username() (string, error) {
	identities, err := c.ListIdentities()
	if err != nil {
		return "", err
	}
	if len(identities) == 0 || identities[0].User.Username == "" {
		return "", fmt.Errorf("account has no identity")
	}
	return identities[0].User.Username, nil
}
