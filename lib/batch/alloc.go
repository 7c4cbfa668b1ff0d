package batch

import (
	"fmt"

	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/console"
)

// UpdateUserAllocation sets one user's AU limit via an admin session.
// Lowering the limit is refused unless forceSet; a refused row is a skip,
// not an error.
func UpdateUserAllocation(c *atmo.Client, username string, target int, forceSet bool) error {
	source, err := c.UserAllocationSource(username)
	if err != nil {
		return err
	}
	console.Info("%s, current AU count: %d", username, source.ComputeAllowed)

	if target < source.ComputeAllowed && !forceSet {
		console.Warning("Skipped, target is lower than current AU, use --force-set to force setting the target AU count")
		return nil
	}

	updated, err := c.UpdateAllocationSource(source.UUID, target)
	if err != nil {
		return err
	}
	if updated.ComputeAllowed != target || updated.UUID != source.UUID {
		return fmt.Errorf("inconsistent response, failed to update AU limit for %q", username)
	}

	console.Success("%s, new AU count: %d", username, updated.ComputeAllowed)
	return nil
}
