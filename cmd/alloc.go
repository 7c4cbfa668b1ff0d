package cmd

import (
	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/batch"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/urfave/cli/v2"
)

// Update allocation unit limits of accounts using an admin access token.
// Per-row failures are reported and skipped; the run continues.
func UpdateAlloc(c *cli.Context) error {
	platform, err := platformFromFlags(c.Bool("cyverse"), c.Bool("jetstream"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	rows, err := batch.LoadAllocationCSV(c.String("csv"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	client, err := atmo.NewClientWithToken(platform, c.String("token"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, row := range rows {
		if err := batch.UpdateUserAllocation(client, row.Username, row.AllocUnitCount, c.Bool("force-set")); err != nil {
			console.ErrorPrint("%s, failed to update AU limit: %v", row.Username, err)
		}
	}

	return nil
}
