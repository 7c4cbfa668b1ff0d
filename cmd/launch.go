package cmd

import (
	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/lib/batch"
	"github.com/cyverse-ops/atmoctl/lib/console"
	"github.com/urfave/cli/v2"
)

// Launch instances in batch for accounts listed in a CSV manifest, or a
// single instance for one account given via flags.
func Launch(c *cli.Context) error {
	platform, err := platformFromFlags(c.Bool("cyverse"), c.Bool("jetstream"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	useToken := c.Bool("token") || platform.TokenOnly

	csvPath := c.String("csv")
	username := c.String("username")

	var rows []batch.LaunchRow
	switch {
	case csvPath != "":
		rows, err = batch.LoadLaunchCSV(csvPath, useToken)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	case username != "":
		if useToken {
			return cli.Exit("--username cannot be combined with --token", 1)
		}
		row, err := launchRowFromFlags(c, username)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		rows = []batch.LaunchRow{row}
	default:
		cli.ShowSubcommandHelp(c)
		return cli.Exit("Neither --username or --csv is specified, one is needed", 1)
	}

	dispatcher := batch.Dispatcher{
		Platform: platform,
		PoolSize: config.I.Batch.PoolSize,
		UseToken: useToken,
		Wait:     !c.Bool("dont-wait"),
		Poller: batch.Poller{
			Interval: config.I.Batch.PollInterval(),
			Timeout:  config.I.Batch.ActiveTimeout(),
		},
	}
	results := dispatcher.Run(rows)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		console.Warning("%d of %d rows failed", failed, len(results))
	} else {
		console.Success("all %d rows succeeded", len(results))
	}

	return nil
}

// Build the one manifest row of single-account mode from flags, prompting
// for the password.
func launchRowFromFlags(c *cli.Context, username string) (batch.LaunchRow, error) {
	imageID, err := batch.ImageIDFromURL(c.String("image"))
	if err != nil {
		return batch.LaunchRow{}, err
	}

	password, err := readPassword(username)
	if err != nil {
		return batch.LaunchRow{}, err
	}

	return batch.LaunchRow{
		Index:        1,
		Account:      batch.Account{Username: username, Password: password},
		ImageID:      imageID,
		ImageVersion: c.String("image-version"),
		Size:         c.String("size"),
		InstanceName: c.String("name"),
	}, nil
}
