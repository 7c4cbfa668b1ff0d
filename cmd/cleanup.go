package cmd

import (
	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/lib/atmo"
	"github.com/cyverse-ops/atmoctl/lib/batch"
	"github.com/urfave/cli/v2"
)

// Clean up all resources allocated by one or more accounts. One account's
// failure aborts the whole run.
func Cleanup(c *cli.Context) error {
	platform, err := platformFromFlags(c.Bool("cyverse"), c.Bool("jetstream"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	useToken := c.Bool("token") || platform.TokenOnly

	username := c.String("username")
	csvPath := c.String("csv")
	if err := validateCleanupFlags(username, csvPath, c.Bool("jetstream"), c.Bool("token")); err != nil {
		cli.ShowSubcommandHelp(c)
		return cli.Exit(err.Error(), 1)
	}

	var accounts []batch.Account
	if username != "" {
		password, err := readPassword(username)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		accounts = []batch.Account{{Username: username, Password: password}}
	} else {
		accounts, err = batch.LoadAccountCSV(csvPath, useToken)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	cleaner := batch.Cleaner{
		DetachPollInterval: config.I.Batch.PollInterval(),
		DetachTimeout:      config.I.Batch.DetachTimeout(),
	}

	for _, account := range accounts {
		client, owner, err := authenticateAccount(platform, account, useToken)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := cleaner.CleanupAccount(client, owner); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}

func authenticateAccount(platform config.Platform, account batch.Account, useToken bool) (*atmo.Client, string, error) {
	if useToken {
		client, err := atmo.NewClientWithToken(platform, account.Token)
		if err != nil {
			return nil, "", err
		}
		username, err := client.Username()
		if err != nil {
			return nil, "", err
		}
		return client, username, nil
	}

	client, err := atmo.Login(platform, account.Username, account.Password)
	if err != nil {
		return nil, "", err
	}
	return client, account.Username, nil
}
