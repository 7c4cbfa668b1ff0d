package main

import (
	"log"
	"os"

	"github.com/cyverse-ops/atmoctl/cmd"
	"github.com/cyverse-ops/atmoctl/config"
	"github.com/urfave/cli/v2"
)

func main() {
	// Initialize config
	config.InitConfig()

	// Initialize CLI app
	app := &cli.App{
		Name:    "atmoctl",
		Usage:   "Batch account operations for Atmosphere-based cloud platforms",
		Version: "0.1.0",
		Commands: []*cli.Command{
			{
				Name:   "launch",
				Usage:  "Launch instances in batch for accounts listed in a CSV manifest",
				Action: cmd.Launch,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "csv",
						Usage: "CSV manifest with one instance launch per row",
					},
					&cli.StringFlag{
						Name:  "username",
						Usage: "Launch for a single account instead of a CSV manifest (prompts for password)",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Image URL for single-account mode",
					},
					&cli.StringFlag{
						Name:  "image-version",
						Usage: "Image version for single-account mode",
					},
					&cli.StringFlag{
						Name:  "size",
						Usage: "Instance size name for single-account mode",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Instance name for single-account mode (defaults to the image name)",
					},
					&cli.BoolFlag{
						Name:  "dont-wait",
						Usage: "Do not wait for launched instances to become active",
					},
					&cli.BoolFlag{
						Name:  "token",
						Usage: "Authenticate rows with access tokens instead of username/password",
					},
					&cli.BoolFlag{
						Name:  "cyverse",
						Usage: "Target platform: CyVerse Atmosphere (default)",
					},
					&cli.BoolFlag{
						Name:  "jetstream",
						Usage: "Target platform: Jetstream (implies --token)",
					},
				},
			},
			{
				Name:   "cleanup",
				Usage:  "Clean up all resources allocated by one or more accounts",
				Action: cmd.Cleanup,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "Clean up a single account (prompts for password)",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "CSV file with credentials for all the accounts",
					},
					&cli.BoolFlag{
						Name:  "token",
						Usage: "Authenticate rows with access tokens instead of username/password",
					},
					&cli.BoolFlag{
						Name:  "cyverse",
						Usage: "Target platform: CyVerse Atmosphere (default)",
					},
					&cli.BoolFlag{
						Name:  "jetstream",
						Usage: "Target platform: Jetstream (implies --token)",
					},
				},
			},
			{
				Name:   "update-alloc",
				Usage:  "Update allocation unit limits of accounts using an admin access token",
				Action: cmd.UpdateAlloc,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "CSV file with usernames and target allocation unit counts",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "token",
						Usage:    "Access token of an admin account",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force-set",
						Usage: "Force set the target AU, even if it is lower than current",
					},
					&cli.BoolFlag{
						Name:  "cyverse",
						Usage: "Target platform: CyVerse Atmosphere (default)",
					},
					&cli.BoolFlag{
						Name:  "jetstream",
						Usage: "Target platform: Jetstream",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
