package cmd

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/cyverse-ops/atmoctl/config"
	"golang.org/x/term"
)

// Map the mutually exclusive --cyverse/--jetstream flags to a platform.
// CyVerse is the default.
func platformFromFlags(cyverse bool, jetstream bool) (config.Platform, error) {
	if cyverse && jetstream {
		return config.Platform{}, errors.New("--cyverse and --jetstream are mutually exclusive")
	}
	if jetstream {
		return config.Jetstream(), nil
	}
	return config.Cyverse(), nil
}

func validateCleanupFlags(username string, csvPath string, jetstream bool, useToken bool) error {
	if username != "" && useToken {
		return errors.New("--username cannot be combined with --token")
	}
	if username != "" && csvPath != "" {
		return errors.New("--username cannot be combined with --csv")
	}
	if username != "" && jetstream {
		return errors.New("--jetstream requires --token and cannot be combined with --username")
	}
	if username == "" && csvPath == "" {
		return errors.New("Neither --username or --csv is specified, one is needed")
	}
	return nil
}

// Prompt for a password without echo.
func readPassword(username string) (string, error) {
	fmt.Printf("Password for %s: ", username)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", errors.New("empty password")
	}
	return string(password), nil
}
