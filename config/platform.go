package config

import (
	"net/url"
)

// Platform identifies one of the supported cloud deployments. It is passed
// explicitly into every client construction; there is no process-global
// target selection.
type Platform struct {
	// Platform name as shown in console output.
	Name string
	// Base URL of the REST API, e.g. "https://atmo.cyverse.org".
	BaseURL string
	// Token exchange endpoint for username/password authentication.
	// Empty when the platform only accepts pre-issued access tokens.
	TokenURL string
	// Whether the platform accepts pre-issued access tokens only.
	TokenOnly bool
}

// Host portion of the platform base URL, sent as the Host header.
func (p Platform) Host() string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// CyVerse Atmosphere, the default platform.
func Cyverse() Platform {
	return Platform{
		Name:     "cyverse",
		BaseURL:  "https://atmo.cyverse.org",
		TokenURL: "https://de.cyverse.org/terrain/token",
	}
}

// Jetstream. Has no username/password token exchange, so access tokens are
// required.
func Jetstream() Platform {
	return Platform{
		Name:      "jetstream",
		BaseURL:   "https://use.jetstream-cloud.org",
		TokenOnly: true,
	}
}
