package atmo

import (
	"fmt"
	"net/http"

	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/lib/httpvalidation"
	"github.com/cyverse-ops/atmoctl/lib/httpw"
	"github.com/cyverse-ops/atmoctl/models"
)

// Login exchanges a username and password for an access token and returns an
// authenticated client.
func Login(p config.Platform, username string, password string) (*Client, error) {
	if p.TokenURL == "" {
		return nil, fmt.Errorf("platform %q has no username/password login, use an access token", p.Name)
	}

	var tokenRes models.TokenResponse
	err := httpw.DefaultPolicy().Do(func() error {
		req, err := http.NewRequest("GET", p.TokenURL, nil)
		if err != nil {
			return err
		}
		req.SetBasicAuth(username, password)
		req.Header.Set("Accept", constants.AcceptHeader)

		res, err := (&http.Client{}).Do(req)
		if err != nil {
			return err
		}
		if err = httpvalidation.ValidateResponse(res); err != nil {
			res.Body.Close()
			return err
		}

		return httpw.DecodeJSON(res, &tokenRes)
	})
	if err != nil {
		return nil, fmt.Errorf("%s for username %q: %w", constants.ErrMsgAuthFailed, username, err)
	}
	if err := tokenRes.Validate(); err != nil {
		return nil, err
	}

	return NewClient(p, tokenRes.AccessToken), nil
}

// NewClientWithToken validates a pre-issued access token with a lightweight
// whoami call before returning a client, so expired tokens fail fast.
func NewClientWithToken(p config.Platform, token string) (*Client, error) {
	c := NewClient(p, token)
	if _, err := c.Username(); err != nil {
		return nil, fmt.Errorf("%s: %w", constants.ErrMsgAuthFailed, err)
	}
	return c, nil
}
