package models

import "fmt"

// Response body of the token exchange endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

func (t TokenResponse) Validate() error {
	if t.AccessToken == "" {
		return fmt.Errorf("token response missing \"access_token\"")
	}
	return nil
}
