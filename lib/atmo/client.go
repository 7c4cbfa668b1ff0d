package atmo

import (
	"errors"
	"fmt"
	"io"

	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/lib/httpvalidation"
	"github.com/cyverse-ops/atmoctl/lib/httpw"
	"github.com/cyverse-ops/atmoctl/models"
)

// Returned when a named resource has no match in the fetched catalog.
// Lookup misses are hard failures and are never retried.
var ErrNotFound = errors.New("no matching resource")

// Client issues API calls against one platform on behalf of one account.
// The platform is bound at construction; there is no global target state.
type Client struct {
	Platform config.Platform
	session  httpw.Session
	retry    httpw.Policy
}

func NewClient(p config.Platform, token string) *Client {
	retry := httpw.DefaultPolicy()
	retry.Retryable = func(err error) bool {
		// Lookup misses and 401/403/404 responses come back identical on
		// every attempt; only transient failures are worth retrying
		switch {
		case errors.Is(err, ErrNotFound),
			errors.Is(err, httpvalidation.ErrUnauthorized),
			errors.Is(err, httpvalidation.ErrNotFound):
			return false
		}
		return true
	}

	return &Client{
		Platform: p,
		session: httpw.Session{
			Host:    p.Host(),
			Token:   token,
			Limiter: config.I.RateLimiter,
		},
		retry: retry,
	}
}

// Access token the client authenticates with.
func (c *Client) Token() string {
	return c.session.Token
}

func (c *Client) url(path string) string {
	return c.Platform.BaseURL + path
}

func (c *Client) urlf(path string, v ...any) string {
	return c.Platform.BaseURL + fmt.Sprintf(path, v...)
}

// Fetch url and decode the JSON response into v, under the client's retry
// policy.
func (c *Client) getJSON(url string, v any) error {
	return c.retry.Do(func() error {
		res, err := c.session.Get(url)
		if err != nil {
			return err
		}
		return httpw.DecodeJSON(res, v)
	})
}

// POST body to url and decode the JSON response into v.
func (c *Client) postJSON(url string, body any, v any) error {
	return c.retry.Do(func() error {
		res, err := c.session.Post(url, body)
		if err != nil {
			return err
		}
		return httpw.DecodeJSON(res, v)
	})
}

// PATCH body to url and decode the JSON response into v.
func (c *Client) patchJSON(url string, body any, v any) error {
	return c.retry.Do(func() error {
		res, err := c.session.Patch(url, body)
		if err != nil {
			return err
		}
		return httpw.DecodeJSON(res, v)
	})
}

// DELETE url, discarding any response body.
func (c *Client) delete(url string) error {
	return c.retry.Do(func() error {
		res, err := c.session.Delete(url)
		if err != nil {
			return err
		}
		defer res.Body.Close()
		io.Copy(io.Discard, res.Body)
		return nil
	})
}

// Fetch a v2 list endpoint and unwrap its paginated envelope.
func listResources[T any](c *Client, url string) ([]T, error) {
	var env models.ListEnvelope[T]
	if err := c.getJSON(url, &env); err != nil {
		return nil, err
	}
	return env.Results, nil
}
