package httpw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cyverse-ops/atmoctl/constants"
	"github.com/cyverse-ops/atmoctl/lib/httpvalidation"
	"github.com/lucsky/cuid"
	"golang.org/x/time/rate"
)

// Session sends authenticated requests to one platform on behalf of one
// account. Safe for use by a single worker at a time.
type Session struct {
	// Host header value, e.g. "atmo.cyverse.org".
	Host string
	// Access token. Empty for unauthenticated endpoints.
	Token string
	// Optional shared rate limiter.
	Limiter *rate.Limiter
}

// Send a GET request to the specified URL.
func (s Session) Get(url string) (*http.Response, error) {
	return s.send("GET", url, nil)
}

// Send a DELETE request to the specified URL.
func (s Session) Delete(url string) (*http.Response, error) {
	return s.send("DELETE", url, nil)
}

// Send a POST request with a JSON body to the specified URL.
func (s Session) Post(url string, body any) (*http.Response, error) {
	return s.send("POST", url, body)
}

// Send a PATCH request with a JSON body to the specified URL.
func (s Session) Patch(url string, body any) (*http.Response, error) {
	return s.send("PATCH", url, body)
}

func (s Session) send(method string, url string, body any) (*http.Response, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(context.Background()); err != nil {
			return nil, err
		}
	}

	// Build request
	var reqBody *bytes.Buffer
	if body != nil {
		bodyJson, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(bodyJson)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	httpClient := &http.Client{}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if s.Host != "" {
		req.Host = s.Host
	}
	req.Header.Set("Accept", constants.AcceptHeader)
	req.Header.Set(constants.RequestIDHeader, cuid.New())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("%s %s", constants.AuthScheme, s.Token))
	}

	// Send request
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Validate response
	if err = httpvalidation.ValidateResponse(res); err != nil {
		res.Body.Close()
		return nil, err
	}

	return res, nil
}

// Decode a JSON response body into v and close the body.
func DecodeJSON(res *http.Response, v any) error {
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: %v", constants.ErrMsgBadJSON, err)
	}

	return nil
}
