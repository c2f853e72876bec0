package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type SignupParams struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Me returns the backend's view of the signed-in user
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	identity := Identity{}
	if err := c.get(ctx, "/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Signup registers a new account & returns a custom sign-in token to
// be exchanged with the identity provider. No bearer credential is
// attached - the caller does not have one yet.
func (c *Client) Signup(ctx context.Context, params SignupParams) (*SignupResult, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	result := SignupResult{}
	if err := c.doPublic(ctx, http.MethodPost, "/auth/signup", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health pings the backend without credentials
func (c *Client) Health(ctx context.Context) error {
	return c.doPublic(ctx, http.MethodGet, "/health", nil, nil)
}

// doPublic is do() without the bearer credential, for the couple of
// endpoints that exist before a session does.
func (c *Client) doPublic(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "unable to encode request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "unable to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiErrorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "unable to decode %s %s response", method, path)
	}

	return nil
}
