package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/clientelehq/clientele/shared"
	"github.com/pkg/errors"
)

// Credentials is what the identity provider hands back on any
// successful sign-in or refresh.
type Credentials struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"` // seconds, as a string
}

func (c Credentials) expiresAt(now time.Time) time.Time {
	seconds, err := strconv.Atoi(c.ExpiresIn)
	if err != nil || seconds <= 0 {
		seconds = 3600
	}
	return now.Add(time.Duration(seconds) * time.Second)
}

// IdentityClient talks to the third-party identity provider. Only the
// handful of flows the app needs are wrapped.
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIdentityClient(config shared.IdentityConfig) *IdentityClient {
	return &IdentityClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (ic *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*Credentials, error) {
	return ic.post(ctx, "/v1/accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithCustomToken exchanges the token minted by the backend's
// signup endpoint for a session.
func (ic *IdentityClient) SignInWithCustomToken(ctx context.Context, customToken string) (*Credentials, error) {
	return ic.post(ctx, "/v1/accounts:signInWithCustomToken", map[string]interface{}{
		"token":             customToken,
		"returnSecureToken": true,
	})
}

func (ic *IdentityClient) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	creds, err := ic.post(ctx, "/v1/token", map[string]interface{}{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	})
	if err != nil {
		return nil, errors.Wrap(err, "token refresh failed")
	}
	return creds, nil
}

func (ic *IdentityClient) post(ctx context.Context, path string, body map[string]interface{}) (*Credentials, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	requestURL := ic.baseURL + path
	if ic.apiKey != "" {
		requestURL += "?key=" + ic.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ic.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "identity provider unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, string(respBody))
	}

	creds := Credentials{}
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, errors.Wrap(err, "unable to decode identity response")
	}

	return &creds, nil
}
