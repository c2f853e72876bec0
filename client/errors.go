package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNoToken is returned when a request is attempted without a bearer
// credential - the request never reaches the network.
var ErrNoToken = errors.New("no auth token available")

// APIError is the one error shape the rest of the app branches on for
// backend failures.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors []string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody is the backend's non-2xx payload i.e {error: "...", errors: [...]}
type errorBody struct {
	Error  string        `json:"error"`
	Errors []interface{} `json:"errors"`
}

func apiErrorFromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	body := errorBody{}
	if err := json.Unmarshal(bodyBytes, &body); err != nil || body.Error == "" {
		return apiErr
	}

	apiErr.Message = body.Error
	for _, fieldErr := range body.Errors {
		apiErr.FieldErrors = append(apiErr.FieldErrors, fmt.Sprint(fieldErr))
	}

	return apiErr
}
