// Package api is the resource client: one file per remote resource, free
// functions taking the HTTP client and base URL. Authorization headers are
// added by the transport layer; this package only shapes requests, checks
// statuses, and decodes responses against explicit schemas.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/errors"
)

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// doJSON performs a JSON request and decodes the response into out (when
// non-nil). Non-success statuses become classified errors carrying the
// response body; undecodable payloads become SchemaErrors.
func doJSON(ctx context.Context, httpClient HTTPClient, method, url string, body any, wantStatus int, out any, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(op, err)
	}
	if resp.StatusCode != wantStatus {
		return errors.NewHTTPError(resp.StatusCode, string(payload), op)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &errors.SchemaError{Endpoint: op, Err: err}
	}
	return nil
}
