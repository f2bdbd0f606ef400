package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/types"
)

// ObtainToken exchanges credentials for an access/refresh token pair.
// The endpoint is unauthenticated.
func ObtainToken(ctx context.Context, httpClient HTTPClient, baseURL, username, password string) (*types.TokenResponse, error) {
	url := fmt.Sprintf("%s/api/v1/token/", baseURL)
	var tok types.TokenResponse
	req := types.TokenRequest{Username: username, Password: password}
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, http.StatusOK, &tok, "obtain token"); err != nil {
		return nil, err
	}
	if tok.Access == "" {
		return nil, &errors.SchemaError{Endpoint: "obtain token", Err: fmt.Errorf("response missing access token")}
	}
	return &tok, nil
}

// Register creates a new account. The endpoint is unauthenticated.
func Register(ctx context.Context, httpClient HTTPClient, baseURL, username, password string) (types.ID, error) {
	url := fmt.Sprintf("%s/api/v1/auth/register/", baseURL)
	var out types.RegisterResponse
	req := types.RegisterRequest{Username: username, Password: password}
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, http.StatusCreated, &out, "register"); err != nil {
		return "", err
	}
	return out.UserID, nil
}
