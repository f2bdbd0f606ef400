package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/types"
)

// ListProfiles returns all profiles. Login uses this to resolve the
// session user id by exact username match.
func ListProfiles(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.WireProfile, error) {
	url := fmt.Sprintf("%s/api/v1/profiles/", baseURL)
	var out []types.WireProfile
	if err := doJSON(ctx, httpClient, http.MethodGet, url, nil, http.StatusOK, &out, "list profiles"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProfile retrieves a profile together with the owner's posts.
func GetProfile(ctx context.Context, httpClient HTTPClient, baseURL string, userID types.ID) (*types.ProfileEnvelope, error) {
	url := fmt.Sprintf("%s/api/v1/profiles/%s/", baseURL, userID)
	var out types.ProfileEnvelope
	if err := doJSON(ctx, httpClient, http.MethodGet, url, nil, http.StatusOK, &out, "get profile"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile sends a partial update of the editable profile fields.
// The backend enforces ownership; a mismatch comes back as 403.
func UpdateProfile(ctx context.Context, httpClient HTTPClient, baseURL string, userID types.ID, patch types.ProfilePatch) (*types.WireProfile, error) {
	url := fmt.Sprintf("%s/api/v1/profiles/%s/", baseURL, userID)
	var out types.WireProfile
	if err := doJSON(ctx, httpClient, http.MethodPatch, url, patch, http.StatusOK, &out, "update profile"); err != nil {
		return nil, err
	}
	return &out, nil
}
