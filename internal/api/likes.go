package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/types"
)

// CreateLike records the session user's like on a post.
func CreateLike(ctx context.Context, httpClient HTTPClient, baseURL string, postID types.ID) error {
	url := fmt.Sprintf("%s/api/v1/likes/", baseURL)
	req := types.LikeRequest{Post: postID}
	return doJSON(ctx, httpClient, http.MethodPost, url, req, http.StatusCreated, nil, "create like")
}

// DeleteLike removes the session user's like from a post. The backend
// identifies the like by the request body, not the path.
func DeleteLike(ctx context.Context, httpClient HTTPClient, baseURL string, postID types.ID) error {
	url := fmt.Sprintf("%s/api/v1/likes/", baseURL)
	req := types.LikeRequest{Post: postID}
	return doJSON(ctx, httpClient, http.MethodDelete, url, req, http.StatusNoContent, nil, "delete like")
}
