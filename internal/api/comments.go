package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/types"
)

// CreateComment adds a comment to a post. The server is authoritative for
// the comment's id and author fields.
func CreateComment(ctx context.Context, httpClient HTTPClient, baseURL string, postID types.ID, text string) (*types.WireComment, error) {
	url := fmt.Sprintf("%s/api/v1/comments/", baseURL)
	req := types.CommentRequest{Post: postID, Text: text}
	var out types.WireComment
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, http.StatusCreated, &out, "create comment"); err != nil {
		return nil, err
	}
	return &out, nil
}
