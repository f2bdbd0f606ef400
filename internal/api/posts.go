package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/types"
)

// ListPosts retrieves the feed.
func ListPosts(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.WirePost, error) {
	url := fmt.Sprintf("%s/api/v1/posts/", baseURL)
	var out []types.WirePost
	if err := doJSON(ctx, httpClient, http.MethodGet, url, nil, http.StatusOK, &out, "list posts"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePost submits a new post as a multipart form: text, optional image
// file, location, is_published flag, and one repeated tags field per token.
func CreatePost(ctx context.Context, httpClient HTTPClient, baseURL string, draft types.PostDraft) (*types.WirePost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", draft.Text); err != nil {
		return nil, err
	}
	if err := mw.WriteField("location", draft.Location); err != nil {
		return nil, err
	}
	if err := mw.WriteField("is_published", strconv.FormatBool(draft.IsPublished)); err != nil {
		return nil, err
	}
	for _, tag := range types.SplitTags(draft.Tags) {
		if err := mw.WriteField("tags", tag); err != nil {
			return nil, err
		}
	}
	if len(draft.Image) > 0 {
		name := draft.ImageName
		if name == "" {
			name = "upload"
		}
		fw, err := mw.CreateFormFile("image", name)
		if err != nil {
			return nil, err
		}
		if _, err := fw.Write(draft.Image); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v1/posts/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewNetworkError("create post", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("create post", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, errors.NewHTTPError(resp.StatusCode, string(payload), "create post")
	}
	var post types.WirePost
	if err := json.Unmarshal(payload, &post); err != nil {
		return nil, &errors.SchemaError{Endpoint: "create post", Err: err}
	}
	return &post, nil
}
