package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/types"
)

// ListChats returns the session user's chats.
func ListChats(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.WireChat, error) {
	url := fmt.Sprintf("%s/api/v1/chats/", baseURL)
	var out []types.WireChat
	if err := doJSON(ctx, httpClient, http.MethodGet, url, nil, http.StatusOK, &out, "list chats"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetChat retrieves one chat including its messages.
func GetChat(ctx context.Context, httpClient HTTPClient, baseURL string, chatID types.ID) (*types.WireChat, error) {
	url := fmt.Sprintf("%s/api/v1/chats/%s/", baseURL, chatID)
	var out types.WireChat
	if err := doJSON(ctx, httpClient, http.MethodGet, url, nil, http.StatusOK, &out, "get chat"); err != nil {
		return nil, err
	}
	return &out, nil
}
