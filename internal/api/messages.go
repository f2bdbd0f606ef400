package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/feedkit/feedkit-go/internal/types"
)

// SendMessage posts a message to a chat and returns the server's copy,
// which is authoritative for id, author, and timestamp.
func SendMessage(ctx context.Context, httpClient HTTPClient, baseURL string, chatID types.ID, text string) (*types.WireMessage, error) {
	url := fmt.Sprintf("%s/api/v1/messages/", baseURL)
	req := types.MessageRequest{Text: text, Chat: chatID}
	var out types.WireMessage
	if err := doJSON(ctx, httpClient, http.MethodPost, url, req, http.StatusCreated, &out, "send message"); err != nil {
		return nil, err
	}
	return &out, nil
}
