package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/relay/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://api.telegram.org"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage succeeds only when the Bot API answers ok=true.
func (c *Client) SendMessage(ctx context.Context, creds app.Credentials, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: creds.ChatID, Text: text})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, creds.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// the URL carries the token; keep it out of the error
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return fmt.Errorf("telegram request failed: %w", uerr.Err)
		}
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode telegram response (status %d): %w", resp.StatusCode, err)
	}
	if !out.OK {
		if out.Description == "" {
			out.Description = http.StatusText(resp.StatusCode)
		}
		return errors.New(out.Description)
	}
	return nil
}
