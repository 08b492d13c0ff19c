package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrRejected = errors.New("relay rejected order")

type ackBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HTTPClient posts orders to the relay's /send-order endpoint. An order
// counts as delivered only on a 2xx response whose body says success.
type HTTPClient struct {
	url  string
	http *http.Client
}

func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *HTTPClient) SendOrder(ctx context.Context, p domain.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("read relay response: %w", err)
	}

	var ack ackBody
	decodeErr := json.Unmarshal(raw, &ack)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ack.Error
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, msg)
	}
	if decodeErr != nil || ack.Success == nil {
		return fmt.Errorf("%w: malformed acknowledgement", ErrRejected)
	}
	if !*ack.Success {
		return fmt.Errorf("%w: %s", ErrRejected, ack.Error)
	}
	return nil
}
