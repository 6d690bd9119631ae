package appmessage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrDispatch = errors.New("app message dispatch failed")

// Sender is the outbound channel to the watch.
type Sender interface {
	Send(ctx context.Context, payload Payload) error
}

// WebhookSender posts the payload as JSON to the bridge that relays
// AppMessages to the watch.
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *WebhookSender) Send(ctx context.Context, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDispatch, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: host returned status code %d: %s", ErrDispatch, resp.StatusCode, bytes.TrimSpace(detail))
	}

	return nil
}

// LogSender only logs the payload. It stands in for the host when no bridge
// is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	event := log.Info()
	for key, value := range payload.Dictionary() {
		id, _ := key.ID()
		event = event.Dict(string(key), zerolog.Dict().Uint32("id", id).Interface("value", value))
	}
	event.Msg("app message")

	return nil
}
