package zencat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zencat/internal/errors"
	"zencat/models"
	"zencat/ports"

	"github.com/rs/zerolog"
)

// Client talks to the remote ZenCat REST API. Only the bulk-create endpoints
// are used here; creation happens strictly after validation passed.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates an API client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// CreateSessions submits a validated session batch.
func (c *Client) CreateSessions(ctx context.Context, sessions []models.Session) error {
	return c.post(ctx, "/session/bulk-create", map[string]any{"sessions": sessions})
}

// CreateCommunities submits a validated community batch.
func (c *Client) CreateCommunities(ctx context.Context, communities []models.Community) error {
	return c.post(ctx, "/community/bulk-create", map[string]any{"communities": communities})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("path", path).Int("bytes", len(body)).Msg("calling creation API")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.ExternalServiceError("zencat", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The API's own message is shown to the caller as-is.
		msg := apiMessage(resp.Body)
		if msg == "" {
			msg = resp.Status
		}
		return errors.ExternalServiceError("zencat", fmt.Errorf("%s", msg))
	}
	return nil
}

// apiMessage extracts the error message the API embeds in failure responses,
// falling back to the raw body.
func apiMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

var _ ports.BulkCreator = (*Client)(nil)
