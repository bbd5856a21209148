// Package backend talks to the answer service that turns a question plus
// scraped products into a natural-language reply.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/types"
)

// AskRequest is the payload sent to the answer service.
type AskRequest struct {
	Query     string          `json:"query"`
	Products  []types.Product `json:"products"`
	PageURL   string          `json:"page_url"`
	PageTitle string          `json:"page_title"`
	SiteType  string          `json:"site_type"`
	PageType  types.PageType  `json:"page_type"`
	ItemCount int             `json:"item_count"`
}

// AskResponse is the answer service's reply.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Client calls the answer service over HTTP. There is no retry; a failed
// call surfaces immediately so the caller can degrade to a local reply.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a Client from config.
func NewClient(cfg config.BackendConfig, logger *slog.Logger) *Client {
	return &Client{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "backend"),
	}
}

// Ask sends the question and page context to the answer service. Every
// failure mode wraps types.ErrBackendUnavailable so callers can detect
// backend trouble with a single errors.Is check.
func (c *Client) Ask(ctx context.Context, req AskRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", &types.BackendError{URL: c.url, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &types.BackendError{URL: c.url, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("answer service unreachable", "url", c.url, "error", err)
		return "", &types.BackendError{URL: c.url, Err: fmt.Errorf("%w: %v", types.ErrBackendUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("answer service error", "url", c.url, "status", resp.StatusCode)
		return "", &types.BackendError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        types.ErrBackendUnavailable,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &types.BackendError{URL: c.url, Err: fmt.Errorf("%w: read response: %v", types.ErrBackendUnavailable, err)}
	}

	var out AskResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &types.BackendError{URL: c.url, Err: fmt.Errorf("%w: decode response: %v", types.ErrBackendUnavailable, err)}
	}
	return out.Answer, nil
}
