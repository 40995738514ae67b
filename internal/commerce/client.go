package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/swims/storefront/internal/config"
	apperrors "github.com/swims/storefront/pkg/errors"
)

// Client talks to the remote commerce REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new commerce API client
func NewClient(cfg config.CommerceConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the API root, used to resolve relative image paths
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes a single API call
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
}

// do executes a request and decodes a JSON response into out (if non-nil).
// Every failure comes back as *errors.ErrUpstream.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	raw, err := c.doRaw(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperrors.ErrUpstream{Operation: r.op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, r request) ([]byte, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, &apperrors.ErrUpstream{Operation: r.op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Operation: r.op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Operation: r.op, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrUpstream{Operation: r.op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("commerce API error",
			zap.String("operation", r.op),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &apperrors.ErrUpstream{Operation: r.op, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
