// Package webhooks registers the bot's webhook subscriptions with a remote
// registry and keeps them in line with a declared set.
package webhooks

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
	"time"

	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

// DefaultPageSize is the max query parameter used when listing
const DefaultPageSize = 100

// Client talks to the webhook registry REST API
type Client struct {
	baseURL    string
	token      string
	platform   string
	pageSize   int
	httpClient *http.Client
	logger     logging.Logger
}

// Config for the registry client
type Config struct {
	BaseURL  string // e.g. https://webexapis.com/v1
	Token    string // bearer credential
	Platform string // used to label errors, defaults to "webex"
	PageSize int
	Timeout  time.Duration

	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
	Logger     logging.Logger
}

// WebhookRequest is the body of create and update calls
type WebhookRequest struct {
	Name      string `json:"name"`
	TargetURL string `json:"targetUrl"`
	Resource  string `json:"resource"`
	Event     string `json:"event"`
	Secret    string `json:"secret"`
	Filter    string `json:"filter,omitempty"`
}

type listResponse struct {
	Items []models.WebhookRecord `json:"items"`
}

// NewClient creates a new registry client
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		platform:   cfg.Platform,
		pageSize:   cfg.PageSize,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.platform == "" {
		c.platform = "webex"
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	return c
}

// Platform returns the platform name used in errors
func (c *Client) Platform() string {
	return c.platform
}

// ListWebhooks returns every registered webhook, following pagination links.
// Any failed page fails the whole listing.
func (c *Client) ListWebhooks(ctx context.Context) ([]models.WebhookRecord, error) {
	first := c.baseURL + "/webhooks?max=" + strconv.Itoa(c.pageSize)
	pages := newPageIterator[listResponse](c, first)

	var all []models.WebhookRecord
	for {
		page, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		all = append(all, page.Items...)
	}

	c.logger.Debug("listed webhooks", "count", len(all), "pages", pages.Fetched())
	return all, nil
}

// CreateWebhook registers a new webhook
func (c *Client) CreateWebhook(ctx context.Context, req WebhookRequest) (*models.WebhookRecord, error) {
	var record models.WebhookRecord
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+"/webhooks", req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateWebhook replaces the webhook with the given remote id
func (c *Client) UpdateWebhook(ctx context.Context, id string, req WebhookRequest) (*models.WebhookRecord, error) {
	if id == "" {
		return nil, chaterr.Validation(c.platform, "webhook id is required for update")
	}
	var record models.WebhookRecord
	if _, err := c.do(ctx, http.MethodPut, c.baseURL+"/webhooks/"+url.PathEscape(id), req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// do sends one JSON request. Non-2xx responses become *chaterr.Error with the
// request context and raw body attached.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, chaterr.Transport(c.platform, method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, chaterr.Transport(c.platform, method, endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, chaterr.FromStatus(c.platform, method, endpoint, resp.StatusCode, resp.Header, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			e := chaterr.Transport(c.platform, method, endpoint, fmt.Errorf("failed to parse response: %w", err))
			e.StatusCode = resp.StatusCode
			e.Body = string(respBody)
			return nil, e
		}
	}
	return resp.Header, nil
}
