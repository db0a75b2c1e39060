package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/diogo/tutorchat/internal/errors"
	"github.com/diogo/tutorchat/internal/models"
)

// ChatClient sends one message to the chat backend and returns its reply
type ChatClient interface {
	Send(ctx context.Context, message string) (*models.ChatResponse, error)
	Close()
}

// HTTPDoer is the subset of tls_client.HttpClient used by Client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the chat backend over HTTP
type Client struct {
	httpClient HTTPDoer
	endpoint   string
	chatPath   string
	timeout    time.Duration
	headers    map[string]string
	mu         sync.RWMutex
	closed     bool
}

// Ensure Client implements ChatClient
var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithChatPath overrides the chat path appended to the endpoint
func WithChatPath(path string) ClientOption {
	return func(c *Client) {
		c.chatPath = path
	}
}

// WithHeader adds or replaces a request header
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// NewClient creates a new Client for the given backend base URL
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = models.DefaultEndpoint
	}

	client := &Client{
		endpoint: endpoint,
		chatPath: models.ChatPath,
		timeout:  120 * time.Second,
		headers:  models.DefaultHeaders(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		// tls-client takes whole seconds; the context deadline in Send is
		// the precise bound.
		seconds := int(client.timeout / time.Second)
		if seconds <= 0 {
			seconds = 300
		}
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(seconds + 1),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// URL returns the full chat URL requests are sent to
func (c *Client) URL() string {
	return c.endpoint + c.chatPath
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close marks the client closed. Further sends fail with ErrClientClosed.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Send posts message to the backend and decodes its reply.
//
// A backend-reported failure comes back as a ChatResponse with Error set and
// a nil error. A returned error means the exchange itself failed.
func (c *Client) Send(ctx context.Context, message string) (*models.ChatResponse, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}
	if strings.TrimSpace(message) == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportError(ctx, url, err)
	}

	return decodeChatResponse(resp.StatusCode, url, body)
}

func (c *Client) transportError(ctx context.Context, url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(fmt.Sprintf("no reply from %s after %s", url, c.timeout))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.NewTimeoutError(fmt.Sprintf("no reply from %s after %s", url, c.timeout))
	}
	return apierrors.NewNetworkErrorWithEndpoint("send message", url, err)
}
