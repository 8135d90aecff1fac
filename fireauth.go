// Package fireauth is a client for the Firebase Auth REST API.
// It exchanges credentials (email/password, OAuth assertion, custom token,
// anonymous request) for short-lived identity tokens, refreshes them
// transparently before authenticated calls, and exposes the account
// management operations of the identity toolkit endpoint.
package fireauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	defaultSecureTokenURL     = "https://securetoken.googleapis.com/v1"

	// requestIDHeader carries a per-request correlation ID so failed calls
	// can be matched against provider-side logs.
	requestIDHeader = "X-Client-Request-Id"

	// localeHeader localizes provider-sent emails (verification, reset).
	localeHeader = "X-Firebase-Locale"
)

// Client is the entry point to the API. It owns the HTTP transport, the
// client-side rate limiter guarding provider quota, and the clock used for
// token expiry decisions. A Client is safe for concurrent use; the sessions
// it produces are immutable values.
type Client struct {
	apiKey             string
	httpClient         *http.Client
	logger             *Logger
	limiter            *rate.Limiter
	identityToolkitURL string
	secureTokenURL     string

	// now is the clock used by session expiry checks. Tests replace it to
	// make boundary behavior deterministic.
	now func() time.Time
}

// New creates a Client from the given configuration. A nil config is
// rejected; use CreateConfig for defaults.
func New(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = NewLogger(config.LogLevel)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(httpClientSettings{
			Timeout:     config.RequestTimeout,
			DialTimeout: config.DialTimeout,
		})
	}

	identityToolkitURL := config.IdentityToolkitURL
	if identityToolkitURL == "" {
		identityToolkitURL = defaultIdentityToolkitURL
	}
	secureTokenURL := config.SecureTokenURL
	if secureTokenURL == "" {
		secureTokenURL = defaultSecureTokenURL
	}

	return &Client{
		apiKey:             config.APIKey,
		httpClient:         httpClient,
		logger:             logger,
		limiter:            rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		identityToolkitURL: identityToolkitURL,
		secureTokenURL:     secureTokenURL,
		now:                time.Now,
	}, nil
}

// accountsURL builds the URL for an identity toolkit accounts operation,
// e.g. accountsURL("lookup") -> .../v1/accounts:lookup?key=API_KEY.
func (c *Client) accountsURL(operation string) string {
	return fmt.Sprintf("%s/accounts:%s?key=%s", c.identityToolkitURL, operation, c.apiKey)
}

// tokenURL builds the URL for the secure token (refresh) endpoint.
func (c *Client) tokenURL() string {
	return fmt.Sprintf("%s/token?key=%s", c.secureTokenURL, c.apiKey)
}

// post performs exactly one JSON round trip against the given endpoint. It
// never retries; transient failures surface as *TransportError, provider
// rejections as *APIError, and malformed responses as *DecodeError.
func (c *Client) post(ctx context.Context, operation, url string, payload, out any) error {
	return c.postWithHeaders(ctx, operation, url, payload, out, nil)
}

func (c *Client) postWithHeaders(ctx context.Context, operation, url string, payload, out any, headers map[string]string) error {
	if !c.limiter.Allow() {
		return &TransportError{Operation: operation, Err: fmt.Errorf("client-side rate limit exceeded")}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	c.logger.Debugf("POST accounts:%s", operation)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Operation: operation, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyAPIError(operation, resp.StatusCode, respBody)
		c.logger.Errorf("%s rejected: %v", operation, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &DecodeError{Operation: operation, Err: err, Body: respBody}
	}
	return nil
}
