// Package stream is a small client for the Stream REST API covering the user
// management calls the gateway needs, plus local token signing.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://chat.stream-io-api.com"
	DefaultTimeout = 10 * time.Second

	clientHeader = "stream-gateway-go"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is safe for concurrent use. It is immutable after NewClient returns.
type Client struct {
	apiKey      string
	secret      []byte
	serverToken string
	baseURL     string
	httpClient  *http.Client
	now         func() time.Time
}

func NewClient(apiKey, secret string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("stream: api key is required")
	}
	if secret == "" {
		return nil, errors.New("stream: api secret is required")
	}

	serverToken, err := newServerToken([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("stream: sign server token: %w", err)
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:      apiKey,
		secret:      []byte(secret),
		serverToken: serverToken,
		baseURL:     baseURL,
		httpClient:  httpClient,
		now:         time.Now,
	}, nil
}

// UpsertUsers inserts or updates the given users.
func (c *Client) UpsertUsers(ctx context.Context, users ...UserRequest) (*UpdateUsersResponse, error) {
	if len(users) == 0 {
		return nil, errors.New("stream: at least one user is required")
	}

	req := UpdateUsersRequest{Users: make(map[string]UserRequest, len(users))}
	for _, u := range users {
		if u.ID == "" {
			return nil, ErrEmptyUserID
		}
		req.Users[u.ID] = u
	}

	var resp UpdateUsersResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v2/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteUsers schedules deletion of the given users. The provider performs the
// deletion as a background task whose id is returned.
func (c *Client) DeleteUsers(ctx context.Context, req DeleteUsersRequest) (*DeleteUsersResponse, error) {
	if len(req.UserIDs) == 0 {
		return nil, errors.New("stream: at least one user id is required")
	}

	var resp DeleteUsersResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v2/users/delete", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("stream: encode request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path + "?api_key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("stream: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.serverToken)
	req.Header.Set("stream-auth-type", "jwt")
	req.Header.Set("X-Stream-Client", clientHeader)
	req.Header.Set("x-client-request-id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stream: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stream: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("stream: decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = status
	}
	return apiErr
}
