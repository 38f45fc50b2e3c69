// Package client provides a Go client for the kektorkv HTTP API.
//
// It wraps the three store endpoints (Set, Get, Remove), handling JSON
// encoding, query escaping and error mapping. A missing key on Get is a
// normal result, not an error.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError represents an error returned by the kektorkv API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type setRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type getResponse struct {
	Value string `json:"value"`
}

// Client is the Go client for interacting with kektorkv.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at host:port.
func New(host string, port int) *Client {
	return NewWithURL(fmt.Sprintf("http://%s:%d", host, port))
}

// NewWithURL creates a client for an explicit base URL such as "http://127.0.0.1:3030".
func NewWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// request executes a call and returns the status code and body of any 2xx or 404 reply.
// Every other status becomes an *APIError.
func (c *Client) request(method, endpoint string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil && errResp["error"] != "" {
			return 0, nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return 0, nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	return resp.StatusCode, respBody, nil
}

func keyQuery(endpoint, key string) string {
	return endpoint + "?" + url.Values{"key": {key}}.Encode()
}

// --- KV Methods ---

// Set stores value under key.
func (c *Client) Set(key, value string) error {
	status, body, err := c.request(http.MethodPost, "/set", setRequest{Key: key, Value: value})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}
	return nil
}

// Get retrieves the value for key. found is false when the server answers 404.
func (c *Client) Get(key string) (value string, found bool, err error) {
	status, body, err := c.request(http.MethodGet, keyQuery("/get", key), nil)
	if err != nil {
		return "", false, err
	}
	if status == http.StatusNotFound {
		return "", false, nil
	}

	var resp getResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false, fmt.Errorf("failed to decode get response: %w", err)
	}
	return resp.Value, true, nil
}

// Remove deletes key. Removing a missing key succeeds.
func (c *Client) Remove(key string) error {
	status, body, err := c.request(http.MethodDelete, keyQuery("/remove", key), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}
	return nil
}
