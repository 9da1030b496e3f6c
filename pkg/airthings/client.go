// Package airthings is the client for the external device service. The only
// write this system performs against it is device creation during linking;
// unlinking never touches it (un-pairing a physical device is a manual step).
package airthings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// tokenScope is requested on every client-credentials exchange.
const tokenScope = "read:device write:device profile"

// Device is the creation payload: the device id, the label composed for the
// linked task, and the serial number.
type Device struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
}

// APIError carries the device service's own failure message so it can be
// shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("device api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("device api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the device service using OAuth2 client credentials.
type Client struct {
	apiURL       string
	accountsURL  string
	clientID     string
	clientSecret string
	accountID    string
	httpc        *http.Client

	bearer string
}

// New returns a device service client. accountID scopes device creation to
// one customer account.
func New(apiURL, accountsURL, clientID, clientSecret, accountID string) *Client {
	return &Client{
		apiURL:       apiURL,
		accountsURL:  accountsURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		accountID:    accountID,
		httpc:        &http.Client{Timeout: 30 * time.Second},
	}
}

// token performs the client-credentials exchange, caching the bearer token
// for the life of the client.
func (c *Client) token(ctx context.Context) (string, error) {
	if c.bearer != "" {
		return c.bearer, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"scope":         {tokenScope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsURL+"/v1/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("device token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("device token exchange: status %d", resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode device token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("device token exchange: empty access token")
	}

	c.bearer = tr.AccessToken
	return c.bearer, nil
}

// CreateDevice registers a device under the given location. A non-2xx
// response becomes an *APIError carrying the service's message; nothing is
// retried here.
func (c *Client) CreateDevice(ctx context.Context, locationID string, dev Device) error {
	bearer, err := c.token(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(dev)
	if err != nil {
		return fmt.Errorf("encode device payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/locations/%s/devices?accountId=%s",
		c.apiURL, locationID, url.QueryEscape(c.accountID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create device request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("create device %s: %w", dev.SerialNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// readErrorMessage extracts a human-readable message from an error response,
// falling back to the raw body.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
