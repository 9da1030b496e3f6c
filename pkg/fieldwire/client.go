// Package fieldwire is the client for the external project service that owns
// the task collection. Tasks are fetched once per project view and enriched
// with status and team names so the rest of the system never needs a second
// lookup.
package fieldwire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"lablink/pkg/taskboard"
)

// apiVersion is sent on every request; the task API rejects unversioned calls.
const apiVersion = "2024-01-01"

// ErrNoTasks is returned when the project exists but has no active tasks.
// Callers surface it the same way as a transport error: one user-facing
// error state, never a partial list.
var ErrNoTasks = errors.New("no tasks found")

// Client talks to the task API. The zero value is not usable; use New.
type Client struct {
	apiURL   string
	tokenURL string
	apiToken string
	httpc    *http.Client

	bearer string
}

// New returns a client for the given API base URL. The token URL hosts the
// JWT exchange endpoint; apiToken is the long-lived account API token that is
// traded for a short-lived bearer token on first use.
func New(apiURL, tokenURL, apiToken string) *Client {
	return &Client{
		apiURL:   apiURL,
		tokenURL: tokenURL,
		apiToken: apiToken,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

// token exchanges the API token for a bearer token, caching it for the life
// of the client.
func (c *Client) token(ctx context.Context) (string, error) {
	if c.bearer != "" {
		return c.bearer, nil
	}

	body, err := json.Marshal(map[string]string{"api_token": c.apiToken})
	if err != nil {
		return "", fmt.Errorf("encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.tokenURL+"/api_keys/jwt", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange api token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("exchange api token: status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("no access token in response")
	}

	c.bearer = tr.AccessToken
	return c.bearer, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	bearer, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Fieldwire-Version", apiVersion)
	req.Header.Set("Fieldwire-Per-Page", "1000")
	req.Header.Set("Fieldwire-Filter", "active")
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// FetchProjects returns the projects visible to the account.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/api/v3/account/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FetchTasks returns the project's active tasks enriched with status and
// team names. Transport failures and an empty task list both collapse into a
// single error; the caller never renders a partial view.
func (c *Client) FetchTasks(ctx context.Context, projectID string) ([]taskboard.Task, error) {
	var raw []apiTask
	if err := c.get(ctx, "/api/v3/projects/"+projectID+"/tasks", &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoTasks
	}

	var teams []apiTeam
	if err := c.get(ctx, "/api/v3/projects/"+projectID+"/teams", &teams); err != nil {
		return nil, err
	}

	var attrs projectAttributes
	if err := c.get(ctx, "/api/v3/account/project_attributes/"+projectID, &attrs); err != nil {
		return nil, err
	}

	teamsByID := make(map[string]apiTeam, len(teams))
	for _, tm := range teams {
		teamsByID[tm.ID] = tm
	}
	statusNames := make(map[string]string, len(attrs.Statuses))
	for _, st := range attrs.Statuses {
		statusNames[st.ID] = st.Name
	}

	tasks := make([]taskboard.Task, len(raw))
	for i, rt := range raw {
		tm := teamsByID[rt.TeamID]
		tasks[i] = taskboard.Task{
			ID:             rt.ID,
			SequenceNumber: rt.SequenceNumber,
			Name:           rt.Name,
			CreatedAt:      rt.CreatedAt,
			StatusID:       rt.StatusID,
			StatusName:     statusNames[rt.StatusID],
			TeamID:         rt.TeamID,
			TeamName:       tm.Name,
			TeamHandle:     tm.Handle,
		}
	}
	return tasks, nil
}
