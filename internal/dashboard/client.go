// Package dashboard is a minimal client for the pwappy dashboard's
// application management API. Test fixtures use it to create the per-test
// application before a test and to delete it afterwards, whatever the test
// outcome.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pwappy-com/pwappy-web-tests-sub001/internal/config"
)

// Client talks to the dashboard REST API with the suite's session cookies.
type Client struct {
	baseURL string
	http    *http.Client
	cookies []*http.Cookie
}

// New builds a client from the suite configuration.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.DashboardURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cookies: cfg.HTTPCookies(),
	}
}

// CreateApp registers a new application under the given name and key.
func (c *Client) CreateApp(ctx context.Context, name, key string) error {
	body, err := json.Marshal(map[string]string{"name": name, "key": key})
	if err != nil {
		return fmt.Errorf("encode create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/apps", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("create app %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("create app %q: %s", name, apiError(resp))
	}
	return nil
}

// DeleteApp removes the application. A 404 counts as success so teardown
// stays idempotent when the test body already removed the app, or when
// creation failed half-way.
func (c *Client) DeleteApp(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/apps/"+key, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete app %q: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete app %q: %s", key, apiError(resp))
	}
	return nil
}

// EditorURL returns the visual editor address for an application.
func (c *Client) EditorURL(key string) string {
	return c.baseURL + "/editor/" + key + "/"
}

// TestPageURL returns the deployed test page address for an application.
// The test page serves the generated output independently of the editor's
// live preview.
func (c *Client) TestPageURL(key string) string {
	return c.baseURL + "/app/" + key + "/"
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	return c.http.Do(req)
}

// apiError extracts the API's message field when the body is the usual
// {"message": ...} payload, falling back to the raw body.
func apiError(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, msg.String())
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
