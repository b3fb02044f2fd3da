package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"baselineexplorer/internal/catalog"
	"baselineexplorer/pkg/models"
)

type apiClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

type viewResponse struct {
	Total   int              `json:"total"`
	Items   []models.Feature `json:"items"`
	Stats   catalog.Stats    `json:"stats"`
	Filters catalog.Filters  `json:"filters"`
	Loaded  bool             `json:"loaded"`
	Error   string           `json:"error,omitempty"`
	Scope   string           `json:"scope"`
}

type filtersPayload struct {
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
	Q        *string `json:"q,omitempty"`
}

func (c *apiClient) client() *http.Client {
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c.http
}

func (c *apiClient) view(ctx context.Context) (viewResponse, error) {
	var resp viewResponse
	err := c.doJSON(ctx, http.MethodGet, "/features", nil, &resp)
	return resp, err
}

// all returns every loaded record, ignoring the server's filters.
func (c *apiClient) all(ctx context.Context) (viewResponse, error) {
	var resp viewResponse
	err := c.doJSON(ctx, http.MethodGet, "/features?all=1", nil, &resp)
	return resp, err
}

func (c *apiClient) setFilters(ctx context.Context, p filtersPayload) (viewResponse, error) {
	var resp viewResponse
	err := c.doJSON(ctx, http.MethodPut, "/filters", p, &resp)
	return resp, err
}

func (c *apiClient) feature(ctx context.Context, id string) (models.Feature, error) {
	var f models.Feature
	err := c.doJSON(ctx, http.MethodGet, "/features/"+url.PathEscape(id), nil, &f)
	return f, err
}

func (c *apiClient) stats(ctx context.Context) (catalog.Stats, error) {
	var s catalog.Stats
	err := c.doJSON(ctx, http.MethodGet, "/stats", nil, &s)
	return s, err
}

func (c *apiClient) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	endpoint := strings.TrimRight(c.baseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// websocketURL maps the API base URL onto its ws:// or wss:// feed URL.
func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
