// Package catalog fetches and normalizes recipes from the upstream recipe
// catalog (a TheMealDB-compatible HTTP API).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/recipebook/apiserver/types"
)

// Client calls the upstream catalog over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Search queries the catalog by recipe name and returns the normalized
// results. No upstream matches yields an empty, non-nil slice. Records that
// fail normalization are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]types.Recipe, error) {
	raw, err := c.fetch(ctx, "/search.php?s="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	recipes := make([]types.Recipe, 0, len(raw))
	for _, record := range raw {
		if recipe, ok := record.normalize(); ok {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

// Lookup fetches a single recipe by id. The boolean reports whether the
// catalog knows the id.
func (c *Client) Lookup(ctx context.Context, recipeID string) (types.Recipe, bool, error) {
	raw, err := c.fetch(ctx, "/lookup.php?i="+url.QueryEscape(recipeID))
	if err != nil {
		return types.Recipe{}, false, err
	}
	if len(raw) == 0 {
		return types.Recipe{}, false, nil
	}
	recipe, ok := raw[0].normalize()
	return recipe, ok, nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]mealRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return nil, err
	}

	var result struct {
		Meals []mealRecord `json:"meals"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("catalog %s: decode: %w", path, err)
	}
	return result.Meals, nil
}

// checkResp returns an error if the status is not 2xx, including the upstream
// body for debugging.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("catalog %s returned %d: %s", path, resp.StatusCode, string(body))
}
