// Package gallery is an HTTP client for the tabló gallery backend: roster
// listing, album photo management, photo uploads and assignment finalization.
package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Client talks to the gallery REST API using a pre-issued access token.
type Client struct {
	Url       string
	parsedURL *url.URL
	token     string
}

// NewClient creates a gallery client for the given base URL and access token.
func NewClient(rawURL, token string) (*Client, error) {
	apiURL := strings.TrimRight(rawURL, "/") + "/api/v1"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gallery URL: %w", err)
	}
	return &Client{Url: apiURL, parsedURL: parsed, token: token}, nil
}

// resolveURL builds a full URL from the base API URL and the given path segments.
// If the last segment contains a query string (e.g. "persons?type=student"), it
// is split so JoinPath only receives the path portion and the query is appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}

// doGetJSON performs a GET request and unmarshals the JSON response into the
// result type. The endpoint is the path after the base API URL.
func doGetJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// doRequestJSON performs an HTTP request with an optional JSON body and
// unmarshals the JSON response. It accepts one or more valid status codes.
func doRequestJSON[T any](ctx context.Context, c *Client, method, endpoint string, requestBody any, expectedStatuses ...int) (*T, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if !slices.Contains(expectedStatuses, resp.StatusCode) {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var result T
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// doPostJSON performs a POST request with a JSON body expecting 200 OK.
func doPostJSON[T any](ctx context.Context, c *Client, endpoint string, requestBody any) (*T, error) {
	return doRequestJSON[T](ctx, c, http.MethodPost, endpoint, requestBody, http.StatusOK)
}

// doRequestRaw performs an HTTP request without unmarshaling the response.
func doRequestRaw(ctx context.Context, c *Client, method, endpoint string, requestBody any) error {
	var bodyReader io.Reader
	if requestBody != nil {
		jsonBody, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), bodyReader)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	return nil
}

// IsNotFoundError returns true if the error indicates a 404 Not Found response.
func IsNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "status 404")
}
