// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient talks to the studio REST backend on behalf of a visitor.
// Each visitor gets a client bound to their own cookie jar so the backend
// session cookie is relayed exactly as a browser would relay it.
package apiclient

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

	"github.com/tidwall/gjson"
)

// Client configuration constants
const (
	MaxResponseLen = 4 << 20 // Maximum response body read (4MB)
	UserAgent      = "studio-site/1.0"
)

// GenericErrorMessage is shown when a failed response carries no message.
const GenericErrorMessage = "Something went wrong. Please try again."

// UnreachableMessage is shown when the backend cannot be reached at all.
const UnreachableMessage = "The studio server could not be reached. Please try again."

// defaultTransport is shared by every per-visitor client.
var defaultTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string // extracted from the JSON body, may be empty
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, http.StatusText(e.Status))
}

// HTTPStatus returns the response status code.
func (e *Error) HTTPStatus() int {
	return e.Status
}

// UserMessage returns the backend-provided message.
func (e *Error) UserMessage() string {
	return e.Message
}

// IsStatus reports whether err is a backend response with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message returns a message suitable for an error banner.
// Backend messages are used verbatim; transport failures get a neutral text.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if fallback != "" {
			return fallback
		}
		return GenericErrorMessage
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return UnreachableMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return UnreachableMessage
	}
	if fallback != "" {
		return fallback
	}
	return GenericErrorMessage
}

// errorMessage extracts the first string among message, error and msg.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"message", "error", "msg"} {
		if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// Client is a backend API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:5000/api).
// A nil httpClient uses the shared transport without a cookie jar.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: defaultTransport}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithJar returns a copy of the client that stores and replays cookies
// through jar. The transport is shared.
func (c *Client) WithJar(jar http.CookieJar) *Client {
	hc := &http.Client{
		Transport:     c.http.Transport,
		CheckRedirect: c.http.CheckRedirect,
		Jar:           jar,
		Timeout:       c.http.Timeout,
	}
	return &Client{baseURL: c.baseURL, http: hc}
}

// do sends a JSON request and returns the raw response body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// decodeField decodes the value under key, or the whole body when the
// backend did not wrap the payload.
func decodeField(body []byte, key string, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("empty response body")
	}
	raw := body
	if v := gjson.GetBytes(body, key); v.Exists() {
		raw = []byte(v.Raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// stringList reads a list of enum values that may be plain strings or
// objects carrying a value or name.
func stringList(body []byte, key string) []string {
	res := gjson.GetBytes(body, key)
	if !res.Exists() {
		res = gjson.ParseBytes(body)
	}
	var out []string
	for _, item := range res.Array() {
		switch {
		case item.Type == gjson.String:
			out = append(out, item.Str)
		case item.IsObject():
			for _, k := range []string{"value", "name", "code"} {
				if v := item.Get(k); v.Type == gjson.String && v.Str != "" {
					out = append(out, v.Str)
					break
				}
			}
		}
	}
	return out
}
