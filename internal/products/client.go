package products

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
)

var (
	ErrNotFound = errors.New("product not found")
	ErrRejected = errors.New("request rejected")
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("products api: status=%d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return ErrRejected
	}
	return nil
}

// Client talks to a running product service.
type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) Create(ctx context.Context, fields map[string]any) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodPost, "/products", fields, http.StatusCreated, &p)
	return p, err
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/products", nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, http.StatusOK, &p)
	return p, err
}

func (c *Client) Update(ctx context.Context, id int64, fields map[string]any) (Product, error) {
	var p Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), fields, http.StatusOK, &p)
	return p, err
}

func (c *Client) Delete(ctx context.Context, id int64) (Product, error) {
	var resp deleteResp
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, http.StatusOK, &resp)
	return resp.Deleted, err
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", jsonMediaType)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
