package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// ErrStatus reports a non-2xx response from the document source.
var ErrStatus = errors.New("unexpected status")

// ErrTooLarge reports a document exceeding the configured size limit.
var ErrTooLarge = errors.New("document too large")

// Source yields the raw document text.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Client fetches the document over HTTP.
type Client struct {
	docURL     string
	bustParam  string
	maxBytes   int64
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client for docURL. Each request carries bustParam
// set to the current time in milliseconds so intermediaries never serve a
// stale copy.
func NewClient(docURL, bustParam string, maxBytes int64, timeout time.Duration) *Client {
	return &Client{
		docURL:    docURL,
		bustParam: bustParam,
		maxBytes:  maxBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// Fetch retrieves the document body.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	u, err := c.requestURL()
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "text/markdown, text/plain, text/html;q=0.9, */*;q=0.5")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("fetch document: %w: %d: %s", ErrStatus, resp.StatusCode, string(respBody))
	}

	return readLimited(resp.Body, c.maxBytes)
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.docURL)
	if err != nil {
		return "", fmt.Errorf("parse document url: %w", err)
	}
	if c.bustParam != "" {
		q := u.Query()
		q.Set(c.bustParam, strconv.FormatInt(c.now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// File reads the document from the local filesystem.
type File struct {
	Path     string
	MaxBytes int64
}

func (f *File) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer fh.Close()
	return readLimited(fh, f.MaxBytes)
}

func readLimited(r io.Reader, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w (%d bytes max)", ErrTooLarge, maxBytes)
	}
	return string(data), nil
}
