// Package backend talks to the external service that parses and aggregates
// uploaded equipment CSV files.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Sameer280406/Projects/internal/models"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

const (
	uploadPath  = "/upload/"
	latestPath  = "/summary/latest/"
	historyPath = "/summary/history/"

	// FileField is the multipart field the backend reads the CSV from.
	FileField = "file"
)

// UploadError is the single failure bucket for an upload: transport errors,
// non-2xx responses and undecodable bodies all end up here.
type UploadError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UploadError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("backend %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("backend %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
	}
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Client is an HTTP client for the backend API.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	httpClient *http.Client
	DebugLog   func(string, ...any)
}

// NewClient creates a client for baseURL. A zero timeout waits indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) dbg(format string, args ...any) {
	if fn := c.DebugLog; fn != nil {
		fn(format, args...)
	}
}

func (c *Client) url(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL + path
}

// BaseURL returns the client's base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// UploadURL returns the full address uploads are posted to.
func (c *Client) UploadURL() string {
	return c.url(uploadPath)
}

// Upload posts the raw file as multipart form data and returns the summary
// the backend computed. The response body is not validated beyond decoding.
func (c *Client) Upload(ctx context.Context, fileName string, data []byte) (*models.Summary, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(FileField, fileName)
	if err != nil {
		return nil, &UploadError{Op: "upload", Err: fmt.Errorf("creating form file: %w", err)}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &UploadError{Op: "upload", Err: fmt.Errorf("writing form file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &UploadError{Op: "upload", Err: fmt.Errorf("closing multipart writer: %w", err)}
	}

	respBody, status, err := c.do(ctx, http.MethodPost, uploadPath, writer.FormDataContentType(), body)
	if err != nil {
		return nil, &UploadError{Op: "upload", Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &UploadError{Op: "upload", StatusCode: status, Body: truncate(respBody, 512)}
	}

	summary, err := models.ParseSummary(respBody)
	if err != nil {
		return nil, &UploadError{Op: "upload", StatusCode: status, Err: err}
	}
	return summary, nil
}

// Latest returns the most recently stored dataset.
func (c *Client) Latest(ctx context.Context) (*models.Dataset, error) {
	var ds models.Dataset
	if err := c.getJSON(ctx, latestPath, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// History returns the datasets the backend still keeps, newest first.
func (c *Client) History(ctx context.Context) ([]models.Dataset, error) {
	var list []models.Dataset
	if err := c.getJSON(ctx, historyPath, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) getJSON(ctx context.Context, path string, result any) error {
	data, status, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return fmt.Errorf("backend GET %s: %w", path, err)
	}
	if status < 200 || status > 299 {
		return &UploadError{Op: "GET " + path, StatusCode: status, Body: truncate(data, 512)}
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("backend decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, int, error) {
	fullURL := c.url(path)
	c.dbg("-> %s %s", method, fullURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.dbg("<- %s %s error after %dms: %v", method, path, time.Since(start).Milliseconds(), err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading body: %w", err)
	}
	c.dbg("<- %s %s %d after %dms body=%s", method, path, resp.StatusCode, time.Since(start).Milliseconds(), truncate(data, 2048))

	return data, resp.StatusCode, nil
}

func truncate(data []byte, maxLen int) string {
	if len(data) == 0 {
		return "<empty>"
	}
	if len(data) <= maxLen {
		return string(data)
	}
	return string(data[:maxLen]) + "...(truncated)"
}
