// Package client calls the ingestion service over HTTP and reshapes its
// response for callers that want raw bytes.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nishit12/Importlargefile/internal/ingest"
	"github.com/nishit12/Importlargefile/internal/reclaim"
)

// ErrRejected is wrapped by errors reporting a non-2xx response.
var ErrRejected = errors.New("request rejected")

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 * 1024

// Client talks to one ingestion service.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New returns a Client for baseURL (e.g. "http://localhost:8080"). A nil
// httpClient uses one without a timeout, since transcodes can run long.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: u, httpClient: httpClient}, nil
}

// Result is a decoded pipeline result.
type Result struct {
	// Size is the exact byte count reported by the service. Prefer it over
	// EstimatedSize.
	Size int64
	// EstimatedSize is derived from the base64 length as ceil(len*3/4) and
	// may overshoot by up to two bytes of padding.
	EstimatedSize int64
	Type          string
	FileName      string
	Bytes         []byte
}

// RejectedError carries the status and message of a failed request.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s (HTTP %d): %s", ErrRejected, e.StatusCode, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// wireResult mirrors the service response with the byte array kept as text
// so the estimate can be computed from it.
type wireResult struct {
	Size      int64  `json:"size"`
	Type      string `json:"type"`
	FileName  string `json:"fileName"`
	ByteArray string `json:"byteArray"`
}

// Process submits req and returns the decoded result.
func (c *Client) Process(ctx context.Context, req ingest.FileRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, bytes.NewReader(body), "api", "process")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(wire.ByteArray)
	if err != nil {
		return nil, fmt.Errorf("decode byteArray: %w", err)
	}

	return &Result{
		Size:          wire.Size,
		EstimatedSize: EstimateSize(len(wire.ByteArray)),
		Type:          wire.Type,
		FileName:      wire.FileName,
		Bytes:         data,
	}, nil
}

// FetchResult downloads the raw bytes of a cached result by file name.
func (c *Client) FetchResult(ctx context.Context, fileName string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, nil, "api", "results", url.PathEscape(fileName))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	return data, nil
}

// Reclaim asks the service to run a cleanup pass now.
func (c *Client) Reclaim(ctx context.Context) (*reclaim.Report, error) {
	resp, err := c.do(ctx, http.MethodPost, nil, "api", "reclaim")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var report reclaim.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// EstimateSize returns ceil(n*3/4), the decoded size of n base64 characters
// before padding is accounted for.
func EstimateSize(n int) int64 {
	return (int64(n)*3 + 3) / 4
}

// do sends a request to the escaped path segments under the base URL and
// turns non-2xx responses into a *RejectedError.
func (c *Client) do(ctx context.Context, method string, body io.Reader, segments ...string) (*http.Response, error) {
	u := c.baseURL.JoinPath(segments...)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, rejection(resp)
	}
	return resp, nil
}

func rejection(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &RejectedError{StatusCode: resp.StatusCode, Message: msg}
}
