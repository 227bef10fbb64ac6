package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client bound to a base URL.
type Client struct {
	baseURL        string
	client         *http.Client
	defaultHeaders map[string]string
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	DefaultHeaders      map[string]string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         client,
		defaultHeaders: opts.DefaultHeaders,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doRequest performs a single attempt against the base URL. It returns
// the decoded success response for 2xx statuses, the decoded error
// response for other statuses, the status code, and the transport or
// decode error if any. A status of 0 means the request never reached
// the server.
func (hc *Client) doRequest(ctx context.Context, method RequestMethod, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (any, any, int, error) {
	fullURL := hc.baseURL + path
	if len(queryParams) > 0 {
		values := url.Values{}
		for key, value := range queryParams {
			values.Set(key, value)
		}
		fullURL += "?" + values.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), fullURL, reqBody)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("build request: %w", err)
	}

	for key, value := range hc.defaultHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil && len(respBody) > 0 {
			if err := decodeBody(resp.Header.Get("Content-Type"), respBody, successResp); err != nil {
				return nil, nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
		}
		return successResp, nil, resp.StatusCode, nil
	}

	if errorResp != nil && len(respBody) > 0 {
		// Error bodies are decoded best-effort; the caller still gets the status.
		_ = decodeBody(resp.Header.Get("Content-Type"), respBody, errorResp)
	}
	return nil, errorResp, resp.StatusCode, nil
}

// decodeBody unmarshals data into target based on the content type,
// handling non-UTF-8 charsets for XML payloads.
func decodeBody(contentType string, data []byte, target any) error {
	mainType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mainType = contentType[:idx]
	}
	mainType = strings.TrimSpace(strings.ToLower(mainType))

	if strings.Contains(mainType, "xml") {
		dec := xml.NewDecoder(bytes.NewReader(data))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	}

	return json.Unmarshal(data, target)
}
