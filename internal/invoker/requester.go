package invoker

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/maxvaer/smokecheck/internal/config"
	"github.com/maxvaer/smokecheck/pkg/version"
)

// ErrUnsupportedMethod is returned for methods other than GET, POST, PUT
// and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported method")

// Response holds the parsed HTTP response data.
type Response struct {
	StatusCode int
	Body       []byte
	URL        string
	Duration   time.Duration
}

// Requester is an HTTP session against one base URL. Cookies set by the
// target and headers added with SetHeader apply to every later request.
type Requester struct {
	client    *http.Client
	baseURL   *url.URL
	headers   map[string]string
	userAgent string
}

// NewRequester creates a Requester from the provided options.
func NewRequester(opts *config.Options) (*Requester, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" {
		base.Scheme = "http"
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: missing host", opts.BaseURL)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: opts.Insecure},
		DialContext: (&net.Dialer{
			Timeout: opts.Timeout,
		}).DialContext,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "smokecheck/" + version.Version
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Requester{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
			Jar:       jar,
		},
		baseURL:   base,
		headers:   headers,
		userAgent: ua,
	}, nil
}

// BaseURL returns the normalized base URL.
func (r *Requester) BaseURL() string {
	return r.baseURL.String()
}

// SetHeader adds a header to every subsequent request.
func (r *Requester) SetHeader(key, value string) {
	r.headers[key] = value
}

// Do sends one request for path. A non-nil body is sent as JSON for POST
// and PUT and ignored for GET and DELETE.
func (r *Requester) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	switch method {
	case http.MethodGet, http.MethodDelete:
		body = nil
	case http.MethodPost, http.MethodPut:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	targetURL := r.baseURL.String() + "/" + strings.TrimLeft(path, "/")

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s: %w", path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, payload)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %s: %w", path, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		URL:        targetURL,
		Duration:   time.Since(start),
	}, nil
}
