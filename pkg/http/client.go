package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	dismiss404         bool
	defaultHeaders     map[string]string
	defaultQueryParams map[string]string
	defaultContentType string
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	Dismiss404          bool
	DefaultHeaders      map[string]string
	DefaultQueryParams  map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	// ConnectionTimeout bounds dialing. Zero keeps the default, a negative value disables it.
	ConnectionTimeout time.Duration
	// ReadTimeout bounds the whole exchange. Zero keeps the default, a negative value disables it.
	ReadTimeout time.Duration
	Logger      HTTPLogger
	// Transport replaces the pooled transport, mostly for tests.
	Transport http.RoundTripper
}

// ErrDecode marks a response body that could not be decoded into the requested type.
var ErrDecode = errors.New("failed to decode response body")

// StatusError is returned for non-2xx responses. ErrorResp holds the decoded error body, if any.
type StatusError struct {
	Status    int
	ErrorResp any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
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
	if opts.ReadTimeout < 0 {
		opts.ReadTimeout = 0
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout < 0 {
		opts.ConnectionTimeout = 0
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        opts.MaxIdleConns,
			MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
			IdleConnTimeout:     opts.IdleConnTimeout,
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		}
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		dismiss404:         opts.Dismiss404,
		defaultHeaders:     opts.DefaultHeaders,
		defaultQueryParams: opts.DefaultQueryParams,
		defaultContentType: opts.DefaultContentType,
		logger:             opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// doRequest builds the URL, prepares the body, sets headers, executes the request and decodes the response.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := hc.buildURL(path)
	if query := buildQueryString(hc.defaultQueryParams, queryParams); query != "" {
		target += "?" + query
	}

	bodyReader, contentType, err := hc.encodeBody(body)
	if err != nil {
		return nil, nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, nil, 0, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logHeaders := flattenHeaders(req.Header)
	logURL := redactURL(req.URL)
	requestBody := bodyString(body)
	hc.logger.LogRequest(method, logURL, logHeaders, requestBody)

	start := time.Now()
	resp, err := hc.client.Do(req)
	if err != nil {
		err = redactError(err, logURL)
		hc.logger.LogResponseError(method, logURL, logHeaders, requestBody, 0, "", time.Since(start).Milliseconds(), err)
		return nil, nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		hc.logger.LogResponseError(method, logURL, logHeaders, requestBody, resp.StatusCode, "", latency, err)
		return nil, nil, resp.StatusCode, err
	}

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil {
			if err := hc.unmarshalResponse(bodyBytes, respContentType, successResp); err != nil {
				err = fmt.Errorf("%w: %w", ErrDecode, err)
				hc.logger.LogResponseError(method, logURL, logHeaders, requestBody, resp.StatusCode, string(bodyBytes), latency, err)
				return nil, nil, resp.StatusCode, err
			}
		}
		hc.logger.LogResponseSuccess(method, logURL, logHeaders, requestBody, resp.StatusCode, string(bodyBytes), latency)
		return successResp, nil, resp.StatusCode, nil
	}

	if resp.StatusCode == http.StatusNotFound && hc.dismiss404 {
		hc.logger.LogResponseSuccess(method, logURL, logHeaders, requestBody, resp.StatusCode, string(bodyBytes), latency)
		return nil, nil, resp.StatusCode, nil
	}

	statusErr := &StatusError{Status: resp.StatusCode}
	if errorResp != nil && len(bodyBytes) > 0 {
		// An undecodable error body still yields the status error.
		if hc.unmarshalResponse(bodyBytes, respContentType, errorResp) == nil {
			statusErr.ErrorResp = errorResp
		}
	}
	hc.logger.LogResponseError(method, logURL, logHeaders, requestBody, resp.StatusCode, string(bodyBytes), latency, statusErr)

	return nil, statusErr.ErrorResp, resp.StatusCode, statusErr
}

// encodeBody sends strings and bytes as they are and everything else as JSON.
func (hc *Client) encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}

	switch body := body.(type) {
	case string:
		return bytes.NewBufferString(body), "text/plain", nil
	case []byte:
		return bytes.NewBuffer(body), "application/octet-stream", nil
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request body to JSON: %w", err)
	}
	return bytes.NewBuffer(jsonBody), "application/json", nil
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch mainContentType {
	case "application/xml", "text/xml":
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		_, params, err := mime.ParseMediaType(contentType)
		label := strings.ToLower(params["charset"])
		if err != nil || label == "" || label == "utf-8" || label == "utf8" {
			return json.Unmarshal(bodyBytes, target)
		}
		reader, err := charsetpkg.NewReaderLabel(label, bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("unsupported charset %q: %w", label, err)
		}
		decoded, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		return json.Unmarshal(decoded, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return hc.baseURL + path
}

// buildQueryString merges default and request parameters, request values winning, and encodes them.
func buildQueryString(defaults map[string]string, params map[string]string) string {
	if len(defaults) == 0 && len(params) == 0 {
		return ""
	}

	values := url.Values{}
	for key, value := range defaults {
		values.Set(key, value)
	}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

var sensitiveParams = []string{"key", "api_key", "apikey", "appid", "token"}

// redactURL hides credential query parameters before the URL reaches the logs.
func redactURL(u *url.URL) string {
	query := u.Query()
	changed := false
	for _, name := range sensitiveParams {
		if query.Has(name) {
			query.Set(name, "***")
			changed = true
		}
	}
	if !changed {
		return u.String()
	}
	clone := *u
	clone.RawQuery = query.Encode()
	return clone.String()
}

// redactError replaces the request URL inside transport errors, which otherwise carry credential query parameters.
func redactError(err error, redacted string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
}

func flattenHeaders(header http.Header) map[string]string {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flat := make(map[string]string, len(keys))
	for _, k := range keys {
		if strings.EqualFold(k, "Authorization") {
			flat[k] = "***"
			continue
		}
		flat[k] = strings.Join(header.Values(k), ",")
	}
	return flat
}

func bodyString(body any) string {
	switch b := body.(type) {
	case nil:
		return ""
	case string:
		return b
	case []byte:
		return string(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Sprintf("%v", b)
		}
		return string(encoded)
	}
}
