// Package api is the HTTP client for the expense backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"expense-view/internal/apierror"
	"expense-view/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Options configures a Client.
type Options struct {
	BaseURL string
	// Timeout bounds each request. Zero leaves requests unbounded, so large
	// imports and exports end only when their context does.
	Timeout    time.Duration
	Logger     logging.Logger
	HTTPClient *http.Client
}

// Client talks to the backend. The embedded cookie jar keeps the login session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// New builds a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, &apierror.ValidationError{Field: "base_url", Reason: "cannot be empty"}
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, &apierror.ValidationError{Field: "base_url", Reason: "scheme must be http or https"}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: max(opts.Timeout, 0)}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &Client{baseURL: base, http: httpClient, logger: logger}, nil
}

// BaseURL returns the backend root the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends body as JSON (when non-nil) and decodes a 2xx response into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apierror.TransportError{Method: method, Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// send performs the request and returns the response only when it is 2xx.
// The caller owns the response body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.WithFields(logging.Request(method, path, requestID)...)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := logging.Elapsed(start)
	if err != nil {
		log.WithError(err).Warn("Request failed", elapsed)
		return nil, &apierror.TransportError{Method: method, Endpoint: path, Err: err}
	}

	log.Debug("Request completed",
		logging.F(logging.FieldStatus, resp.StatusCode),
		elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &apierror.APIError{
			Method:     method,
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
		log.Warn("Backend rejected request",
			logging.F(logging.FieldStatus, resp.StatusCode),
			logging.F(logging.FieldError, apiErr.Message))
		return nil, apiErr
	}
	return resp, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// errorMessage extracts {error} from a failure payload, or "" when there is none.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}

// Login authenticates the session with the application password. The backend
// answers a correct password with a redirect and re-renders the form otherwise.
func (c *Client) Login(ctx context.Context, password string) error {
	const path = "/login"
	form := url.Values{"password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	noFollow := *c.http
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return &apierror.TransportError{Method: http.MethodPost, Endpoint: path, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		c.logger.Info("Logged in", logging.F(logging.FieldEndpoint, c.baseURL.Host))
		return nil
	case resp.StatusCode == http.StatusOK:
		return &apierror.APIError{Method: http.MethodPost, Endpoint: path, StatusCode: http.StatusUnauthorized, Message: "Incorrect password"}
	default:
		return &apierror.APIError{Method: http.MethodPost, Endpoint: path, StatusCode: resp.StatusCode}
	}
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var tErr *apierror.TransportError
	return errors.As(err, &tErr)
}
