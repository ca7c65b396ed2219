// Package dispatcher builds and sends the HTTP request described by a test case.
// The target URL is the base URL and the case path concatenated verbatim;
// headers are attached in declaration order and the method is resolved from a
// closed set of verbs. A Host header overrides the virtual host sent on the wire.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"apirunner/pkg/testcase"
	"apirunner/pkg/utils"
)

// NetworkError reports that a request could not be completed: the URL was
// unusable, DNS failed, the connection was refused or the transport timed out.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

var knownMethods = map[string]string{
	"GET":    http.MethodGet,
	"POST":   http.MethodPost,
	"PUT":    http.MethodPut,
	"DELETE": http.MethodDelete,
}

// ParseMethod maps a case-insensitive method name onto GET, POST, PUT or DELETE.
// Any other value silently resolves to GET.
func ParseMethod(method string) string {
	if m, ok := knownMethods[strings.ToUpper(method)]; ok {
		return m
	}
	return http.MethodGet
}

// IsKnownMethod reports whether ParseMethod resolves method without falling back.
func IsKnownMethod(method string) bool {
	_, ok := knownMethods[strings.ToUpper(method)]
	return ok
}

// Dispatcher sends test requests over a shared client.
type Dispatcher struct {
	client *http.Client
	logger *slog.Logger
}

// New returns a Dispatcher. A nil client uses utils.NewHTTPClient and a nil
// logger uses slog.Default.
func New(client *http.Client, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = utils.NewHTTPClient(logger)
	}
	return &Dispatcher{client: client, logger: logger}
}

// BuildRequest constructs the request for a test case without sending it.
func BuildRequest(ctx context.Context, baseURL string, tc *testcase.TestCase) (*http.Request, error) {
	method := ParseMethod(tc.Method)
	target := baseURL + tc.Path

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, &NetworkError{Method: method, URL: target, Err: unwrapURLError(err)}
	}
	for _, h := range tc.Headers {
		// net/http ignores Host in req.Header and sends req.Host instead.
		if strings.EqualFold(h.Key, "Host") {
			req.Host = h.Value
			continue
		}
		req.Header.Add(h.Key, h.Value)
	}
	return req, nil
}

// Send issues the request for tc and returns the raw response. The caller owns
// the response body. Any failure to obtain a response is a *NetworkError.
func (d *Dispatcher) Send(ctx context.Context, baseURL string, tc *testcase.TestCase) (*http.Response, error) {
	req, err := BuildRequest(ctx, baseURL, tc)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("HTTP request",
		slog.String("case", tc.Case),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("headers", len(tc.Headers)),
	)

	start := time.Now()
	resp, err := d.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &NetworkError{Method: req.Method, URL: req.URL.String(), Err: unwrapURLError(err)}
	}

	d.logger.Debug("HTTP response",
		slog.String("case", tc.Case),
		slog.Int("status_code", resp.StatusCode),
		slog.Int64("content_length", resp.ContentLength),
		slog.Duration("elapsed", elapsed),
	)
	return resp, nil
}

// unwrapURLError strips the *url.Error wrapper net/http adds, since
// NetworkError already carries the method and URL.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
