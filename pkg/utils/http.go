// Package utils provides common utility functions used across the runner.
// This file implements the shared HTTP client so connections are pooled
// across test cases.
package utils

import (
	"fmt"
	"log/slog"
	"net/http"
)

// MaxRedirects is the number of redirects followed before a request fails.
const MaxRedirects = 10

// NewHTTPClient returns the client used to send test requests. No client-level
// timeout is set: requests run until the transport gives up or the context ends.
// Each redirect hop is logged at debug level; a nil logger uses slog.Default.
func NewHTTPClient(logger *slog.Logger) *http.Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			logger.Debug("HTTP redirect",
				slog.String("from", via[len(via)-1].URL.String()),
				slog.String("to", req.URL.String()),
				slog.Int("hop", len(via)),
			)
			return nil
		},
	}
}
