package hec

import (
	"log/slog"
	"time"
)

// WithLogger sets a custom slog.Logger instance for the Client struct to use for logging operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithURL sets the HEC endpoint the client posts events to.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithToken sets the HEC token presented in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithIndex sets the target Splunk index. An empty index is omitted from the payload.
func WithIndex(index string) Option {
	return func(c *Client) {
		c.index = index
	}
}

// WithSourceType sets the Splunk sourcetype. An empty sourcetype is omitted from the payload.
func WithSourceType(sourceType string) Option {
	return func(c *Client) {
		c.sourceType = sourceType
	}
}

// WithTimeout bounds each delivery request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for lab collectors with self-signed certificates.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(c *Client) {
		c.insecureSkipVerify = insecure
	}
}
