package sources

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/JaimeV365/job-seeker-cheater/internal/logger"
)

const (
	defaultUserAgent  = "job-seeker-cheater/1.0 (local tool)"
	defaultTimeout    = 30 * time.Second
	defaultReqPerSec  = 2
	defaultBurst      = 4
	contentType       = "application/json"
	acceptedEncodings = "gzip"
)

// StatusError is a non-2xx response. Connectors branch on Code to skip
// expected failures such as unknown board slugs.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "bad status: " + e.Status
}

// Client is the outbound HTTP client every connector must use. Before any
// request leaves the process it passes the privacy guard and the per-host
// rate limiter.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	guard     *Guard
	limiter   *hostLimiter
	logger    *zap.Logger
	basicUser string
	basicPass string
}

func NewClient(logger *zap.Logger, guard *Guard) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		UserAgent:  defaultUserAgent,
		guard:      guard,
		limiter:    newHostLimiter(defaultReqPerSec, defaultBurst),
		logger:     logger,
	}
}

// WithBasicAuth returns a copy of the client that authenticates every request
// with the given credentials. The guard and limiter stay shared.
func (c *Client) WithBasicAuth(user, pass string) *Client {
	clone := *c
	clone.basicUser = user
	clone.basicPass = pass
	return &clone
}

// GetJSON performs a guarded GET and decodes the JSON body into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, q url.Values, target any) error {
	if err := c.guard.Check(rawURL, q); err != nil {
		return err
	}
	if err := c.limiter.waitURL(ctx, rawURL); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", acceptedEncodings)
	if c.basicUser != "" || c.basicPass != "" {
		req.SetBasicAuth(c.basicUser, c.basicPass)
	}
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.Redacted()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	c.logger.Debug("response received",
		zap.Int("bytes", len(data)),
		zap.String("preview", logger.TruncateForLog(string(data), 200)),
	)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Host, err)
	}

	return nil
}
