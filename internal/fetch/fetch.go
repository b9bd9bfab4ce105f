// Package fetch retrieves register documents over HTTP and discovers
// register PDF links on a council's index page. Retry, pacing and
// politeness live here, outside the extraction core.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/temoto/robotstxt"
)

// Options configures the fetch client.
type Options struct {
	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds each individual request attempt.
	Timeout time.Duration

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64

	// RetryAttempts is the total number of attempts per document.
	RetryAttempts uint

	// RetryDelay is the base delay between attempts.
	RetryDelay time.Duration

	// RespectRobots checks the host's robots.txt before fetching.
	RespectRobots bool
}

// DefaultOptions returns the default fetch configuration.
func DefaultOptions() Options {
	return Options{
		UserAgent:     "daregister/1.0 (development application register scraper)",
		Timeout:       30 * time.Second,
		MaxBodyBytes:  50 * 1024 * 1024,
		RetryAttempts: 3,
		RetryDelay:    2 * time.Second,
		RespectRobots: true,
	}
}

// Client fetches register documents with retries and optional robots.txt
// politeness.
type Client struct {
	httpClient *http.Client
	opts       Options

	robotsMu sync.Mutex
	robots   map[string]*robotstxt.RobotsData
}

// NewClient creates a fetch client.
func NewClient(opts Options) *Client {
	return &Client{
		httpClient: &http.Client{},
		opts:       opts,
		robots:     make(map[string]*robotstxt.RobotsData),
	}
}

// FetchDocument retrieves one document as raw bytes, retrying transient
// failures with a fixed delay between attempts.
func (c *Client) FetchDocument(ctx context.Context, rawURL string) ([]byte, error) {
	if c.opts.RespectRobots {
		if err := c.checkRobots(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	var body []byte
	err := retry.Do(
		func() error {
			var err error
			body, err = c.fetchOnce(ctx, rawURL)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read body")
	}
	return body, nil
}

// checkRobots fetches and caches the host's robots.txt once, then tests
// the target path against it. A missing robots.txt allows everything.
func (c *Client) checkRobots(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.Wrap(err, "failed to parse URL")
	}
	host := parsed.Scheme + "://" + parsed.Host

	c.robotsMu.Lock()
	data, ok := c.robots[host]
	c.robotsMu.Unlock()

	if !ok {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
		if err != nil {
			return errors.Wrap(err, "failed to create robots.txt request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "failed to fetch robots.txt")
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil
		}

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return errors.Wrap(err, "failed to parse robots.txt")
		}

		c.robotsMu.Lock()
		c.robots[host] = data
		c.robotsMu.Unlock()
	}

	if !data.FindGroup("*").Test(parsed.Path) {
		return errors.Errorf("blocked by robots.txt: %s", parsed.Path)
	}
	return nil
}
