package httpclient

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.2 Safari/605.1.15",
}

// Options configures the page client.
type Options struct {
	ProxyURL string
	// Interval is the minimum spacing between requests to one host.
	Interval   time.Duration
	Burst      int
	MaxRetries int
	Timeout    time.Duration
	UserAgent  string
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Interval == 0 {
		o.Interval = 2 * time.Second
	}
	if o.Burst == 0 {
		o.Burst = 1
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Client wraps http.Client with browser-like headers, per-host rate limiting
// and retries on throttling responses.
type Client struct {
	inner      *http.Client
	logger     *zap.Logger
	userAgent  string
	interval   time.Duration
	burst      int
	maxRetries int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Client with the given options.
func New(opts Options) (*Client, error) {
	opts = opts.withDefaults()

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}

	if opts.ProxyURL != "" {
		proxyURL, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("httpclient: invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		inner:      &http.Client{Transport: transport, Timeout: opts.Timeout},
		logger:     opts.Logger,
		userAgent:  opts.UserAgent,
		interval:   opts.Interval,
		burst:      opts.Burst,
		maxRetries: opts.MaxRetries,
		limiters:   make(map[string]*rate.Limiter),
	}, nil
}

// Do executes the request with browser headers, rate limiting, and retry
// with exponential backoff on 429 and 503.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)

	var resp *http.Response
	for attempt := range c.maxRetries {
		if err := c.limiter(req.URL.Hostname()).Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("httpclient: waiting for rate limit: %w", err)
		}

		var err error
		resp, err = c.inner.Do(req)
		if err != nil {
			return nil, fmt.Errorf("httpclient: request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
			return resp, nil
		}
		if attempt == c.maxRetries-1 {
			break
		}

		resp.Body.Close()
		backoff := time.Duration(1<<uint(attempt)) * c.interval
		c.logger.Warn("throttled, backing off",
			zap.String("host", req.URL.Host),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries),
		)

		select {
		case <-time.After(backoff):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	ua := c.userAgent
	if ua == "" {
		ua = userAgents[rand.Intn(len(userAgents))]
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("DNT", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

func (c *Client) limiter(host string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(host), "www.")

	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Every(c.interval), c.burst)
		c.limiters[key] = l
	}
	return l
}
