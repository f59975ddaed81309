package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
)

// ErrPageMissing is returned when the wiki has no page with the requested title.
var ErrPageMissing = errors.New("page does not exist")

// StatusError is returned for unexpected HTTP status codes.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Config configures the wiki client.
type Config struct {
	BaseURL    string        `yaml:"base_url" env:"ARCHTRANSLATOR_WIKI_URL"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`

	// RequestsPerSecond caps the request rate against the wiki.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// DefaultConfig returns sensible defaults for the ArchWiki.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://wiki.archlinux.org",
		UserAgent:  "ArchTranslator/1.0 (+https://github.com/RobinCoderZhao/archtranslator)",
		Timeout:    15 * time.Second,
		RetryCount: 2,

		RequestsPerSecond: 5,
	}
}

// Client talks to a MediaWiki installation.
type Client struct {
	cfg       Config
	http      *http.Client
	baseDelay time.Duration
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewClient creates a client. Zero fields of cfg are filled from DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.Timeout},
		baseDelay: 500 * time.Millisecond,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:    slog.Default(),
	}
}

// PageContent returns the raw wikitext of a page.
func (c *Client) PageContent(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("title", TitleToPageName(title))
	q.Set("action", "raw")

	body, err := c.get(ctx, c.cfg.BaseURL+"/index.php?"+q.Encode())
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%s: %w", title, ErrPageMissing)
		}
		return "", fmt.Errorf("fetch content of %s: %w", title, err)
	}
	return string(body), nil
}

type queryResponse struct {
	Query struct {
		Pages []struct {
			Title    string `json:"title"`
			Missing  bool   `json:"missing"`
			Invalid  bool   `json:"invalid"`
			Redirect bool   `json:"redirect"`
			LastRev  int64  `json:"lastrevid"`
		} `json:"pages"`
	} `json:"query"`
}

// PageInfo queries the wiki API for page metadata. Missing pages are
// reported with Exists set to false rather than an error.
func (c *Client) PageInfo(ctx context.Context, title string) (*PageInfo, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "info")
	q.Set("titles", PageNameToTitle(title))
	q.Set("format", "json")
	q.Set("formatversion", "2")

	body, err := c.get(ctx, c.cfg.BaseURL+"/api.php?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("query info of %s: %w", title, err)
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse info of %s: %w", title, err)
	}
	if len(resp.Query.Pages) == 0 {
		return nil, fmt.Errorf("query info of %s: empty response", title)
	}

	page := resp.Query.Pages[0]
	if page.Invalid {
		return nil, fmt.Errorf("query info of %s: invalid title", title)
	}
	name := page.Title
	if name == "" {
		name = PageNameToTitle(title)
	}
	return &PageInfo{
		PageName:         TitleToPageName(name),
		LatestRevisionID: page.LastRev,
		IsRedirect:       page.Redirect,
		IsTranslated:     i18n.IsTranslated(name),
		Exists:           !page.Missing,
	}, nil
}

// RenderedPage is the parsed HTML view of a page.
type RenderedPage struct {
	Title string
	Links []string
}

// Rendered fetches the HTML view of a page and extracts its article links.
func (c *Client) Rendered(ctx context.Context, title string) (*RenderedPage, error) {
	body, err := c.get(ctx, c.cfg.BaseURL+titlePathPrefix+url.PathEscape(TitleToPageName(title)))
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", title, ErrPageMissing)
		}
		return nil, fmt.Errorf("fetch rendered %s: %w", title, err)
	}
	raw := string(body)
	return &RenderedPage{
		Title: extractTitle(raw),
		Links: ExtractTitleLinks(raw),
	}, nil
}

// get performs a GET with retries on network errors and 5xx responses.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryCount; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wiki rate limit: %w", err)
		}
		body, err := c.getOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.cfg.RetryCount {
			break
		}

		delay := c.backoffDelay(attempt)
		c.logger.Warn("wiki request failed, retrying",
			"url", rawURL,
			"attempt", attempt+1,
			"max_retries", c.cfg.RetryCount,
			"delay", delay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func (c *Client) getOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	return time.Duration(float64(c.baseDelay) * math.Pow(2, float64(attempt)))
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	return true
}
