package county

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError reports a non-success HTTP status from the county site.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("county returned %d for %s", e.StatusCode, e.URL)
}

// IsStatus reports whether err is a *StatusError.
func IsStatus(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// Client fetches raw parcel pages over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client for the configured county site.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.timeout()},
	}, nil
}

// FetchGeneralPage fetches the general assessment page for a parcel.
func (c *Client) FetchGeneralPage(ctx context.Context, parcelID string) ([]byte, error) {
	return c.fetch(ctx, c.cfg.GeneralPath, parcelID)
}

// FetchTaxPage fetches the tax/mortgage page for a parcel.
func (c *Client) FetchTaxPage(ctx context.Context, parcelID string) ([]byte, error) {
	return c.fetch(ctx, c.cfg.TaxPath, parcelID)
}

func (c *Client) fetch(ctx context.Context, pathFormat, parcelID string) ([]byte, error) {
	pageURL := strings.TrimSuffix(c.cfg.BaseURL, "/") +
		fmt.Sprintf(pathFormat, url.QueryEscape(parcelID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pageURL, err)
	}
	return body, nil
}
