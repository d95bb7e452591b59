package county

import (
	"fmt"
	"strings"
	"time"
)

// Config describes one county records site. GeneralPath and TaxPath are
// format strings with a single %s slot for the county parcel id.
type Config struct {
	BaseURL     string        `json:"baseURL"`
	GeneralPath string        `json:"generalPath"`
	TaxPath     string        `json:"taxPath"`
	Timeout     time.Duration `json:"timeout"`
	UserAgent   string        `json:"userAgent"`
}

// Validate checks that the config can produce well-formed request URLs.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("county config: baseURL is required")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("county config: baseURL %q must be http or https", c.BaseURL)
	}
	for name, path := range map[string]string{"generalPath": c.GeneralPath, "taxPath": c.TaxPath} {
		if path == "" {
			return fmt.Errorf("county config: %s is required", name)
		}
		if strings.Count(path, "%s") != 1 {
			return fmt.Errorf("county config: %s %q must contain exactly one %%s", name, path)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("county config: timeout must not be negative")
	}
	return nil
}

// timeout returns the configured timeout or a conservative default.
func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 30 * time.Second
}
