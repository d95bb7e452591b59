package cli

import (
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/parcelsync/internal/county"
)

// countyFile mirrors the `county` struct in a county CUE file. The timeout
// is expressed in seconds because CUE has no native duration type.
type countyFile struct {
	BaseURL        string `json:"baseURL"`
	GeneralPath    string `json:"generalPath"`
	TaxPath        string `json:"taxPath"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	UserAgent      string `json:"userAgent"`
}

// LoadCountyConfig loads and validates a county source configuration from a
// CUE file. The file must define a top-level `county` struct.
func LoadCountyConfig(path string) (county.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return county.Config{}, fmt.Errorf("read county config: %w", err)
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return county.Config{}, fmt.Errorf("compile county config %s: %w", path, err)
	}

	countyVal := value.LookupPath(cue.ParsePath("county"))
	if !countyVal.Exists() {
		return county.Config{}, fmt.Errorf("county config %s: missing top-level `county` struct", path)
	}

	var raw countyFile
	if err := countyVal.Decode(&raw); err != nil {
		return county.Config{}, fmt.Errorf("decode county config %s: %w", path, err)
	}

	cfg := county.Config{
		BaseURL:     raw.BaseURL,
		GeneralPath: raw.GeneralPath,
		TaxPath:     raw.TaxPath,
		Timeout:     time.Duration(raw.TimeoutSeconds) * time.Second,
		UserAgent:   raw.UserAgent,
	}
	if err := cfg.Validate(); err != nil {
		return county.Config{}, fmt.Errorf("county config %s: %w", path, err)
	}
	return cfg, nil
}
