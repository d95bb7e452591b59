package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/parcelsync/internal/records"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	Database   string
	CountyFile string
	Municode   int
	Delay      time.Duration
	Manifest   string
}

// batchManifest lists municipalities to sync in order. Delay strings use Go
// duration syntax ("1s", "500ms").
type batchManifest struct {
	Municipalities []struct {
		Municode int    `yaml:"municode"`
		Delay    string `yaml:"delay"`
	} `yaml:"municipalities"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Sync every registered parcel in one or more municipalities",
		Long: `Sync all registered parcels for a municipality, sequentially. Parcels
whose pages cannot be parsed are skipped and reported; any other failure
aborts the batch. A YAML manifest can list several municipalities to run
in order.

Example:
  parcelsync batch --municode 830 --db ./parcels.db --county county.cue --delay 1s
  parcelsync batch --manifest towns.yaml --db ./parcels.db --county county.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.CountyFile, "county", "", "path to county CUE config (required)")
	cmd.Flags().IntVar(&opts.Municode, "municode", 0, "municipality code to sync")
	cmd.Flags().DurationVar(&opts.Delay, "delay", time.Second, "delay between parcels")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "YAML manifest of municipalities to sync")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("county")

	return cmd
}

// batchJob is one municipality sync in a batch run.
type batchJob struct {
	Municode int
	Delay    time.Duration
}

func runBatch(opts *BatchOptions, cmd *cobra.Command) error {
	jobs, err := batchJobs(opts)
	if err != nil {
		return err
	}

	r, st, err := buildReconciler(opts.Database, opts.CountyFile)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	formatter := newFormatter(cmd, opts.RootOptions)
	combined := records.MunicipalitySync{}
	for _, job := range jobs {
		result, err := r.SyncMunicipality(ctx, job.Municode, job.Delay)
		if err != nil {
			return WrapExitError(ExitFailure,
				fmt.Sprintf("batch failed for municode %d", job.Municode), err)
		}
		combined.Total += result.Total
		combined.Skipped = append(combined.Skipped, result.Skipped...)
	}

	return formatter.Success(combined)
}

// batchJobs resolves the municipalities to sync from either the manifest or
// the --municode flag.
func batchJobs(opts *BatchOptions) ([]batchJob, error) {
	if opts.Manifest == "" {
		if opts.Municode == 0 {
			return nil, WrapExitError(ExitCommandError,
				"either --municode or --manifest is required", nil)
		}
		return []batchJob{{Municode: opts.Municode, Delay: opts.Delay}}, nil
	}

	data, err := os.ReadFile(opts.Manifest)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read manifest", err)
	}
	var manifest batchManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to parse manifest", err)
	}
	if len(manifest.Municipalities) == 0 {
		return nil, WrapExitError(ExitCommandError, "manifest lists no municipalities", nil)
	}

	jobs := make([]batchJob, 0, len(manifest.Municipalities))
	for _, m := range manifest.Municipalities {
		job := batchJob{Municode: m.Municode, Delay: opts.Delay}
		if m.Municode == 0 {
			return nil, WrapExitError(ExitCommandError, "manifest entry missing municode", nil)
		}
		if m.Delay != "" {
			d, err := time.ParseDuration(m.Delay)
			if err != nil {
				return nil, WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid delay %q for municode %d", m.Delay, m.Municode), err)
			}
			job.Delay = d
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
