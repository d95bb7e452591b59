package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/parcelsync/internal/county"
)

// FetchOptions holds flags for the fetch command.
type FetchOptions struct {
	*RootOptions
	CountyFile string
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FetchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fetch <county-parcel-id>",
		Short: "Fetch county data for a parcel without touching the store",
		Long: `Fetch, parse, and normalize the county pages for one parcel and print
the canonical values. Nothing is persisted; the parcel does not need to be
registered.

Example:
  parcelsync fetch 0123-A-00456 --county county.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchParcel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CountyFile, "county", "", "path to county CUE config (required)")
	_ = cmd.MarkFlagRequired("county")

	return cmd
}

func fetchParcel(opts *FetchOptions, countyID string, cmd *cobra.Command) error {
	cfg, err := LoadCountyConfig(opts.CountyFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load county config", err)
	}
	client, err := county.NewClient(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build county client", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := county.NewSource(client).ParcelData(ctx, countyID)
	if err != nil {
		return WrapExitError(ExitFailure, "fetch failed", err)
	}

	return newFormatter(cmd, opts.RootOptions).Success(data)
}
