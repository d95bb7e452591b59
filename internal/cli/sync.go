package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/parcelsync/internal/county"
	"github.com/roach88/parcelsync/internal/reconcile"
	"github.com/roach88/parcelsync/internal/store"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
	Database   string
	CountyFile string
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync <county-parcel-id>",
		Short: "Sync one parcel from the county site into the store",
		Long: `Fetch the general and tax pages for one registered parcel, reconcile
both role contexts against the store, and print the resulting records.
Unchanged data produces zero writes.

Example:
  parcelsync sync 0123-A-00456 --db ./parcels.db --county county.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncParcel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.CountyFile, "county", "", "path to county CUE config (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("county")

	return cmd
}

func syncParcel(opts *SyncOptions, countyID string, cmd *cobra.Command) error {
	r, st, err := buildReconciler(opts.Database, opts.CountyFile)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := r.SyncParcel(ctx, countyID)
	if err != nil {
		return WrapExitError(ExitFailure, "sync failed", err)
	}

	return newFormatter(cmd, opts.RootOptions).Success(result)
}

// buildReconciler opens the store and county source for a sync command.
// The caller owns closing the returned store.
func buildReconciler(dbPath, countyFile string) (*reconcile.Reconciler, *store.Store, error) {
	cfg, err := LoadCountyConfig(countyFile)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load county config", err)
	}
	client, err := county.NewClient(cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to build county client", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return reconcile.New(st, county.NewSource(client), slog.Default()), st, nil
}
