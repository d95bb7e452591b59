package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/parcelsync/internal/store"
)

// RegisterOptions holds flags for the register command.
type RegisterOptions struct {
	*RootOptions
	Database string
	Municode int
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegisterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register <county-parcel-id>",
		Short: "Register a parcel with the local store",
		Long: `Register a county parcel id with the local store so it can be synced.
Registration is idempotent; re-registering an existing parcel returns the
existing record.

Example:
  parcelsync register 0123-A-00456 --municode 830 --db ./parcels.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return registerParcel(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Municode, "municode", 0, "municipality code (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("municode")

	return cmd
}

func registerParcel(opts *RegisterOptions, countyID string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var parcel store.Parcel
	err = st.WithTx(ctx, func(tx *store.Tx) error {
		parcel, err = tx.EnsureParcel(ctx, countyID, opts.Municode)
		return err
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to register parcel", err)
	}

	formatter := newFormatter(cmd, opts.RootOptions)
	if opts.Format == "json" {
		return formatter.Success(map[string]interface{}{
			"parcel_key":       parcel.Key,
			"county_parcel_id": parcel.CountyID,
			"municode":         parcel.Municode,
		})
	}
	return formatter.Success(fmt.Sprintf("registered %s (key %d, municode %d)",
		parcel.CountyID, parcel.Key, parcel.Municode))
}
