package cli

import (
	"github.com/MKhiriev/go-melon-sync/internal/tui"
	"github.com/spf13/cobra"
)

func newSyncCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "sync",
		GroupID: "sync",
		Short:   "Push pending local changes once",
		Long: `Push created, updated and soft-deleted records of every configured
collection to the remote document store and, for collections that pull,
apply documents written by other sessions. Progress is saved so that the
next sync only processes what changed since.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.flags.plain {
				report, err := rt.client.Sync(cmd.Context())
				writeLine(cmd.OutOrStdout(), tui.RenderReport(report, err))
				return err
			}

			report, err := rt.ui.RunSync(cmd.Context(), rt.client.Sync)
			writeLine(cmd.OutOrStdout(), tui.RenderReport(report, err))
			return err
		},
	}
}

func newWatchCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		GroupID: "sync",
		Short:   "Sync periodically until interrupted",
		Long: `Sync right away, then every --interval (30s by default), showing the
outcome of the latest run. Press q to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.client.Watch(cmd.Context())
		},
	}
}
