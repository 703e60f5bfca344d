package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-melon-sync/internal/client"
	"github.com/MKhiriev/go-melon-sync/internal/config"
	"github.com/MKhiriev/go-melon-sync/internal/logger"
	"github.com/MKhiriev/go-melon-sync/internal/tui"
	"github.com/MKhiriev/go-melon-sync/models"
	"github.com/spf13/cobra"
)

// ClientFactory opens the client runtime for a resolved configuration.
type ClientFactory func(ctx context.Context, cfg *config.ClientConfig, ui *tui.TUI, logger *logger.Logger) (client.Client, error)

// DefaultClientFactory opens a [client.App].
func DefaultClientFactory(ctx context.Context, cfg *config.ClientConfig, ui *tui.TUI, logger *logger.Logger) (client.Client, error) {
	return client.NewApp(ctx, cfg, ui, logger)
}

// runtime is the state shared by the commands of one invocation.
type runtime struct {
	flags     globalFlags
	build     models.AppBuildInfo
	newClient ClientFactory

	cfg    *config.ClientConfig
	client client.Client
	ui     *tui.TUI
	logger *logger.Logger
}

// Execute runs the melon command named by args and closes the client it
// opened, also when the command fails.
func Execute(ctx context.Context, build models.AppBuildInfo, newClient ClientFactory, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root, rt := newRootCommand(build, newClient)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, rt.close())
}

func newRootCommand(build models.AppBuildInfo, newClient ClientFactory) (*cobra.Command, *runtime) {
	rt := &runtime{build: build, newClient: newClient}

	root := &cobra.Command{
		Use:   "melon",
		Short: "Offline-first records synced to a remote document store",
		Long: `melon keeps records in a local SQLite database and synchronizes them with
a remote document store, either through the melon document server or
straight into a Postgres or SQLite documents table.

Local edits are pending until the next sync. Soft-deleted records stay on
the remote side as documents flagged isDeleted.`,
		Example: `  melon --collections todos,users --field-map users.text:name create todos text="todo 1"
  melon list todos
  melon sync
  melon watch --interval 1m`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.open,
	}
	rt.flags.register(root.PersistentFlags())

	root.AddGroup(
		&cobra.Group{ID: "records", Title: "Local records:"},
		&cobra.Group{ID: "sync", Title: "Synchronization:"},
	)
	root.AddCommand(
		newCreateCommand(rt),
		newUpdateCommand(rt),
		newDeleteCommand(rt),
		newListCommand(rt),
		newSyncCommand(rt),
		newWatchCommand(rt),
		newVersionCommand(rt),
	)

	return root, rt
}

// open resolves the configuration and opens the client. Commands that do
// not need a client skip it through the skipClient annotation.
func (rt *runtime) open(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipClient] == "true" {
		return nil
	}

	cfg, err := config.GetClientConfig(rt.flags.overrides())
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	rt.cfg = cfg

	rt.logger = logger.NewClientLogger("melon-"+cmd.Name(), cfg.Log.Level, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	ctx := rt.logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	rt.ui = tui.New(cmd.InOrStdin(), cmd.OutOrStdout(), rt.logger)

	c, err := rt.newClient(ctx, cfg, rt.ui, rt.logger)
	if err != nil {
		rt.logger.Err(err).Msg("failed to open client")
		return err
	}
	rt.client = c
	return nil
}

func (rt *runtime) close() error {
	if rt.client == nil {
		return nil
	}
	err := rt.client.Close()
	rt.client = nil
	return err
}

const skipClient = "skip-client"

func writeLine(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
