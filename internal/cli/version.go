package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(rt *runtime) *cobra.Command {
	var withServer bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// the client is opened on demand for --server
		Annotations: map[string]string{skipClient: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", rt.build.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", rt.build.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", rt.build.BuildCommit())

			if !withServer {
				return nil
			}

			delete(cmd.Annotations, skipClient)
			if err := rt.open(cmd, nil); err != nil {
				return err
			}
			version, err := rt.client.ServerVersion(cmd.Context())
			if err != nil {
				return err
			}
			if version == "" {
				version = "N/A"
			}
			fmt.Fprintf(out, "Server version: %s\n", version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withServer, "server-version", false, "also ask the document server for its version")

	return cmd
}
