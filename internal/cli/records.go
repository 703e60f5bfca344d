package cli

import (
	"github.com/MKhiriev/go-melon-sync/internal/tui"
	"github.com/spf13/cobra"
)

func newCreateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "create <collection> <name=value>...",
		GroupID: "records",
		Short:   "Create a local record",
		Long: `Create a record in a local collection. The record is pending until the
next sync pushes it. Values that parse as JSON keep their type.`,
		Example: `  melon create todos text="todo 1" done=false`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errNoFields
			}
			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}

			record, err := rt.client.Records().Create(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), record.ID)
			return nil
		},
	}
}

func newUpdateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "update <collection> <id> <name=value>...",
		GroupID: "records",
		Short:   "Update fields of a local record",
		Long: `Set fields of a record. Fields not named keep their value. Updating a
deleted record fails.`,
		Example: `  melon update todos 0191f5a4-7c1e-7000-8000-000000000001 text="updated todo"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errNoFields
			}
			fields, err := parseFields(args[2:])
			if err != nil {
				return err
			}

			record, err := rt.client.Records().Update(cmd.Context(), args[0], args[1], fields)
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), record.ID, record.Status)
			return nil
		},
	}
}

func newDeleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <collection> <id>",
		GroupID: "records",
		Short:   "Soft-delete a local record",
		Long: `Mark a record as deleted. The next sync flags its remote document
isDeleted and keeps the other fields.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.client.Records().Delete(cmd.Context(), args[0], args[1])
		},
	}
}

func newListCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:     "list <collection>",
		GroupID: "records",
		Short:   "List the records of a local collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := rt.client.Records().List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), tui.RenderRecords(args[0], records))
			return nil
		},
	}
}
