package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reimburse/internal/services"
)

func (a *app) membersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage the local member snapshot",
	}

	sync := &cobra.Command{
		Use:   "sync",
		Short: "Download the member sheet into the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd.Context(), nil, func(svc *services.FormService) error {
				dir, skipped, err := svc.SyncMembers(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "synced %d members (%d skipped)\n", dir.Len(), skipped)
				return nil
			})
		},
	}

	var refresh bool
	list := &cobra.Command{
		Use:   "list",
		Short: "Print every member in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withService(cmd.Context(), nil, func(svc *services.FormService) error {
				dir, err := svc.LoadDirectory(cmd.Context(), refresh)
				if err != nil {
					return err
				}
				for _, m := range dir.Members() {
					fmt.Fprintln(cmd.OutOrStdout(), m.Display())
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&refresh, "refresh", false, "sync from the source before listing")

	cmd.AddCommand(sync, list)
	return cmd
}
