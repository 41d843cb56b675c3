package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"reimburse/internal/delivery"
	"reimburse/internal/services"
)

func (a *app) formsCommand() *cobra.Command {
	var (
		members     []string
		processedBy string
		refresh     bool
		outDir      string
	)
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Render one reimbursement form per member with pending requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if processedBy == "" {
				processedBy = a.cfg.ProcessedBy
			}
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}

			var sink services.Sink = delivery.NewWriter(cmd.OutOrStdout())
			if outDir != "" {
				dir, err := delivery.NewDir(outDir)
				if err != nil {
					return err
				}
				sink = dir
			}

			return a.withService(cmd.Context(), []services.Sink{sink}, func(svc *services.FormService) error {
				sum, err := svc.Generate(cmd.Context(), services.Options{
					ProcessedBy:    processedBy,
					Members:        members,
					RefreshMembers: refresh,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "rendered %d forms from %d reimbursements (%d skipped, %d done)\n",
					sum.Forms, sum.Reimbursements, sum.Skipped, sum.Done)
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&members, "member", nil, "only render forms for this username (repeatable)")
	cmd.Flags().StringVar(&processedBy, "processed-by", "", "name printed as the processor (default PROCESSED_BY)")
	cmd.Flags().BoolVar(&refresh, "refresh-members", false, "refetch the member sheet before rendering")
	cmd.Flags().StringVar(&outDir, "out", "", "write forms to this directory instead of stdout (default OUTPUT_DIR)")
	return cmd
}
