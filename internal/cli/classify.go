package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) classifyCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "classify [purpose...]",
		Short: "Print the funding account a purpose is charged to",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.cfg.AccountTable()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if all {
				for _, e := range table.Entries() {
					fmt.Fprintf(out, "%s: %s\n", e.Account, strings.Join(e.Purposes, ", "))
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("classify needs a purpose or --all")
			}
			fmt.Fprintln(out, table.Classify(strings.Join(args, " ")))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print the whole account table")
	return cmd
}
