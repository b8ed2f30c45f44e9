package main

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches or create one at HEAD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := r.ListBranches()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			head, err := r.ResolveRef("HEAD")
			if err != nil {
				return fmt.Errorf("resolve HEAD: %w", err)
			}
			return r.CreateBranch(args[0], head)
		},
	}
}
