package main

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree",
		Short: "Snapshot the worktree and print the root tree key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			ic := repo.NewIgnoreChecker(r.RootDir)
			h, err := r.WriteTree(r.RootDir, ic.IsIgnored)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
