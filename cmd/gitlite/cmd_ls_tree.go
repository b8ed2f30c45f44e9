package main

import (
	"fmt"
	"strconv"

	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <name>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.ResolveRef(args[0])
			if err != nil {
				return err
			}

			tree, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range tree.Entries {
				fmt.Fprintf(out, "%s %s\t%s\n", strconv.FormatUint(uint64(e.Mode), 8), e.Name, e.Key)
			}
			return nil
		},
	}
}
