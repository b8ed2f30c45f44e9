package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [name]",
		Short: "Show commit history along the first-parent chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "HEAD"
			if len(args) > 0 {
				name = args[0]
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			start, err := r.ResolveRef(name)
			if err != nil {
				return err
			}

			entries, err := r.Log(start, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintf(out, "commit %s\n", entry.Hash)
				if author := entry.Commit.Author(); author != "" {
					fmt.Fprintf(out, "Author: %s\n", author)
				}
				fmt.Fprintln(out)
				message := entry.Commit.Message
				fmt.Fprint(out, message)
				if !strings.HasSuffix(message, "\n") {
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of commits to show (0 = all)")

	return cmd
}
