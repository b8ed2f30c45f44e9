package main

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/object"
	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "tag [name] [target]",
		Short: "List or create lightweight tags",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names, err := r.TagNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			var target object.Hash
			if len(args) == 2 {
				target, err = r.ResolveRef(args[1])
			} else {
				target, err = r.ResolveRef("HEAD")
			}
			if err != nil {
				return err
			}

			return r.CreateTag(args[0], target, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing tag")

	return cmd
}
