package main

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/object"
	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <kind> <name>",
		Short: "Write an object's payload to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := object.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.ResolveRef(args[1])
			if err != nil {
				return err
			}

			objType, payload, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			if objType != want {
				return fmt.Errorf("object %s: %w: got %q, want %q", h, object.ErrKindMismatch, objType, want)
			}

			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}
}
