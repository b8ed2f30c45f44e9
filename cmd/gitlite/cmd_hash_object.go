package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/gitlite/pkg/object"
	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var noWrite bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Compute a blob's object key and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %q: %w", args[0], err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat %q: %w", args[0], err)
			}

			var h object.Hash
			if noWrite {
				h, err = object.HashStream(object.TypeBlob, info.Size(), f)
			} else {
				var r *repo.Repo
				r, err = repo.Open(".")
				if err != nil {
					return err
				}
				h, err = r.Store.WriteStream(object.TypeBlob, info.Size(), f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWrite, "no-write", false, "compute the key without writing to the store")

	return cmd
}
