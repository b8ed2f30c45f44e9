package main

import (
	"fmt"

	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [name]",
		Short: "Verify a commit's SSH signature",
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

			h, err := r.ResolveRef(name)
			if err != nil {
				return err
			}
			commit, err := r.Store.ReadCommit(h)
			if err != nil {
				return err
			}

			pub, err := verifyCommitSignature(commit)
			if err != nil {
				return fmt.Errorf("verify %s: %w", h, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "good signature on %s by %s key %s\n",
				h, pub.Type(), ssh.FingerprintSHA256(pub))
			return nil
		},
	}
}
