package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/gitlite/pkg/object"
	"github.com/odvcencio/gitlite/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var parents []string
	var message string
	var signKey string

	cmd := &cobra.Command{
		Use:   "commit-tree <tree>",
		Short: "Create a commit object for an existing tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("commit-tree: message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			tree, err := r.ResolveRef(args[0])
			if err != nil {
				return err
			}

			parentHashes := make([]object.Hash, 0, len(parents))
			for _, p := range parents {
				ph, err := r.ResolveRef(p)
				if err != nil {
					return err
				}
				parentHashes = append(parentHashes, ph)
			}

			var signer repo.CommitSigner
			if cmd.Flags().Changed("sign-key") {
				signer, _, err = loadCommitSigner(signKey)
				if err != nil {
					return err
				}
			}

			identity := fmt.Sprintf("User <user@example.com> %d +0000", time.Now().Unix())
			h, err := r.CommitTree(tree, parentHashes, identity, identity, message, signer)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent commit (repeatable)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "SSH private key to sign the commit with (empty picks a default key)")

	return cmd
}
