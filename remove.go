package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <remote-path>",
		Aliases: []string{"rm"},
		Short:   "Remove a file from a project's storage",
		Long: `Remove a file from the project's storage.

The first part of the remote path is interpreted as the name of the
storage provider. If there is no match the default (osfstorage) is used.
A path ending in / removes a folder and everything under it.`,
		Args: cobra.ExactArgs(1),
		RunE: guarded(runRemove),
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]

	if err := requireAuth("remove a file"); err != nil {
		return err
	}

	storage, remotePath := newResolver().Split(target, true)

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	store, err := project.Storage(ctx, storage)
	if err != nil {
		return err
	}

	if strings.HasSuffix(target, "/") {
		folder, err := transfer.FindFolder(ctx, store, remotePath)
		if err != nil {
			return err
		}

		if folder == nil {
			logger.Debug("remove: no matching remote folder", "path", remotePath)
			return nil
		}

		return folder.Remove(ctx)
	}

	file, err := transfer.FindFile(ctx, store, remotePath)
	if err != nil {
		return err
	}

	// A non-matching target completes without error or side effect.
	if file == nil {
		logger.Debug("remove: no matching remote file", "path", remotePath)
		return nil
	}

	return file.Remove(ctx)
}
