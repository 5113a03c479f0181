package main

import (
	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/osfapi"
	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <source> <target>",
		Short: "Move a file or folder to a new location in the project",
		Long: `Move a file to a specified location on the project's storage.

The first part of both paths is interpreted as the name of the storage
provider. A target ending in / names a destination folder; a target with
an internal / names a folder plus a new name; a bare name renames at the
provider root; an empty target moves to the provider root.`,
		Args: cobra.ExactArgs(2),
		RunE: guarded(runMove),
	}

	cmd.Flags().BoolP("force", "f", false, "replace an existing entry at the destination")

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source, target := args[0], args[1]

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := requireAuth("move a file"); err != nil {
		return err
	}

	resolver := newResolver()

	// Normalization is disabled for the target so a trailing separator
	// survives and keeps its folder-target meaning.
	targetStorage, targetPath := resolver.Split(target, false)
	moveTarget := transfer.ClassifyMoveTarget(targetPath)

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	targetStore, err := project.Storage(ctx, targetStorage)
	if err != nil {
		return err
	}

	// The provider root is the storage itself; anything else is ensured.
	var dest osfapi.MoveDestination = targetStore

	if moveTarget.FolderPath != "" {
		folder, err := transfer.EnsureFolder(ctx, targetStore, moveTarget.FolderPath)
		if err != nil {
			return err
		}

		dest = folder
	}

	sourceStorage, sourcePath := resolver.Split(source, true)

	sourceStore, err := project.Storage(ctx, sourceStorage)
	if err != nil {
		return err
	}

	if file, err := transfer.FindFile(ctx, sourceStore, sourcePath); err != nil {
		return err
	} else if file != nil {
		return file.MoveTo(ctx, targetStorage, dest, moveTarget.Rename, force)
	}

	if folder, err := transfer.FindFolder(ctx, sourceStore, sourcePath); err != nil {
		return err
	} else if folder != nil {
		return folder.MoveTo(ctx, targetStorage, dest, moveTarget.Rename, force)
	}

	// A non-matching source completes without error or side effect.
	logger.Debug("move: no matching remote entry", "path", sourcePath)

	return nil
}
