package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/osfapi"
	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <local-path> <remote-path>",
		Short: "Upload a new file to an existing project",
		Long: `Upload a new file to an existing project.

The first part of the remote path is interpreted as the name of the
storage provider. If there is no match the default (osfstorage) is used.

To upload a whole directory (and all its sub-directories) use the -r
option. If your source directory name ends in a / then files are created
directly in the remote directory; otherwise an extra sub-directory with
the name of the local directory is created.

To place contents of local directory foo in remote directory bar/foo:
  osf upload -r foo bar
To place contents of local directory foo in remote directory bar:
  osf upload -r foo/ bar`,
		Args: cobra.ExactArgs(2),
		RunE: guarded(runUpload),
	}

	cmd.Flags().BoolP("force", "f", false, "overwrite an existing remote file")
	cmd.Flags().BoolP("update", "U", false, "overwrite an existing remote file (no checksum comparison on upload)")
	cmd.Flags().BoolP("recursive", "r", false, "upload a directory and all its contents")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source, destination := args[0], args[1]

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return err
	}

	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return err
	}

	if err := requireAuth("upload a file"); err != nil {
		return err
	}

	storage, remotePath := newResolver().Split(destination, true)

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	store, err := project.Storage(ctx, storage)
	if err != nil {
		return err
	}

	if !recursive {
		if err := uploadOne(ctx, store, source, remotePath, force, update); err != nil {
			return err
		}

		statusf("Uploaded %s to %s/%s\n", source, storage, remotePath)

		return nil
	}

	items, err := transfer.PlanRecursiveUpload(source, transfer.RemoteBase(source, remotePath))
	if err != nil {
		return err
	}

	// Each file is created independently; one failure does not abort the
	// rest of the walk.
	var failures []error

	for _, item := range items {
		if err := uploadOne(ctx, store, item.LocalPath, item.RemotePath, force, update); err != nil {
			logger.Warn("upload failed",
				slog.String("local_path", item.LocalPath),
				slog.String("remote_path", item.RemotePath),
				slog.String("error", err.Error()),
			)

			failures = append(failures, fmt.Errorf("%s: %w", item.LocalPath, err))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d uploads failed: %w", len(failures), len(items), errors.Join(failures...))
	}

	statusf("Uploaded %d files to %s/%s\n", len(items), storage, remotePath)

	return nil
}

// uploadOne streams one local file into the store at remotePath.
func uploadOne(ctx context.Context, store *osfapi.Storage, localPath, remotePath string, force, update bool) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer f.Close()

	return transfer.CreateFile(ctx, store, remotePath, f, force, update)
}
