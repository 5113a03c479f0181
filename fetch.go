package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/osfapi"
	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <remote-path> [local-path]",
		Short: "Download a single file from a project",
		Long: `Fetch an individual file from a project.

The first part of the remote path is interpreted as the name of the
storage provider. If there is no match the default (osfstorage) is used.
The local path defaults to the name of the remote file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: guarded(runFetch),
	}

	cmd.Flags().BoolP("force", "f", false, "overwrite an existing local file")
	cmd.Flags().BoolP("update", "U", false, "overwrite an existing local file only when it differs from the remote")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return err
	}

	storage, remotePath := newResolver().Split(args[0], true)

	localPath := path.Base(remotePath)
	if len(args) > 1 {
		localPath = args[1]
	}

	// Local precondition, before any network call.
	if err := transfer.CheckLocalTarget(localPath, force, update); err != nil {
		return err
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating local directory %s: %w", dir, err)
		}
	}

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	store, err := project.Storage(ctx, storage)
	if err != nil {
		return err
	}

	file, err := transfer.FindFile(ctx, store, remotePath)
	if err != nil {
		return err
	}

	// No matching remote file completes without error or side effect.
	if file == nil {
		logger.Debug("fetch: no matching remote file", "path", remotePath)
		return nil
	}

	outcome, err := transfer.PlanFetch(localPath, file.MD5(), force, update)
	if err != nil {
		return err
	}

	if outcome == transfer.OutcomeSkipUnchanged {
		statusf("Local file %s already matches remote.\n", localPath)
		return nil
	}

	n, err := writeLocalFile(ctx, file, localPath)
	if err != nil {
		return err
	}

	logger.Debug("fetch complete", "local_path", localPath, "bytes", n)
	statusf("Downloaded %s (%s)\n", localPath, formatSize(n))

	return nil
}

// writeLocalFile streams a remote file into localPath through a scoped
// handle that is closed on every path.
func writeLocalFile(ctx context.Context, file *osfapi.File, localPath string) (int64, error) {
	out, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", localPath, err)
	}

	n, err := file.WriteTo(ctx, out)

	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	return n, err
}
