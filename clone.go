package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone [output-dir]",
		Short: "Download all files from all storage providers of a project",
		Long: `Copy all files from all storages of a project.

The output directory defaults to the project ID. Files land under
one subdirectory per storage provider.`,
		Args: cobra.MaximumNArgs(1),
		RunE: guarded(runClone),
	}

	cmd.Flags().BoolP("update", "U", false, "skip local files whose checksum already matches the remote")

	return cmd
}

func runClone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	update, err := cmd.Flags().GetBool("update")
	if err != nil {
		return err
	}

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	outputDir := resolvedCfg.Project
	if len(args) > 0 {
		outputDir = args[0]
	}

	var written, skipped int

	for store, err := range project.Storages(ctx) {
		if err != nil {
			return err
		}

		prefix := filepath.Join(outputDir, store.Name)

		for file, err := range store.Files(ctx) {
			if err != nil {
				return err
			}

			localPath := filepath.Join(prefix, filepath.FromSlash(strings.TrimPrefix(file.Path, "/")))

			if update {
				if _, statErr := os.Stat(localPath); statErr == nil {
					sum, sumErr := transfer.ChecksumFile(localPath)
					if sumErr == nil && sum != "" && sum == file.MD5() {
						skipped++
						continue
					}
				}
			}

			if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
				return fmt.Errorf("creating local directory for %s: %w", localPath, err)
			}

			if _, err := writeLocalFile(ctx, file, localPath); err != nil {
				return err
			}

			written++
		}
	}

	logger.Debug("clone complete", "written", written, "skipped", skipped)
	statusf("Cloned %d files into %s\n", written, outputDir)

	return nil
}
