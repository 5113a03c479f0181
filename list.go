package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/transfer"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [remote-base]",
		Aliases: []string{"ls"},
		Short:   "List files in a project",
		Long: `List all files from all storage providers of a project.

An optional remote base of the form provider[/dir/...] restricts the
listing to one provider and, within it, to paths under the given
directory. Path segments may use % wildcards: text%, %text, and %text%
match by prefix, suffix, and substring.`,
		Args: cobra.MaximumNArgs(1),
		RunE: guarded(runList),
	}

	cmd.Flags().BoolP("long-format", "l", false, "include modification time and size columns")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	longFormat, err := cmd.Flags().GetBool("long-format")
	if err != nil {
		return err
	}

	var filter transfer.ListFilter
	if len(args) > 0 {
		filter = transfer.NewListFilter(args[0])
	}

	_, project, logger, err := openProject(ctx)
	if err != nil {
		return err
	}

	logger.Debug("list", "provider", filter.Provider, "pattern", filter.Pattern)

	for store, err := range project.Storages(ctx) {
		if err != nil {
			return err
		}

		if !filter.MatchStorage(store.Name) {
			continue
		}

		for f, err := range store.Files(ctx) {
			if err != nil {
				return err
			}

			if !filter.MatchFile(f.Path) {
				continue
			}

			fullPath := store.Name + "/" + strings.TrimPrefix(f.Path, "/")

			if longFormat {
				size := "-"
				if f.Size != nil {
					size = strconv.FormatInt(*f.Size, 10)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", formatModified(f.DateModified), size, fullPath)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), fullPath)
			}
		}
	}

	return nil
}
