package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or update the project-local config file",
		Long: `Initialize or edit an existing ` + config.FileName + ` file in the
current directory. Existing values are shown and kept when the prompt is
left empty.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(config.FileName)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintf(cmd.OutOrStdout(), "Provide a username for the config file [current username: %s]:\n", cfg.Username)

	if line := readLine(reader); line != "" {
		cfg.Username = line
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Provide a project for the config file [current project: %s]:\n", cfg.Project)

	if line := readLine(reader); line != "" {
		cfg.Project = line
	}

	return config.Write(config.FileName, cfg)
}

// readLine returns the next input line with surrounding whitespace
// stripped, or "" at end of input.
func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimSpace(line)
}
