package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tonimelisma/osf-go/internal/config"
	"github.com/tonimelisma/osf-go/internal/osfapi"
	"github.com/tonimelisma/osf-go/internal/remotepath"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagUsername string
	flagProject  string
	flagBaseURL  string
	flagVerbose  bool
	flagQuiet    bool
)

// resolvedCfg holds the effective configuration loaded by PersistentPreRunE.
// It is available to all subcommands after the root pre-run phase completes.
// init handles config access itself because it bootstraps the file.
var resolvedCfg *config.Resolved

// httpClientTimeout is the default timeout for HTTP requests.
// Prevents hung connections from blocking CLI commands indefinitely.
const httpClientTimeout = 30 * time.Second

// defaultHTTPClient returns an HTTP client with a sensible timeout.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: httpClientTimeout}
}

// skipConfigCommands lists commands that handle config loading themselves.
// Uses CommandPath() for explicit matching.
var skipConfigCommands = map[string]bool{
	"osf init": true,
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main().
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "osf",
		Short:   "OSF command-line client",
		Long:    "A command-line client for listing, fetching, and uploading files on Open Science Framework projects.",
		Version: version,
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfigCommands[cmd.CommandPath()] {
				return nil
			}

			return loadConfig()
		},
	}

	cmd.PersistentFlags().StringVarP(&flagProject, "project", "p", "", "OSF project ID")
	cmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "OSF username (email)")
	cmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (defaults to the public OSF API)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCloneCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newMoveCmd())

	return cmd
}

// loadConfig resolves the effective configuration from the override chain
// (config file < environment < CLI flags) and stores the result in
// resolvedCfg for use by subcommands.
func loadConfig() error {
	cli := config.CLIOverrides{
		Username: flagUsername,
		Project:  flagProject,
		BaseURL:  flagBaseURL,
	}

	resolved, err := config.Resolve(config.ReadEnvOverrides(), cli)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	resolvedCfg = resolved

	return nil
}

// buildLogger creates an slog.Logger configured by the CLI flags. The
// default level is Warn so normal operation stays quiet on stderr.
func buildLogger() *slog.Logger {
	level := slog.LevelWarn

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newResolver returns the path resolver with the effective provider
// whitelist. The whitelist is read once at config resolution.
func newResolver() remotepath.Resolver {
	return remotepath.NewResolver(resolvedCfg.KnownProviders)
}

// requireProject returns the effective project ID or an error naming all
// the ways to supply one.
func requireProject() (string, error) {
	if resolvedCfg.Project == "" {
		return "", errors.New(
			"you have to specify a project ID via the command line, configuration file or environment variable")
	}

	return resolvedCfg.Project, nil
}

// openProject builds the API client and fetches the configured project.
// Shared by every subcommand that talks to the backend.
func openProject(ctx context.Context) (*osfapi.Client, *osfapi.Project, *slog.Logger, error) {
	projectID, err := requireProject()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := buildLogger()
	client := osfapi.NewClient(resolvedCfg.BaseURL, defaultHTTPClient(), resolveCredentials(), logger)

	project, err := client.Project(ctx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}

	return client, project, logger, nil
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
