package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tonimelisma/osf-go/internal/osfapi"
)

// resolveCredentials assembles the credentials attached to API requests.
// A username without a password triggers an interactive prompt, but only on
// a real terminal; in pipelines the password must come from the
// environment.
func resolveCredentials() osfapi.Credentials {
	creds := osfapi.Credentials{
		Username: resolvedCfg.Username,
		Password: resolvedCfg.Password,
		Token:    resolvedCfg.Token,
	}

	if creds.Username != "" && creds.Password == "" && creds.Token == "" {
		creds.Password = promptPassword()
	}

	return creds
}

// promptPassword reads a password from the terminal without echo. Returns
// "" when stdin is not a terminal or the read fails; the request then
// proceeds without a password and the auth gate reports the failure.
func promptPassword() string {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ""
	}

	fmt.Fprint(os.Stderr, "Please input your password: ")

	password, err := term.ReadPassword(int(fd))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return ""
	}

	return string(password)
}

// guarded wraps a command's RunE with authorization-failure classification.
// When the backend rejects the request, the user either never supplied
// credentials (tell them how) or supplied credentials that lack access.
func guarded(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err == nil || !osfapi.IsAuthFailure(err) {
			return err
		}

		if resolvedCfg == nil || !resolvedCfg.HasCredentials() {
			return errors.New("please set a username or token (run `osf -h` for details)")
		}

		return errors.New("you are not authorized to access this project")
	}
}

// requireAuth rejects write operations up front when no credentials were
// resolved, before any network call.
func requireAuth(action string) error {
	if !resolvedCfg.HasCredentials() {
		return fmt.Errorf("to %s you need to provide a username and password or token", action)
	}

	return nil
}
