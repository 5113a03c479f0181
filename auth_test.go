package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonimelisma/osf-go/internal/config"
	"github.com/tonimelisma/osf-go/internal/osfapi"
)

func setResolvedConfig(t *testing.T, cfg *config.Resolved) {
	t.Helper()

	prev := resolvedCfg
	resolvedCfg = cfg
	t.Cleanup(func() { resolvedCfg = prev })
}

func runGuarded(err error) error {
	wrapped := guarded(func(*cobra.Command, []string) error { return err })
	return wrapped(&cobra.Command{}, nil)
}

func TestGuarded_PassesThroughSuccess(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{})
	assert.NoError(t, runGuarded(nil))
}

func TestGuarded_PassesThroughOtherErrors(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{})

	sentinel := errors.New("boom")
	assert.ErrorIs(t, runGuarded(sentinel), sentinel)
}

func TestGuarded_NoCredentials(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{})

	err := runGuarded(&osfapi.APIError{StatusCode: 401, Err: osfapi.ErrUnauthorized})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please set a username or token")
}

func TestGuarded_InsufficientAccess(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{Token: "tok"})

	err := runGuarded(&osfapi.APIError{StatusCode: 403, Err: osfapi.ErrForbidden})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized to access this project")
}

func TestRequireAuth(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{})

	err := requireAuth("upload a file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to upload a file you need to provide")

	setResolvedConfig(t, &config.Resolved{Username: "joe"})
	assert.NoError(t, requireAuth("upload a file"))
}

func TestResolveCredentials_NoPromptOutsideTerminal(t *testing.T) {
	// Test stdin is not a terminal, so a missing password stays empty.
	setResolvedConfig(t, &config.Resolved{Username: "joe"})

	creds := resolveCredentials()
	assert.Equal(t, "joe", creds.Username)
	assert.Empty(t, creds.Password)
}

func TestResolveCredentials_TokenSkipsPrompt(t *testing.T) {
	setResolvedConfig(t, &config.Resolved{Username: "joe", Token: "tok"})

	creds := resolveCredentials()
	assert.Equal(t, "tok", creds.Token)
	assert.Empty(t, creds.Password)
}
