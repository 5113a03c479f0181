// Package config implements configuration resolution for osf-go: a
// project-local TOML file, environment variables, and CLI flags, applied in
// that order so that CLI flags always win.
package config

// FileName is the project-local configuration file, looked up in the
// current working directory.
const FileName = ".osfcli.toml"

// File is the on-disk configuration structure.
type File struct {
	Username string `toml:"username"`
	Project  string `toml:"project"`
	BaseURL  string `toml:"base_url"`
}

// EnvOverrides holds values read from environment variables. They are read
// once at startup; nothing else in the program consults the environment.
type EnvOverrides struct {
	Username       string // OSF_USERNAME
	Password       string // OSF_PASSWORD
	Token          string // OSF_TOKEN
	Project        string // OSF_PROJECT
	BaseURL        string // OSF_BASE_URL
	KnownProviders string // KNOWN_PROVIDERS: comma-separated whitelist override
}

// CLIOverrides holds values from CLI flags. Empty means "not specified".
type CLIOverrides struct {
	Username string
	Project  string
	BaseURL  string
}

// Resolved is the effective configuration after applying the override chain.
type Resolved struct {
	Username string
	Password string
	Token    string
	Project  string
	BaseURL  string

	// KnownProviders is nil when no override was given, leaving the
	// resolver's built-in whitelist in effect.
	KnownProviders []string
}

// HasCredentials reports whether any authentication material was resolved.
func (r *Resolved) HasCredentials() bool {
	return r.Username != "" || r.Token != ""
}
