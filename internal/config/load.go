package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads and parses the TOML config file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return &f, nil
}

// LoadOrDefault reads the config file if it exists, otherwise returns an
// empty File. Running without a config file is the normal anonymous-read
// case, not an error.
func LoadOrDefault(path string) (*File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}

	return Load(path)
}

// Write saves the config file to path, creating or truncating it.
func Write(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer out.Close()

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}

	return nil
}

// Resolve applies the override chain: config file, then environment
// variables, then CLI flags. The password is never stored in the file; it
// comes from the environment only (or an interactive prompt at the CLI
// layer). A missing project is not an error here — commands that need one
// report it themselves.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	file, err := LoadOrDefault(FileName)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Username: file.Username,
		Project:  file.Project,
		BaseURL:  file.BaseURL,
	}

	if env.Username != "" {
		r.Username = env.Username
	}

	if env.Project != "" {
		r.Project = env.Project
	}

	if env.BaseURL != "" {
		r.BaseURL = env.BaseURL
	}

	r.Password = env.Password
	r.Token = env.Token

	if env.KnownProviders != "" {
		r.KnownProviders = splitProviders(env.KnownProviders)
	}

	if cli.Username != "" {
		r.Username = cli.Username
	}

	if cli.Project != "" {
		r.Project = cli.Project
	}

	if cli.BaseURL != "" {
		r.BaseURL = cli.BaseURL
	}

	return r, nil
}

// splitProviders parses a comma-separated provider whitelist, trimming
// whitespace and dropping empty entries.
func splitProviders(s string) []string {
	parts := strings.Split(s, ",")
	providers := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			providers = append(providers, p)
		}
	}

	return providers
}
