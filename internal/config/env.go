package config

import "os"

// Environment variable names.
const (
	EnvUsername       = "OSF_USERNAME"
	EnvPassword       = "OSF_PASSWORD"
	EnvToken          = "OSF_TOKEN"
	EnvProject        = "OSF_PROJECT"
	EnvBaseURL        = "OSF_BASE_URL"
	EnvKnownProviders = "KNOWN_PROVIDERS"
)

// ReadEnvOverrides reads environment variables and returns any overrides
// found. This does not modify anything; callers apply the relevant fields.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		Username:       os.Getenv(EnvUsername),
		Password:       os.Getenv(EnvPassword),
		Token:          os.Getenv(EnvToken),
		Project:        os.Getenv(EnvProject),
		BaseURL:        os.Getenv(EnvBaseURL),
		KnownProviders: os.Getenv(EnvKnownProviders),
	}
}
