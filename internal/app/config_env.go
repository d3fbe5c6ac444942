package app

import (
	"os"
	"strings"
)

// Environment variables read by ApplyEnvOverrides.
const (
	EnvOutput      = "GENBUILDNUM_OUTPUT"
	EnvPrefix      = "GENBUILDNUM_PREFIX"
	EnvShortPrefix = "GENBUILDNUM_SHORT_PREFIX"
	EnvToolDir     = "GENBUILDNUM_TOOL_DIR"
	EnvTemplate    = "GENBUILDNUM_TEMPLATE"
	EnvReleaseFile = "GENBUILDNUM_RELEASE_FILE"
	EnvGit         = "GENBUILDNUM_GIT"
	EnvManifest    = "GENBUILDNUM_MANIFEST"
	EnvDryRun      = "GENBUILDNUM_DRY_RUN"
	EnvStrict      = "GENBUILDNUM_STRICT"
	EnvVerbose     = "GENBUILDNUM_VERBOSE"
)

// EnvConfig names the config file when --config is not given. It is read
// after --env-file, so an env file can point at the config.
const EnvConfig = "GENBUILDNUM_CONFIG"

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This lets env take precedence over
// values coming from a config file while still allowing flags to remain
// highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv(EnvPrefix); v != "" {
		cfg.Prefix = v
	}
	if v := os.Getenv(EnvShortPrefix); v != "" {
		cfg.ShortPrefix = v
	}

	if v := os.Getenv(EnvToolDir); v != "" {
		cfg.ToolDir = v
	}
	if v := os.Getenv(EnvTemplate); v != "" {
		cfg.TemplatePath = v
	}
	if v := os.Getenv(EnvReleaseFile); v != "" {
		cfg.ReleaseFile = v
	}
	if v := os.Getenv(EnvGit); v != "" {
		cfg.GitPath = v
	}
	if v := os.Getenv(EnvManifest); v != "" {
		cfg.ManifestPath = v
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.DryRun, EnvDryRun)
	setBool(&cfg.Strict, EnvStrict)
	setBool(&cfg.Verbose, EnvVerbose)
}
