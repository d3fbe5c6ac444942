package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/hyperifyio/genbuildnum/internal/app"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageLine = "usage: genbuildnum [flags] <output> [<prefix> <shortPrefix>]"

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	})

	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr))
}

// options mirrors the command-line flags before they are merged into app.Config.
type options struct {
	configPath  string
	envFiles    []string
	toolDir     string
	template    string
	releaseFile string
	gitPath     string
	manifest    string
	dryRun      bool
	strict      bool
	verbose     bool
	showVersion bool
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("genbuildnum", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	var o options
	fs.StringVar(&o.configPath, "config", "", "Path to YAML or JSON config file (default $GENBUILDNUM_CONFIG)")
	fs.StringSliceVar(&o.envFiles, "env-file", nil, "Dotenv file(s) to load before reading GENBUILDNUM_* variables")
	fs.StringVar(&o.toolDir, "tool-dir", "", "Directory holding release_ver and the template; its parent is the repository root (default \".\")")
	fs.StringVar(&o.template, "template", "", "Template path (default <tool-dir>/build_number.h.in)")
	fs.StringVar(&o.releaseFile, "release-file", "", "Fallback version file (default <tool-dir>/release_ver)")
	fs.StringVar(&o.gitPath, "git", "", "Git executable (default git on PATH)")
	fs.StringVar(&o.manifest, "manifest", "", "Also write a JSON record of the resolved version to this path")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Print the diff instead of writing the output")
	fs.BoolVar(&o.strict, "strict", false, "Fail when the output still contains @NAME@ placeholders")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose logging")
	fs.BoolVar(&o.showVersion, "version", false, "Print the genbuildnum version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if o.showVersion {
		fmt.Fprintln(stdout, app.VersionString())
		return exitOK
	}

	cfg, err := loadConfig(fs, o, fs.Args())
	if err != nil {
		return report(err, fs, stderr)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	res, err := run(cfg)
	if err != nil {
		return report(err, fs, stderr)
	}
	if cfg.DryRun && res.Diff != "" {
		fmt.Fprint(stdout, res.Diff)
	}
	return exitOK
}

// loadConfig layers config file, environment, positional arguments and
// explicitly set flags, in increasing precedence.
func loadConfig(fs *pflag.FlagSet, o options, positional []string) (app.Config, error) {
	var cfg app.Config
	if len(positional) > 3 {
		log.Warn().Strs("ignored", positional[3:]).Msg("extra arguments ignored")
		positional = positional[:3]
	}
	if err := app.LoadEnvFiles(o.envFiles...); err != nil {
		return cfg, fmt.Errorf("load env files: %w", err)
	}
	// The env files may name the config file themselves.
	if !fs.Changed("config") {
		o.configPath = os.Getenv(app.EnvConfig)
	}
	if o.configPath != "" {
		fc, err := app.LoadConfigFile(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", o.configPath, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	if len(positional) > 0 {
		cfg.OutputPath = positional[0]
	}
	if len(positional) > 1 {
		cfg.Prefix = positional[1]
		cfg.PrefixSet = true
	}
	if len(positional) > 2 {
		cfg.ShortPrefix = positional[2]
		cfg.ShortPrefixSet = true
	}

	if fs.Changed("tool-dir") {
		cfg.ToolDir = o.toolDir
	}
	if fs.Changed("template") {
		cfg.TemplatePath = o.template
	}
	if fs.Changed("release-file") {
		cfg.ReleaseFile = o.releaseFile
	}
	if fs.Changed("git") {
		cfg.GitPath = o.gitPath
	}
	if fs.Changed("manifest") {
		cfg.ManifestPath = o.manifest
	}
	if fs.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}
	if fs.Changed("strict") {
		cfg.Strict = o.strict
	}
	if fs.Changed("verbose") {
		cfg.Verbose = o.verbose
	}

	return cfg, app.ValidateConfig(cfg)
}

func run(cfg app.Config) (app.Result, error) {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return app.Result{}, fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}

// report prints err and maps it to an exit code. Usage errors also print
// the usage text.
func report(err error, fs *pflag.FlagSet, stderr io.Writer) int {
	var ue *app.UsageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %s\n", ue.Msg)
		fs.Usage()
		return exitUsage
	}
	log.Error().Err(err).Msg("generation failed")
	return exitError
}
