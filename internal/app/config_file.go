package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file schema. It lets a project
// pin its prefixes and template location so the build only passes the
// output path.
type FileConfig struct {
	Output      string `yaml:"output" json:"output"`
	Prefix      string `yaml:"prefix" json:"prefix"`
	ShortPrefix string `yaml:"shortPrefix" json:"shortPrefix"`

	ToolDir     string `yaml:"toolDir" json:"toolDir"`
	Template    string `yaml:"template" json:"template"`
	ReleaseFile string `yaml:"releaseFile" json:"releaseFile"`
	Git         string `yaml:"git" json:"git"`
	Manifest    string `yaml:"manifest" json:"manifest"`

	DryRun  bool `yaml:"dryRun" json:"dryRun"`
	Strict  bool `yaml:"strict" json:"strict"`
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig. Relative paths in the
// file are taken relative to the directory holding it.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	base := filepath.Dir(path)
	fc.Output = relativeTo(base, fc.Output)
	fc.ToolDir = relativeTo(base, fc.ToolDir)
	fc.Template = relativeTo(base, fc.Template)
	fc.ReleaseFile = relativeTo(base, fc.ReleaseFile)
	fc.Manifest = relativeTo(base, fc.Manifest)
	return fc, nil
}

func relativeTo(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still unset. It runs first, so environment and flags applied later win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.Prefix == "" && fc.Prefix != "" {
		cfg.Prefix = fc.Prefix
	}
	if cfg.ShortPrefix == "" && fc.ShortPrefix != "" {
		cfg.ShortPrefix = fc.ShortPrefix
	}

	if cfg.ToolDir == "" && fc.ToolDir != "" {
		cfg.ToolDir = fc.ToolDir
	}
	if cfg.TemplatePath == "" && fc.Template != "" {
		cfg.TemplatePath = fc.Template
	}
	if cfg.ReleaseFile == "" && fc.ReleaseFile != "" {
		cfg.ReleaseFile = fc.ReleaseFile
	}
	if cfg.GitPath == "" && fc.Git != "" {
		cfg.GitPath = fc.Git
	}
	if cfg.ManifestPath == "" && fc.Manifest != "" {
		cfg.ManifestPath = fc.Manifest
	}

	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Strict && fc.Strict {
		cfg.Strict = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
