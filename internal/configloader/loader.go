package configloader

import (
	"fmt"
	"os"

	"github.com/comradekingu/po4a/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags. These take
	// highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (PO4AMAN_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.po4aman.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/po4a-man/config.yaml)
//  6. Defaults
func Load(opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{Config: config.Default()}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	result.Paths.User = discoverUser()
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	} else {
		result.Paths.Project = discoverProject(workDir)
	}

	for _, path := range []string{result.Paths.User, result.Paths.Project, result.Paths.Explicit} {
		if path == "" {
			continue
		}
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		result.Config.Merge(loaded)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(result.Config); err != nil {
			return nil, err
		}
	}

	result.Config.Merge(opts.CLIConfig)

	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

func loadFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
