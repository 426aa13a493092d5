// Package envdeps provides a public Go API for merging an environment
// specific dependency manifest into a project's base manifest.
//
// The environment is detected from the current git branch, a host
// environment variable, or an interactive prompt, in that order. Settings
// live in the manifest's extra.environment-dependencies block and may be
// overridden by an envdeps.yml file.
//
// Basic usage:
//
//	result, err := envdeps.Apply(ctx, envdeps.Options{
//	    Path: "/path/to/project",
//	})
//	if err != nil {
//	    return err
//	}
//	if result.Skipped != nil {
//	    log.Println("nothing merged:", result.Skipped)
//	}
//	out, _ := json.Marshal(result.Manifest)
package envdeps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/git"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/manifest"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/resolver"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/strategy"
)

// DefaultManifest is the base manifest file name.
const DefaultManifest = "composer.json"

// Skip conditions. Apply reports them through Result.Skipped and leaves the
// base manifest unchanged.
var (
	ErrNotEnabled               = errors.New("environment dependencies are not configured")
	ErrUndeterminedEnvironment  = errors.New("can't determine environment")
	ErrEnvironmentNotConfigured = errors.New("environment dependencies are not defined")
	ErrFragmentNotFound         = manifest.ErrFragmentNotFound
)

// IsSkip reports whether err is one of the soft skip conditions.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNotEnabled) ||
		errors.Is(err, ErrUndeterminedEnvironment) ||
		errors.Is(err, ErrEnvironmentNotConfigured) ||
		errors.Is(err, ErrFragmentNotFound)
}

type (
	// Manifest is a parsed dependency manifest.
	Manifest = manifest.Manifest

	// Resolution is the outcome of environment detection.
	Resolution = resolver.Resolution

	// Prompter asks the user to choose an environment.
	Prompter = strategy.Prompter

	// BranchProvider reports the current and parent git branch.
	BranchProvider = strategy.BranchProvider

	// Settings is the validated environment-dependencies configuration.
	Settings = config.Settings
)

// configFileNames lists the settings files searched in the project
// directory, in order.
var configFileNames = []string{
	filepath.Join(".github", "envdeps.yml"),
	"envdeps.yml",
}

// Options configures Apply and Resolve.
type Options struct {
	// Path is the project directory. Defaults to ".".
	Path string

	// ManifestPath is the base manifest, relative to Path unless absolute.
	// Defaults to composer.json.
	ManifestPath string

	// ConfigPath is a YAML settings file. If empty, .github/envdeps.yml or
	// envdeps.yml in Path is used when present.
	ConfigPath string

	// Prompter answers the interactive question. Nil disables prompting.
	Prompter Prompter

	// LookupEnv reads host environment variables. Defaults to os.LookupEnv.
	LookupEnv func(name string) (string, bool)

	// Branches overrides git branch detection. If nil, the git repository
	// containing Path is used when there is one.
	Branches BranchProvider

	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// Result is the outcome of Apply or Resolve.
type Result struct {
	// Manifest is the merged manifest, or the base manifest when skipped.
	Manifest Manifest

	// Base is the manifest as read from disk.
	Base Manifest

	// Settings is nil when the project has no settings.
	Settings *Settings

	// Resolution is the environment detection outcome.
	Resolution Resolution

	// FragmentPath is the resolved fragment file, once known.
	FragmentPath string

	// Skipped holds the skip condition, or nil when the fragment was merged.
	Skipped error
}

// Apply detects the environment and merges its manifest fragment into the
// base manifest. Skip conditions are reported in Result.Skipped with a nil
// error; malformed files and invalid settings are returned as errors.
func Apply(ctx context.Context, opts Options) (*Result, error) {
	r, p, err := resolve(ctx, opts)
	if err != nil || r.Skipped != nil {
		return r, err
	}
	logger := p.logger
	env := r.Resolution.Environment

	path, ok := r.Settings.GitEnv.Lookup(env)
	if !ok || path == "" {
		logger.Info("environment dependencies are not defined, skipping",
			slog.String("environment", env))
		r.Skipped = fmt.Errorf("%w: %s", ErrEnvironmentNotConfigured, env)
		return r, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, path)
	}
	r.FragmentPath = path

	fragment, err := manifest.LoadFile(path)
	if err != nil {
		if errors.Is(err, manifest.ErrFragmentNotFound) {
			logger.Error("environment dependencies file doesn't exist",
				slog.String("environment", env),
				slog.String("path", path))
			r.Skipped = err
			return r, nil
		}
		return r, fmt.Errorf("loading %s dependencies: %w", env, err)
	}

	r.Manifest = manifest.Merge(r.Base, fragment)
	logger.Info("environment dependencies merged",
		slog.String("environment", env),
		slog.String("path", path),
		slog.Int("repositories", len(fragment.Repositories)),
		slog.Int("require", fragment.Require.Len()),
		slog.Int("require-dev", fragment.RequireDev.Len()))
	return r, nil
}

// Resolve loads settings and detects the environment without merging.
func Resolve(ctx context.Context, opts Options) (*Result, error) {
	r, _, err := resolve(ctx, opts)
	return r, err
}

type pipeline struct {
	dir    string
	logger *slog.Logger
}

func newPipeline(opts Options) pipeline {
	p := pipeline{dir: opts.Path, logger: opts.Logger}
	if p.dir == "" {
		p.dir = "."
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

func (p pipeline) manifestPath(path string) string {
	if path == "" {
		path = DefaultManifest
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.dir, path)
	}
	return path
}

// LoadSettings reads and validates the project's settings without running
// detection. It returns ErrNotEnabled when the project has none.
func LoadSettings(opts Options) (*Settings, error) {
	p := newPipeline(opts)
	data, err := os.ReadFile(p.manifestPath(opts.ManifestPath))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return loadSettings(opts.ConfigPath, p.dir, data)
}

func resolve(ctx context.Context, opts Options) (*Result, pipeline, error) {
	p := newPipeline(opts)

	manifestPath := p.manifestPath(opts.ManifestPath)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, p, fmt.Errorf("reading manifest: %w", err)
	}
	base, err := manifest.Parse(data)
	if err != nil {
		return nil, p, fmt.Errorf("%s: %w", manifestPath, err)
	}

	r := &Result{Manifest: base, Base: base}

	settings, err := loadSettings(opts.ConfigPath, p.dir, data)
	if err != nil {
		if errors.Is(err, ErrNotEnabled) {
			p.logger.Debug("no environment dependencies settings found")
			r.Skipped = err
			return r, p, nil
		}
		return nil, p, fmt.Errorf("loading settings: %w", err)
	}
	r.Settings = settings

	res := resolver.New(strategy.AllStrategies(strategy.Providers{
		Branches:  branchProvider(opts, p),
		LookupEnv: opts.LookupEnv,
		Prompter:  opts.Prompter,
	}), p.logger)

	resolution, err := res.Resolve(ctx, settings)
	r.Resolution = resolution
	if err != nil {
		return nil, p, fmt.Errorf("resolving environment: %w", err)
	}
	if !resolution.Determined {
		p.logger.Error("can't determine environment, check your settings")
		r.Skipped = ErrUndeterminedEnvironment
		return r, p, nil
	}

	p.logger.Info("current environment",
		slog.String("environment", resolution.Environment),
		slog.String("source", resolution.Source))
	return r, p, nil
}

func branchProvider(opts Options, p pipeline) BranchProvider {
	if opts.Branches != nil {
		return opts.Branches
	}
	repo, err := git.Open(p.dir)
	if err != nil {
		p.logger.Debug("git branch detection unavailable", slog.String("error", err.Error()))
		return nil
	}
	return git.NewBranchStore(repo)
}

// loadSettings layers the manifest's extra block under the YAML settings
// file and validates the result.
func loadSettings(configPath, dir string, manifestData []byte) (*config.Settings, error) {
	builder := config.NewBuilder()

	extra, err := config.LoadFromManifest(manifestData)
	if err != nil {
		return nil, err
	}
	builder.Add(extra)

	if configPath == "" {
		configPath = findConfigFile(dir)
	}
	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		builder.Add(fileCfg)
	}

	if !builder.HasSources() {
		return nil, ErrNotEnabled
	}
	return builder.Build()
}

// findConfigFile searches for a settings file in the given directory.
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
