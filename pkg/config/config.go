// Package config loads and merges codecat configuration: built-in
// defaults, an optional YAML config file in the project root, and
// command-line overrides applied by the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"codecat/pkg/scan"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFilename is the config file codecat looks for in the
	// scanned project directory.
	DefaultConfigFilename = ".codecat.yaml"

	// DefaultOutputFilename is the generated document's default name.
	DefaultOutputFilename = "codecat_output.md"
)

// Config represents the effective codecat configuration for one run.
type Config struct {
	// OutputFile is the document path, relative to the project root
	// unless absolute.
	OutputFile string `yaml:"output_file"`

	// IncludePatterns are glob patterns gating which files become
	// candidates. An empty list matches everything.
	IncludePatterns []string `yaml:"include_patterns"`

	// ExcludePatterns are glob patterns excluding files and pruning
	// matching directories.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// ExcludeDirs are exact directory names pruned from the scan.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludeFiles are exact relative paths excluded from the scan.
	ExcludeFiles []string `yaml:"exclude_files"`

	// MaxFileSizeKB is the per-file size ceiling; larger files are
	// recorded as skipped, never truncated.
	MaxFileSizeKB int `yaml:"max_file_size_kb"`

	// MaxWorkers is the reader pool size (0 = available parallelism).
	MaxWorkers int `yaml:"max_workers"`

	// FollowSymlinks admits symlinks resolving to regular files.
	FollowSymlinks bool `yaml:"follow_symlinks"`

	// CaseSensitive controls pattern matching case sensitivity.
	CaseSensitive bool `yaml:"case_sensitive"`

	// GenerateHeader controls the document's metadata header.
	GenerateHeader bool `yaml:"generate_header"`

	// GenerateTree controls the project tree section of the document.
	GenerateTree bool `yaml:"generate_tree"`

	// FailIfEmpty makes a scan yielding zero candidates a fatal error.
	FailIfEmpty bool `yaml:"fail_if_empty"`

	// LanguageHints extends the built-in extension/filename to
	// language-tag table.
	LanguageHints map[string]string `yaml:"language_hints"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		OutputFile: DefaultOutputFilename,
		IncludePatterns: []string{
			"*.py", "*.pyw", "*.java", "*.js", "*.ts", "*.html", "*.css",
			"*.scss", "*.go", "*.rs", "*.c", "*.cpp", "*.h", "*.hpp",
			"*.cs", "*.sh", "*.ps1", "*.rb", "*.php", "*.sql", "*.json",
			"*.xml", "*.yml", "*.yaml", "*.toml", "*.ini", "*.cfg",
			"*.md", "*.txt", "Dockerfile", "Makefile", ".dockerignore",
			".gitignore",
		},
		ExcludePatterns: []string{
			"*.pyc", "*.pyo", "*.pyd", "*.so", "*.egg-info",
			"*.dist-info", "*.log", "*.tmp", "*.bak", "*.swp", "*.lock",
			".DS_Store", "Thumbs.db", "venv*", ".venv",
		},
		ExcludeDirs: []string{
			".git", ".hg", ".svn", ".vscode", ".idea", ".pytest_cache",
			"__pycache__", "node_modules", "vendor", "target", "build",
			"dist",
		},
		ExcludeFiles:   []string{DefaultConfigFilename, DefaultOutputFilename},
		MaxFileSizeKB:  1024,
		MaxWorkers:     0,
		FollowSymlinks: false,
		CaseSensitive:  true,
		GenerateHeader: true,
		GenerateTree:   true,
		FailIfEmpty:    false,
		LanguageHints:  map[string]string{},
	}
}

// Load builds the effective configuration for a project. Values come
// from defaults, overlaid by the config file if one exists. A missing
// file at the default location is not an error; a missing file at an
// explicit override path is.
func Load(projectPath, overridePath string) (*Config, error) {
	cfg := DefaultConfig()

	path := overridePath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectPath, DefaultConfigFilename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.merge(data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays YAML data onto the receiver. List and map fields
// replace the defaults only when present in the file; language hints
// extend the default table instead of replacing it.
func (c *Config) merge(data []byte) error {
	type yamlConfig struct {
		OutputFile      *string           `yaml:"output_file"`
		IncludePatterns []string          `yaml:"include_patterns"`
		ExcludePatterns []string          `yaml:"exclude_patterns"`
		ExcludeDirs     []string          `yaml:"exclude_dirs"`
		ExcludeFiles    []string          `yaml:"exclude_files"`
		MaxFileSizeKB   *int              `yaml:"max_file_size_kb"`
		MaxWorkers      *int              `yaml:"max_workers"`
		FollowSymlinks  *bool             `yaml:"follow_symlinks"`
		CaseSensitive   *bool             `yaml:"case_sensitive"`
		GenerateHeader  *bool             `yaml:"generate_header"`
		GenerateTree    *bool             `yaml:"generate_tree"`
		FailIfEmpty     *bool             `yaml:"fail_if_empty"`
		LanguageHints   map[string]string `yaml:"language_hints"`
	}

	var fileCfg yamlConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	if fileCfg.OutputFile != nil {
		c.OutputFile = *fileCfg.OutputFile
	}
	if fileCfg.IncludePatterns != nil {
		c.IncludePatterns = fileCfg.IncludePatterns
	}
	if fileCfg.ExcludePatterns != nil {
		c.ExcludePatterns = fileCfg.ExcludePatterns
	}
	if fileCfg.ExcludeDirs != nil {
		c.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if fileCfg.ExcludeFiles != nil {
		c.ExcludeFiles = fileCfg.ExcludeFiles
	}
	if fileCfg.MaxFileSizeKB != nil {
		c.MaxFileSizeKB = *fileCfg.MaxFileSizeKB
	}
	if fileCfg.MaxWorkers != nil {
		c.MaxWorkers = *fileCfg.MaxWorkers
	}
	if fileCfg.FollowSymlinks != nil {
		c.FollowSymlinks = *fileCfg.FollowSymlinks
	}
	if fileCfg.CaseSensitive != nil {
		c.CaseSensitive = *fileCfg.CaseSensitive
	}
	if fileCfg.GenerateHeader != nil {
		c.GenerateHeader = *fileCfg.GenerateHeader
	}
	if fileCfg.GenerateTree != nil {
		c.GenerateTree = *fileCfg.GenerateTree
	}
	if fileCfg.FailIfEmpty != nil {
		c.FailIfEmpty = *fileCfg.FailIfEmpty
	}
	for k, v := range fileCfg.LanguageHints {
		c.LanguageHints[k] = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxFileSizeKB <= 0 {
		return fmt.Errorf("max_file_size_kb must be positive, got %d", c.MaxFileSizeKB)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max_workers must be non-negative, got %d", c.MaxWorkers)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	return nil
}

// ScanConfig maps the effective configuration onto the scan core's
// run-scoped config for the given absolute root.
func (c *Config) ScanConfig(root string) scan.Config {
	excludeFiles := c.ExcludeFiles
	if c.OutputFile != "" && !filepath.IsAbs(c.OutputFile) {
		// Never aggregate a previous run's own output.
		excludeFiles = append(append([]string{}, excludeFiles...), c.OutputFile)
	}
	return scan.Config{
		Root:           root,
		Includes:       c.IncludePatterns,
		Excludes:       c.ExcludePatterns,
		ExcludeDirs:    c.ExcludeDirs,
		ExcludeFiles:   excludeFiles,
		MaxFileSize:    int64(c.MaxFileSizeKB) * 1024,
		FollowSymlinks: c.FollowSymlinks,
		CaseSensitive:  c.CaseSensitive,
		Workers:        c.MaxWorkers,
		LanguageHints:  c.LanguageHints,
	}
}

// OutputPath resolves the document destination against the project root.
func (c *Config) OutputPath(root string) string {
	if filepath.IsAbs(c.OutputFile) {
		return c.OutputFile
	}
	return filepath.Join(root, c.OutputFile)
}

// WriteDefault writes a documented default config file. It refuses to
// overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	header := "# codecat configuration.\n" +
		"# Globs use *, ? and ** over slash-separated relative paths.\n" +
		"# A bare directory name in exclude_patterns prunes its whole subtree.\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
