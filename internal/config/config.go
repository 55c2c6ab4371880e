// Package config loads mdtoc settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/metcalfc/mdtoc/internal/logger"
	"github.com/metcalfc/mdtoc/internal/quality"
	"github.com/metcalfc/mdtoc/internal/reader"
	"github.com/metcalfc/mdtoc/internal/toc"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "mdtoc.yaml"

// EnvPrefix prefixes environment overrides, e.g. MDTOC_TOC_TITLE.
const EnvPrefix = "MDTOC"

// Config is the full mdtoc configuration, one section per concern.
type Config struct {
	TOC     TOCConfig     `mapstructure:"toc" yaml:"toc"`
	Walk    WalkConfig    `mapstructure:"walk" yaml:"walk"`
	Quality quality.Rules `mapstructure:"quality" yaml:"quality"`
	State   StateConfig   `mapstructure:"state" yaml:"state"`
	Workers int           `mapstructure:"workers" yaml:"workers"`
	Log     logger.Config `mapstructure:"log" yaml:"log"`
}

// TOCConfig mirrors toc.Options. The title line is always recognized as an
// existing TOC, whatever ExistingPatterns says.
type TOCConfig struct {
	Title            string   `mapstructure:"title" yaml:"title"`
	ReservedLabels   []string `mapstructure:"reserved_labels" yaml:"reserved_labels"`
	ExistingPatterns []string `mapstructure:"existing_patterns" yaml:"existing_patterns"`
	SummaryHeadings  []string `mapstructure:"summary_headings" yaml:"summary_headings"`
	AnchorCollisions string   `mapstructure:"anchor_collisions" yaml:"anchor_collisions"`
	SkipCodeFences   bool     `mapstructure:"skip_code_fences" yaml:"skip_code_fences"`
}

// WalkConfig selects which files a directory argument expands to.
type WalkConfig struct {
	Extensions   []string `mapstructure:"extensions" yaml:"extensions"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	ExcludeFiles []string `mapstructure:"exclude_files" yaml:"exclude_files"`
}

// StateConfig controls incremental runs. An empty Path means the XDG state directory.
type StateConfig struct {
	Incremental bool   `mapstructure:"incremental" yaml:"incremental"`
	Path        string `mapstructure:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	o := toc.DefaultOptions()
	return &Config{
		TOC: TOCConfig{
			Title:            o.Title,
			ReservedLabels:   o.ReservedLabels,
			ExistingPatterns: o.ExistingPatterns,
			SummaryHeadings:  o.SummaryHeadings,
			AnchorCollisions: o.AnchorCollisions,
			SkipCodeFences:   o.SkipCodeFences,
		},
		Walk: WalkConfig{
			Extensions:   reader.Markdown.Extensions,
			ExcludeDirs:  []string{".git", "node_modules", "vendor", "__pycache__", ".vscode", "venv", "env"},
			ExcludeFiles: []string{"README.md", "CHANGELOG.md", "LICENSE.md"},
		},
		Quality: quality.DefaultRules(),
		Log:     *logger.DefaultConfig(),
	}
}

// Load reads path, or DefaultFile when path is empty, over the defaults and
// applies MDTOC_* environment overrides. A missing DefaultFile is not an error;
// a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if _, err := os.Stat(DefaultFile); err == nil {
		v.SetConfigFile(DefaultFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("toc.title", d.TOC.Title)
	v.SetDefault("toc.reserved_labels", d.TOC.ReservedLabels)
	v.SetDefault("toc.existing_patterns", d.TOC.ExistingPatterns)
	v.SetDefault("toc.summary_headings", d.TOC.SummaryHeadings)
	v.SetDefault("toc.anchor_collisions", d.TOC.AnchorCollisions)
	v.SetDefault("toc.skip_code_fences", d.TOC.SkipCodeFences)

	v.SetDefault("walk.extensions", d.Walk.Extensions)
	v.SetDefault("walk.exclude_dirs", d.Walk.ExcludeDirs)
	v.SetDefault("walk.exclude_files", d.Walk.ExcludeFiles)

	q := d.Quality
	v.SetDefault("quality.required_sections", q.RequiredSections)
	v.SetDefault("quality.min_sections", q.MinSections)
	v.SetDefault("quality.min_code_examples", q.MinCodeExamples)
	v.SetDefault("quality.min_word_count", q.MinWordCount)
	v.SetDefault("quality.max_line_length", q.MaxLineLength)
	v.SetDefault("quality.require_toc", q.RequireTOC)
	v.SetDefault("quality.require_abstract", q.RequireAbstract)
	v.SetDefault("quality.require_code_language", q.RequireCodeLanguage)
	v.SetDefault("quality.check_links", q.CheckLinks)

	v.SetDefault("state.incremental", d.State.Incremental)
	v.SetDefault("state.path", d.State.Path)
	v.SetDefault("workers", d.Workers)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("log.file.filename", d.Log.File.Filename)
	v.SetDefault("log.file.maxsize", d.Log.File.MaxSize)
	v.SetDefault("log.file.maxage", d.Log.File.MaxAge)
	v.SetDefault("log.file.maxbackups", d.Log.File.MaxBackups)
	v.SetDefault("log.file.compress", d.Log.File.Compress)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	if len(c.Walk.Extensions) == 0 {
		return errors.New("walk.extensions must not be empty")
	}
	if _, err := toc.New(c.TOCOptions()); err != nil {
		return fmt.Errorf("toc: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// TOCOptions converts the toc section for the synchronizer.
func (c *Config) TOCOptions() toc.Options {
	return toc.Options{
		Title:            c.TOC.Title,
		ReservedLabels:   c.TOC.ReservedLabels,
		ExistingPatterns: c.TOC.ExistingPatterns,
		SummaryHeadings:  c.TOC.SummaryHeadings,
		AnchorCollisions: c.TOC.AnchorCollisions,
		SkipCodeFences:   c.TOC.SkipCodeFences,
	}
}

// Walker builds the document finder for the walk section.
func (c *Config) Walker() reader.Walker {
	return reader.Walker{
		Format:       reader.Format{Name: reader.Markdown.Name, Extensions: c.Walk.Extensions},
		ExcludeDirs:  c.Walk.ExcludeDirs,
		ExcludeFiles: c.Walk.ExcludeFiles,
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Write saves cfg as YAML to path. It refuses to overwrite an existing file.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
