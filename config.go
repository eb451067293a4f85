// Copyright 2022 The Gc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontend // import "modernc.org/frontend"

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxDepth is the nesting limit used when none is configured.
	DefaultMaxDepth = 256
	// DefaultExtension is the file name extension of source files.
	DefaultExtension = ".fe"

	parserBudget = 1e8
)

// ConfigOption is a configuration option.
type ConfigOption func(*Config) error

// Config configures ParseFile and ParseDir.
//
// Config instances can be shared, the instance is never mutated once created
// and configured.
type Config struct {
	actions   func(DiagnosticSink) Actions
	budget    int
	cache     Cache
	ext       string
	fs        fs.FS
	logger    *zap.Logger
	maxDepth  int
	operators map[string]Operator
	parallel  int

	fingerprint uint64
	configured  bool
}

// NewConfig returns a newly created config or an error, if any.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	r := &Config{
		budget:    parserBudget,
		ext:       DefaultExtension,
		logger:    zap.NewNop(),
		maxDepth:  DefaultMaxDepth,
		operators: DefaultOperators(),
	}

	defer func() { r.configured = true }()

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.fingerprint = r.settingsHash()
	return r, nil
}

// Extension returns the file name extension ParseDir looks for.
func (c *Config) Extension() string { return c.ext }

// MaxDepth returns the nesting limit.
func (c *Config) MaxDepth() int { return c.maxDepth }

// Logger returns the configured logger.
func (c *Config) Logger() *zap.Logger { return c.logger }

// Operators returns a copy of the binary operator table.
func (c *Config) Operators() map[string]Operator {
	r := make(map[string]Operator, len(c.operators))
	for k, v := range c.operators {
		r[k] = v
	}
	return r
}

func (c *Config) newActions(sink DiagnosticSink) Actions {
	if c.actions != nil {
		return c.actions(sink)
	}

	return NewSema(sink)
}

func (c *Config) open(name string) (fs.File, error) {
	if c.fs == nil {
		return os.Open(name)
	}

	return c.fs.Open(name)
}

// sources returns the names of the source files in dir.
func (c *Config) sources(dir string) (matches []string, err error) {
	if c.fs == nil {
		return filepath.Glob(filepath.Join(dir, "*"+c.ext))
	}

	return fs.Glob(c.fs, path.Join(dir, "*"+c.ext))
}

func (c *Config) readFile(name string) ([]byte, error) {
	f, err := c.open(name)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return io.ReadAll(f)
}

// ConfigMaxDepth configures the maximum nesting depth of declarations, types
// and expressions.
func ConfigMaxDepth(n int) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigMaxDepth: Config instance already configured")
		}

		if n < 1 {
			return fmt.Errorf("ConfigMaxDepth: invalid depth %d", n)
		}

		cfg.maxDepth = n
		return nil
	}
}

// ConfigBudget configures the number of parser steps after which parsing of a
// file is abandoned.
func ConfigBudget(n int) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigBudget: Config instance already configured")
		}

		if n < 1 {
			return fmt.Errorf("ConfigBudget: invalid budget %d", n)
		}

		cfg.budget = n
		return nil
	}
}

// ConfigOperator adds or redefines a binary operator.
func ConfigOperator(spelling string, precedence int, assoc Assoc) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigOperator: Config instance already configured")
		}

		op := Operator{Precedence: precedence, Assoc: assoc}
		if err := checkOperator(spelling, op); err != nil {
			return fmt.Errorf("ConfigOperator: %v", err)
		}

		cfg.operators[spelling] = op
		return nil
	}
}

// ConfigOperators replaces the binary operator table.
func ConfigOperators(m map[string]Operator) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigOperators: Config instance already configured")
		}

		ops := make(map[string]Operator, len(m))
		for k, v := range m {
			if err := checkOperator(k, v); err != nil {
				return fmt.Errorf("ConfigOperators: %v", err)
			}

			ops[k] = v
		}
		cfg.operators = ops
		return nil
	}
}

// ConfigLogger configures the logger receiving debug information about error
// recovery.
func ConfigLogger(l *zap.Logger) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigLogger: Config instance already configured")
		}

		if l == nil {
			return fmt.Errorf("ConfigLogger: nil logger")
		}

		cfg.logger = l
		return nil
	}
}

// ConfigCache configures a cache.
func ConfigCache(c Cache) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigCache: Config instance already configured")
		}

		cfg.cache = c
		return nil
	}
}

// ConfigFS configures a file system used by ParseDir. If not explicitly
// configured, the OS file system is used.
func ConfigFS(fsys fs.FS) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigFS: Config instance already configured")
		}

		cfg.fs = fsys
		return nil
	}
}

// ConfigActions configures the factory of semantic actions. Every parsed file
// gets its own Actions instance. The default is NewSema.
func ConfigActions(f func(DiagnosticSink) Actions) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigActions: Config instance already configured")
		}

		cfg.actions = f
		return nil
	}
}

// ConfigExtension configures the file name extension ParseDir looks for.
func ConfigExtension(ext string) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigExtension: Config instance already configured")
		}

		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("ConfigExtension: invalid extension %q", ext)
		}

		cfg.ext = ext
		return nil
	}
}

// ConfigParallel configures the number of files ParseDir parses concurrently.
// Zero means GOMAXPROCS.
func ConfigParallel(n int) ConfigOption {
	return func(cfg *Config) error {
		if cfg.configured {
			return fmt.Errorf("ConfigParallel: Config instance already configured")
		}

		if n < 0 {
			return fmt.Errorf("ConfigParallel: invalid value %d", n)
		}

		cfg.parallel = n
		return nil
	}
}

// FileConfig is the content of a configuration file.
type FileConfig struct {
	Budget    int              `toml:"budget" yaml:"budget"`
	Extension string           `toml:"extension" yaml:"extension"`
	MaxDepth  int              `toml:"max_depth" yaml:"max_depth"`
	Operators []OperatorConfig `toml:"operator" yaml:"operators"`
	Parallel  int              `toml:"parallel" yaml:"parallel"`
}

// OperatorConfig is a binary operator definition in a configuration file.
type OperatorConfig struct {
	Assoc      string `toml:"assoc" yaml:"assoc"`
	Precedence int    `toml:"precedence" yaml:"precedence"`
	Spelling   string `toml:"spelling" yaml:"spelling"`
}

// LoadConfigFile reads the configuration file at path and returns the
// equivalent options. Files named *.yaml or *.yml are YAML, anything else is
// TOML.
func LoadConfigFile(path string) ([]ConfigOption, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return DecodeConfig(path, b)
}

// DecodeConfig is like LoadConfigFile but reads the configuration from b. The
// name selects the format.
func DecodeConfig(name string, b []byte) ([]ConfigOption, error) {
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
	}
	opts, err := fc.Options()
	if err != nil {
		return nil, fmt.Errorf("%s: %v", name, err)
	}

	return opts, nil
}

// Options returns the configuration options equivalent to fc. Zero fields are
// left at their defaults.
func (fc *FileConfig) Options() (r []ConfigOption, err error) {
	if fc.Budget != 0 {
		r = append(r, ConfigBudget(fc.Budget))
	}
	if fc.Extension != "" {
		r = append(r, ConfigExtension(fc.Extension))
	}
	if fc.MaxDepth != 0 {
		r = append(r, ConfigMaxDepth(fc.MaxDepth))
	}
	if fc.Parallel != 0 {
		r = append(r, ConfigParallel(fc.Parallel))
	}
	for _, v := range fc.Operators {
		var assoc Assoc
		switch strings.ToLower(v.Assoc) {
		case "", "left":
			assoc = Left
		case "right":
			assoc = Right
		default:
			return nil, fmt.Errorf("operator %s: invalid associativity %q", v.Spelling, v.Assoc)
		}

		r = append(r, ConfigOperator(v.Spelling, v.Precedence, assoc))
	}
	return r, nil
}
