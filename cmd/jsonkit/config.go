package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
)

const defaultConfigFile = ".jsonkit.yaml"

// fileConfig mirrors .jsonkit.yaml. Pointer fields distinguish "unset" from
// zero values.
type fileConfig struct {
	IndentChar    *string `yaml:"indent_char"`
	IndentSize    *int    `yaml:"indent_size"`
	MaxDepth      *int    `yaml:"max_depth"`
	MaxBytes      *int64  `yaml:"max_bytes"`
	DuplicateKeys *string `yaml:"duplicate_keys"`
	Language      *string `yaml:"language"`
	ASCII         *bool   `yaml:"ascii"`
}

// options is the resolved configuration of one command invocation.
type options struct {
	configPath string
	verbose    bool
	color      bool
	ascii      bool
	indent     int
	indentChar string
	maxDepth   int
	maxBytes   int64
	duplicates string
	lang       string
}

func (o *options) register(flags *flag.FlagSet, withIndent bool) {
	flags.StringVar(&o.configPath, "config", "", "YAML config file (default "+defaultConfigFile+" when present)")
	flags.BoolVar(&o.verbose, "v", false, "verbose (debug) logging")
	flags.BoolVar(&o.color, "color", false, "colorize log output")
	flags.BoolVar(&o.ascii, "ascii", false, "replace non-ASCII characters in output with '?'")
	flags.IntVar(&o.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	flags.Int64Var(&o.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	flags.StringVar(&o.duplicates, "duplicates", "first", "duplicate key policy: first, last or error")
	flags.StringVar(&o.lang, "lang", "", "message language (BCP 47 tag, e.g. en, ja)")
	if withIndent {
		flags.IntVar(&o.indent, "indent", 4, "indent size")
		flags.StringVar(&o.indentChar, "indent-char", "space", "indent character: space, tab or a single character")
	}
}

// resolve merges the config file into o; flags set on the command line win.
func (o *options) resolve(flags *flag.FlagSet) error {
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	if cfg.IndentChar != nil && !set["indent-char"] {
		o.indentChar = *cfg.IndentChar
	}
	if cfg.IndentSize != nil && !set["indent"] {
		o.indent = *cfg.IndentSize
	}
	if cfg.MaxDepth != nil && !set["max-depth"] {
		o.maxDepth = *cfg.MaxDepth
	}
	if cfg.MaxBytes != nil && !set["max-bytes"] {
		o.maxBytes = *cfg.MaxBytes
	}
	if cfg.DuplicateKeys != nil && !set["duplicates"] {
		o.duplicates = *cfg.DuplicateKeys
	}
	if cfg.Language != nil && !set["lang"] {
		o.lang = *cfg.Language
	}
	if cfg.ASCII != nil && !set["ascii"] {
		o.ascii = *cfg.ASCII
	}
	if o.lang != "" {
		i18n.SetLanguage(o.lang)
	}
	return nil
}

// loadConfig reads path, or defaultConfigFile when path is empty. A missing
// default file is not an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (o *options) parseOpt() (jsonkit.ParseOpt, error) {
	dup, ok := jsonkit.ParseDuplicatePolicy(o.duplicates)
	if !ok {
		return jsonkit.ParseOpt{}, fmt.Errorf("unknown duplicate key policy %q", o.duplicates)
	}
	return jsonkit.ParseOpt{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes, OnDuplicateKey: dup}, nil
}

func (o *options) formatOptions() (jsonkit.FormatOptions, error) {
	if o.indent < 0 {
		return jsonkit.FormatOptions{}, fmt.Errorf("negative indent %d", o.indent)
	}
	var c byte
	switch o.indentChar {
	case "", "space":
		c = ' '
	case "tab":
		c = '\t'
	default:
		if len(o.indentChar) != 1 {
			return jsonkit.FormatOptions{}, fmt.Errorf("indent character must be a single byte, got %q", o.indentChar)
		}
		c = o.indentChar[0]
	}
	return jsonkit.FormatOptions{IndentChar: c, IndentSize: o.indent}, nil
}
