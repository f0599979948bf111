package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsonkit "github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/internal/logger"
	"github.com/reoring/jsonkit/schema"
	"github.com/reoring/jsonkit/utf8codec"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	switch args[0] {
	case "validate":
		return c.validateCmd(args[1:])
	case "format":
		return c.formatCmd(args[1:], true)
	case "minimize":
		return c.formatCmd(args[1:], false)
	case "schema":
		return c.schemaCmd(args[1:])
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "jsonkit CLI\n\nUsage:\n  jsonkit validate [flags] [file...]\n  jsonkit format [-indent N] [-indent-char space|tab] [flags] [file]\n  jsonkit minimize [flags] [file]\n  jsonkit schema -schema schema.json|schema.yaml [flags] [file...]\n\nFiles default to stdin. Settings are read from "+defaultConfigFile+" when present; flags override it.")
}

type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	opt            options
	log            *slog.Logger
}

// setup parses flags, builds the logger and merges the config file. It returns
// the positional arguments.
func (c *cli) setup(flags *flag.FlagSet, args []string) ([]string, bool) {
	flags.SetOutput(c.stderr)
	if err := flags.Parse(args); err != nil {
		return nil, false
	}
	c.log = slog.New(logger.New(c.stderr, &logger.Options{Level: level(c.opt.verbose), Colorize: c.opt.color}))
	if err := c.opt.resolve(flags); err != nil {
		c.log.Error("configuration", "err", err)
		return nil, false
	}
	c.log.Debug("options", "duplicates", c.opt.duplicates, "max_depth", c.opt.maxDepth, "max_bytes", c.opt.maxBytes)
	return flags.Args(), true
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (c *cli) validateCmd(args []string) int {
	flags := flag.NewFlagSet("validate", flag.ContinueOnError)
	c.opt.register(flags, false)
	files, ok := c.setup(flags, args)
	if !ok {
		return exitUsage
	}
	popt, err := c.opt.parseOpt()
	if err != nil {
		c.log.Error("validate", "err", err)
		return exitUsage
	}
	code := exitOK
	c.eachInput(files, func(name string, r io.Reader) {
		if err := jsonkit.ValidateReader(r, popt); err != nil {
			c.log.Error("invalid", "file", name, "err", err)
			code = exitInvalid
			return
		}
		c.log.Debug("valid", "file", name)
	}, &code)
	return code
}

func (c *cli) formatCmd(args []string, pretty bool) int {
	name := "minimize"
	if pretty {
		name = "format"
	}
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	c.opt.register(flags, pretty)
	files, ok := c.setup(flags, args)
	if !ok {
		return exitUsage
	}
	if len(files) > 1 {
		c.log.Error(name+" takes at most one input", "args", len(files))
		return exitUsage
	}
	popt, err := c.opt.parseOpt()
	if err != nil {
		c.log.Error(name, "err", err)
		return exitUsage
	}
	fopt := jsonkit.Compact
	if pretty {
		if fopt, err = c.opt.formatOptions(); err != nil {
			c.log.Error(name, "err", err)
			return exitUsage
		}
	}
	code := exitOK
	c.eachInput(files, func(file string, r io.Reader) {
		v, err := jsonkit.ParseReader(r, popt)
		if err != nil {
			c.log.Error("parse", "file", file, "err", err)
			code = exitInvalid
			return
		}
		out, err := jsonkit.Build(v, fopt)
		if err != nil {
			c.log.Error("build", "file", file, "err", err)
			code = exitInvalid
			return
		}
		c.write(out)
	}, &code)
	return code
}

func (c *cli) schemaCmd(args []string) int {
	flags := flag.NewFlagSet("schema", flag.ContinueOnError)
	var schemaPath string
	flags.StringVar(&schemaPath, "schema", "", "schema file (.json, .yaml or .yml)")
	c.opt.register(flags, false)
	files, ok := c.setup(flags, args)
	if !ok {
		return exitUsage
	}
	if schemaPath == "" {
		flags.Usage()
		return exitUsage
	}
	def, err := compileSchemaFile(schemaPath)
	if err != nil {
		c.log.Error("compile schema", "file", schemaPath, "err", err)
		return exitInvalid
	}
	if ig := def.IgnoredKeywords(); len(ig) > 0 {
		c.log.Warn("ignored schema keywords", "keywords", strings.Join(ig, ","))
	}
	popt, err := c.opt.parseOpt()
	if err != nil {
		c.log.Error("schema", "err", err)
		return exitUsage
	}
	code := exitOK
	c.eachInput(files, func(file string, r io.Reader) {
		v, err := jsonkit.ParseReader(r, popt)
		if err == nil {
			err = def.Validate(v)
		}
		if err != nil {
			c.log.Error("rejected", "file", file, "err", err)
			code = exitInvalid
			return
		}
		c.log.Debug("accepted", "file", file)
	}, &code)
	return code
}

func compileSchemaFile(path string) (*schema.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.CompileYAML(data)
	}
	return schema.Compile(string(data))
}

// eachInput calls fn with a reader for every named file, or for stdin when
// files is empty. Files that cannot be opened set *code to exitInvalid.
func (c *cli) eachInput(files []string, fn func(name string, r io.Reader), code *int) {
	if len(files) == 0 {
		fn("-", c.stdin)
		return
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			var pe *os.PathError
			if errors.As(err, &pe) {
				err = pe.Err
			}
			c.log.Error("read", "file", name, "err", err)
			*code = exitInvalid
			continue
		}
		c.consume(name, f, fn)
	}
}

func (c *cli) consume(name string, f *os.File, fn func(name string, r io.Reader)) {
	defer func() {
		if err := f.Close(); err != nil {
			c.log.Warn("close", "file", name, "err", err)
		}
	}()
	fn(name, f)
}

func (c *cli) write(s string) {
	if c.opt.ascii {
		s = utf8codec.ToASCIIString(s, '?')
	}
	fmt.Fprintln(c.stdout, s)
}
