// cmd/facadegen/main.go
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/sghaida/lazyfacade/internal/config"
	"github.com/sghaida/lazyfacade/internal/logging"
)

// Exit codes returned by run.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// errStale reports that -check found an out of date facade.
var errStale = errors.New("generated facade is out of date")

// options are the parsed command-line flags.
type options struct {
	tablePath string
	outPath   string
	check     bool
	stdout    bool
	verbose   bool
}

// run executes the generator and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithEnv(args, stdout, stderr, os.Getenv)
}

func runWithEnv(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cfg, err := config.LoadFrom(getenv)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "facadegen:", err)
		return exitUsage
	}

	flags := flag.NewFlagSet("facadegen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.tablePath, "table", "", "path to the export table (.yaml, .yml, .json, .hcl)")
	flags.StringVar(&opts.outPath, "out", "", "output .gen.go file path")
	flags.BoolVar(&opts.check, "check", cfg.Generate.Check, "fail if -out is not what would be generated; write nothing")
	flags.BoolVar(&opts.stdout, "stdout", false, "print the generated source instead of writing -out")
	flags.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	if strings.TrimSpace(opts.tablePath) == "" || strings.TrimSpace(opts.outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: facadegen -table <exports.yaml> -out <file.gen.go> [-check] [-stdout] [-v]")
		return exitUsage
	}
	if opts.check && opts.stdout {
		// FACADEGEN_CHECK only sets the default; an explicit -stdout wins over it.
		if !flagSet(flags, "check") {
			opts.check = false
		} else {
			_, _ = fmt.Fprintln(stderr, "facadegen: -check and -stdout are mutually exclusive")
			return exitUsage
		}
	}

	level := cfg.Logging.Level
	if opts.verbose {
		level = "debug"
	}
	log := logging.New(stderr, level, cfg.Logging.Format)

	if err := generate(opts, cfg.Generate, stdout, log); err != nil {
		if errors.Is(err, errStale) {
			return exitFail
		}
		log.Error("generation failed", "table", opts.tablePath, "error", err)
		return exitFail
	}
	return exitOK
}

// flagSet reports whether name was given on the command line.
func flagSet(flags *flag.FlagSet, name string) bool {
	set := false
	flags.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// generate loads, validates and renders the table, then writes, prints or
// checks the result according to opts.
func generate(opts options, gen config.GenerateConfig, stdout io.Writer, log *slog.Logger) error {
	tf, err := loadTableFile(opts.tablePath)
	if err != nil {
		return err
	}
	applyDefaults(tf)

	outPath := filepath.Clean(opts.outPath)
	if strings.TrimSpace(tf.ImportPath) == "" {
		importPath, err := inferImportPath(outPath)
		if err != nil {
			return fmt.Errorf("infer import path (set importPath in the table): %w", err)
		}
		tf.ImportPath = importPath
		log.Debug("inferred import path", "path", importPath)
	}

	if err := validate(tf); err != nil {
		return fmt.Errorf("invalid export table %s: %w", opts.tablePath, err)
	}
	log.Debug("export table ok",
		"package", tf.Package,
		"modules", len(tf.Modules),
		"symbols", len(tf.table().Symbols()),
	)

	src, err := render(tf, renderOptions{
		Source:  filepath.Base(opts.tablePath),
		File:    filepath.Base(outPath),
		Runtime: gen.Runtime,
	})
	if err != nil {
		return err
	}

	switch {
	case opts.stdout:
		_, err := stdout.Write(src)
		return err

	case opts.check:
		existing, err := os.ReadFile(outPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Error("generated facade is missing", "out", outPath)
				return errStale
			}
			return err
		}
		if !bytes.Equal(existing, src) {
			log.Error("generated facade is stale; rerun go generate", "out", outPath,
				"diff", cmp.Diff(string(existing), string(src)))
			return errStale
		}
		log.Info("generated facade is up to date", "out", outPath)
		return nil

	default:
		if err := writeFileAtomic(outPath, src, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		log.Info("wrote facade", "out", outPath, "exports", len(tf.table().PublicNames()))
		return nil
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
