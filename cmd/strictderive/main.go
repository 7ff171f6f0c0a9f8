// Command strictderive derives strict-encoding codec plans from a
// declarative type definition file and hands them to code emitters as
// JSON or CBOR plan files.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/youkchan/strict-encoding-derive/internal/plan"
	"github.com/youkchan/strict-encoding-derive/internal/specfile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	switch os.Args[1] {
	case "check":
		return runCheck(os.Args[2:])
	case "derive":
		return runDerive(os.Args[2:])
	case "fingerprint":
		return runFingerprint(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: strictderive <subcommand> [flags] <definition-file>

Subcommands:
  check        Validate definitions and report derivation errors
  derive       Derive codec plans and write a plan file
  fingerprint  Print the stable digest of each derived plan

Run 'strictderive <subcommand> --help' for subcommand flags.
`)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// deriveAll loads the definition file and derives one plan per type,
// failing on the first configuration error.
func deriveAll(path string, logger zerolog.Logger) ([]plan.Plan, error) {
	specs, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	plans := make([]plan.Plan, 0, len(specs))
	for _, spec := range specs {
		p, err := plan.Derive(spec)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", spec.Name, err)
		}
		logger.Debug().
			Str("type", spec.Name).
			Str("kind", spec.Kind.String()).
			Msg("derived plan")
		plans = append(plans, p)
	}
	return plans, nil
}

func runCheck(args []string) error {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("check: exactly one definition file expected")
	}
	logger := newLogger(*verbose)

	plans, err := deriveAll(fs.Arg(0), logger)
	if err != nil {
		return err
	}
	for _, p := range plans {
		switch p := p.(type) {
		case *plan.StructPlan:
			logger.Info().Str("type", p.TypeName).Int("fields", len(p.Fields)).Msg("struct ok")
		case *plan.EnumPlan:
			logger.Info().
				Str("type", p.TypeName).
				Str("repr", p.Repr.String()).
				Int("variants", len(p.Variants)).
				Msg("enum ok")
		}
	}
	return nil
}

func runDerive(args []string) error {
	fs := pflag.NewFlagSet("derive", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	format := fs.String("format", "json", "plan file format: json or cbor")
	out := fs.StringP("out", "o", "", "output path (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("derive: exactly one definition file expected")
	}
	logger := newLogger(*verbose)

	plans, err := deriveAll(fs.Arg(0), logger)
	if err != nil {
		return err
	}
	file, err := plan.NewFile(plans)
	if err != nil {
		return err
	}

	sink := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		sink = f
	}

	switch *format {
	case "json":
		err = file.EncodeJSON(sink)
	case "cbor":
		err = file.EncodeCBOR(sink)
	default:
		return fmt.Errorf("derive: unknown format %q", *format)
	}
	if err != nil {
		return err
	}
	logger.Info().Int("plans", len(plans)).Str("format", *format).Msg("plan file written")
	return nil
}

func runFingerprint(args []string) error {
	fs := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("fingerprint: exactly one definition file expected")
	}
	logger := newLogger(*verbose)

	plans, err := deriveAll(fs.Arg(0), logger)
	if err != nil {
		return err
	}
	for _, p := range plans {
		digest := p.Digest()
		fmt.Printf("%s  %s\n", hex.EncodeToString(digest[:]), p.Name())
	}
	return nil
}
