// Package main provides an offline command that generates one character and
// prints it as JSON or YAML.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/swn-chargen/internal/config"
	"github.com/cory-johannsen/swn-chargen/internal/game/character"
	"github.com/cory-johannsen/swn-chargen/internal/game/dice"
	"github.com/cory-johannsen/swn-chargen/internal/game/ruleset"
	"github.com/cory-johannsen/swn-chargen/internal/observability"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "chargen: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	seed     int64
	name     string
	boost    string
	in       string
	format   string
	roll     bool
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("chargen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Int64Var(&opts.seed, "seed", 0, "seed for reproducible rolls; 0 = cryptographic randomness")
	fs.StringVar(&opts.name, "name", "", "character name")
	fs.StringVar(&opts.boost, "boost", "", "attribute to set to 14, e.g. strength")
	fs.StringVar(&opts.in, "in", "", "JSON character file to start from")
	fs.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	fs.BoolVar(&opts.roll, "roll", true, "roll all six attributes")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level for roll audit output on stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.format != "json" && opts.format != "yaml" {
		return options{}, fmt.Errorf("-format must be json or yaml, got %q", opts.format)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(config.LoggingConfig{Level: opts.logLevel, Format: "console"}, "chargen")
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	src := dice.NewCryptoSource()
	if opts.seed != 0 {
		src = dice.NewSeededSource(opts.seed)
	}
	rules := ruleset.NewRuleTable(dice.NewLoggedRoller(src, logger.Named("dice")))

	c, err := load(rules, opts.in)
	if err != nil {
		return err
	}
	if opts.roll {
		c.RollAllAttributes()
	}
	if opts.boost != "" {
		attr, err := character.LookupAttribute(opts.boost)
		if err != nil {
			return err
		}
		if err := c.OverrideOneAttribute(attr); err != nil {
			return err
		}
	}
	if opts.name != "" {
		if err := c.SetDetail(character.DetailName, opts.name); err != nil {
			return err
		}
	}
	logger.Debug("character generated", zap.String("name", c.Name()), zap.Stringer("boosted", c.Overridden()))

	out, err := render(c.Serialize(), opts.format)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func load(rules character.Rules, path string) (*character.Character, error) {
	if path == "" {
		return character.New(rules), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := character.ParseWire(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return character.FromWire(rules, data)
}

func render(w character.Wire, format string) ([]byte, error) {
	if format == "yaml" {
		out, err := yaml.Marshal(map[string]any(w))
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return out, nil
	}
	out, err := w.MarshalPretty()
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(out, '\n'), nil
}
