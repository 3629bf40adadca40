package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go-match/internal/layout"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Options is the resolved runtime configuration.
type Options struct {
	Viewport    layout.Viewport
	SymbolPaths []string
	ClickURL    string
	Seed        int64
	LogFile     string
	LogLevel    zerolog.Level
}

// SizeFlag parses a viewport descriptor such as "300x250" or "300,600".
type SizeFlag layout.Viewport

func (s *SizeFlag) String() string {
	return layout.Viewport(*s).String()
}

func (s *SizeFlag) Set(v string) error {
	parts := strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
		return r == 'x' || r == ','
	})
	if len(parts) != 2 {
		return fmt.Errorf("invalid size format: %s (use 'WIDTHxHEIGHT')", v)
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || w < 0 || h < 0 {
		return fmt.Errorf("invalid size format: %s (use 'WIDTHxHEIGHT')", v)
	}
	*s = SizeFlag{Width: w, Height: h}
	return nil
}

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Getenv looks up environment variables; os.Getenv in production.
type Getenv func(string) string

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Load resolves options from environment defaults and command line args.
// Flags win over environment values.
func Load(args []string, getenv Getenv, usage io.Writer) (Options, error) {
	opts := Options{
		Viewport: layout.DefaultViewport(),
		ClickURL: getenv("CLICK_TAG"),
		LogFile:  getenv("MATCH_LOG"),
		LogLevel: zerolog.InfoLevel,
	}

	size := SizeFlag(opts.Viewport)
	if v := getenv("MATCH_SIZE"); v != "" {
		if err := size.Set(v); err != nil {
			return opts, fmt.Errorf("MATCH_SIZE: %w", err)
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			return opts, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		opts.LogLevel = lvl
	}

	var symbols listFlag
	fs := flag.NewFlagSet("go-match", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Var(&size, "size", "Ad unit size as WIDTHxHEIGHT (e.g. 300x600)")
	fs.Var(&size, "s", "Ad unit size (shorthand)")
	fs.Var(&symbols, "symbols", "File or directory of tile symbols, one per line (repeatable)")
	fs.StringVar(&opts.ClickURL, "click-url", opts.ClickURL, "Click-through URL reported on exit")
	fs.Int64Var(&opts.Seed, "seed", 0, "Shuffle seed (0 = random)")
	fs.StringVar(&opts.LogFile, "log", opts.LogFile, "Write JSON logs to this file")

	fs.Usage = func() {
		fmt.Fprintf(usage, "Usage: go-match [options]\n")
		fmt.Fprintf(usage, "\nOptions:\n")
		fmt.Fprintf(usage, "   -s, --size=WxH          Ad unit size (default 300x250)\n")
		fmt.Fprintf(usage, "       --symbols=PATH      Tile symbols file or directory (repeatable)\n")
		fmt.Fprintf(usage, "       --click-url=URL     Click-through URL (env CLICK_TAG)\n")
		fmt.Fprintf(usage, "       --seed=N            Shuffle seed\n")
		fmt.Fprintf(usage, "       --log=FILE          JSON log file (env MATCH_LOG)\n")
		fmt.Fprintf(usage, "    -h, --help             Show this help message\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.Viewport = layout.Viewport(size)
	opts.SymbolPaths = symbols
	return opts, nil
}
