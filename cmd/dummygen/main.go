package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"dummygen/internal/cli"
	"dummygen/internal/platform/logger"
)

func main() {
	var (
		opts    cli.Options
		seed    int64
		outPath string
		verbose bool
	)
	flag.StringVar(&opts.SchemaFile, "schema", "", "JSON schema file (- for stdin)")
	flag.StringVar(&opts.FieldsFile, "fields", "", "extra field definitions (YAML or JSON)")
	flag.IntVar(&opts.Count, "count", 10, "number of records")
	flag.IntVar(&opts.MaxRecords, "max", 1000, "largest accepted count")
	flag.Int64Var(&seed, "seed", 0, "seed for a reproducible batch")
	flag.BoolVar(&opts.Strict, "strict", false, "fail on constraints that cannot be applied")
	flag.StringVar(&opts.Format, "format", "json", "output format: json or csv")
	flag.BoolVar(&opts.Interactive, "i", false, "build the schema interactively")
	flag.StringVar(&outPath, "out", "", "write to this file instead of stdout")
	flag.BoolVar(&verbose, "v", false, "log to stderr")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.Seed = &seed
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, outPath, verbose); err != nil {
		if errors.Is(err, cli.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "dummygen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts cli.Options, outPath string, verbose bool) (err error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	env := cli.Env{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Prompter: cli.NewSurveyPrompter(),
		Logger:   logger.NewWithWriter(os.Stderr, level),
	}
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		env.Stdout = f
	}
	return cli.Run(ctx, opts, env)
}
