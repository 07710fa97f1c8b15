// Package cli generates batches from the command line, either from a schema
// document or from an interactive session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dummygen/internal/fields"
	"dummygen/internal/generator/format"
	"dummygen/internal/generator/models"
	"dummygen/internal/generator/service"
)

// Options control one invocation.
type Options struct {
	// SchemaFile is a JSON schema document. "-" reads it from stdin.
	SchemaFile  string
	// FieldsFile adds YAML or JSON field definitions to the built-in catalog.
	FieldsFile  string
	Count       int
	MaxRecords  int
	Seed        *int64
	Strict      bool
	Format      string
	Interactive bool
}

// Env bundles the streams and prompter Run talks to.
type Env struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Prompter Prompter
	Logger   *slog.Logger
}

// Run generates one batch and writes it to env.Stdout.
func Run(ctx context.Context, opts Options, env Env) error {
	if env.Logger == nil {
		env.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxRecords < 1 {
		opts.MaxRecords = 1000
	}

	registry, err := loadRegistry(opts.FieldsFile)
	if err != nil {
		return err
	}

	var (
		schema models.Schema
		count  = opts.Count
		out    format.Format
	)
	if opts.Interactive {
		if env.Prompter == nil {
			return errors.New("interactive mode needs a prompter")
		}
		plan, err := Interview(ctx, env.Prompter, registry, opts.MaxRecords)
		if err != nil {
			return err
		}
		schema, count, out = plan.Schema, plan.Count, plan.Format
	} else {
		if schema, err = readSchema(opts.SchemaFile, env.Stdin); err != nil {
			return err
		}
		if out, err = format.Parse(opts.Format); err != nil {
			return err
		}
		if count < 1 || count > opts.MaxRecords {
			return fmt.Errorf("count must be between 1 and %d", opts.MaxRecords)
		}
	}

	svc, err := service.New(registry,
		service.WithLogger(env.Logger),
		service.WithStrictConstraints(opts.Strict),
	)
	if err != nil {
		return err
	}
	res, err := svc.Generate(ctx, service.GenerateRequest{
		Schema: schema,
		Count:  count,
		Seed:   opts.Seed,
	})
	if err != nil {
		return err
	}
	if res.Fallbacks > 0 {
		env.Logger.WarnContext(ctx, "constraints ignored", "fallbacks", res.Fallbacks)
	}
	return format.Write(env.Stdout, out, res.Records)
}

func loadRegistry(path string) (*fields.Registry, error) {
	if path == "" {
		return fields.Default()
	}
	extra, err := fields.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return fields.Default(extra...)
}

func readSchema(path string, stdin io.Reader) (models.Schema, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return nil, errors.New("a schema file is required unless running interactively")
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return models.ParseSchema(data)
}
