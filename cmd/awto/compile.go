package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/syssam/awto/compiler"
	"github.com/syssam/awto/compiler/gen"
	"github.com/syssam/awto/internal/build"
	"github.com/syssam/awto/internal/config"
	"github.com/syssam/awto/internal/watch"
	"github.com/syssam/awto/internal/workspace"
)

func newCompileCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile generated packages",
	}
	cmd.AddCommand(newCompileDatabaseCmd(opts))
	return cmd
}

func newCompileDatabaseCmd(opts *options) *cobra.Command {
	var verbose, watching bool
	cmd := &cobra.Command{
		Use:   "database",
		Short: "Compile the schema package into the database package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), verbose)
			db := newDatabase(opts.root, cfg, logger, cmd.ErrOrStderr())
			if err := db.Run(cmd.Context()); err != nil {
				if !watching {
					return err
				}
				logger.Error("compilation failed", "err", err)
			}
			if !watching {
				return nil
			}
			return watchSchema(cmd.Context(), db, cfg, logger)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&watching, "watch", false, "re-compile when the schema package changes")
	return cmd
}

func newDatabase(root string, cfg *config.Config, logger *log.Logger, stderr io.Writer) *compiler.Database {
	genOpts := []gen.Option{gen.WithORMPackage(cfg.Output.ORMPackage)}
	if cfg.Output.Module != "" {
		genOpts = append(genOpts, gen.WithModule(cfg.Output.Module))
	}
	builder := build.New(root, cfg.Output.Root).
		WithCommand(cfg.Build.Command).
		WithOutput(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.DebugLevel}).Writer(), stderr)
	return compiler.NewDatabase(
		compiler.WithRoot(root),
		compiler.WithSchema(cfg.Schema.Dir, cfg.Schema.Entry),
		compiler.WithSchemaName(cfg.Schema.Name),
		compiler.WithOutput(cfg.Output.Root, cfg.Output.Package),
		compiler.WithGenOptions(genOpts...),
		compiler.WithRegistrar(workspace.New(root).WithGoVersion(cfg.Workspace.GoVersion)),
		compiler.WithBuilder(builder),
		compiler.WithLogger(logger),
	)
}

func watchSchema(ctx context.Context, db *compiler.Database, cfg *config.Config, logger *log.Logger) error {
	debounce, err := cfg.WatchDebounce()
	if err != nil {
		return err
	}
	w, err := watch.New(db.SchemaDir(), func(ctx context.Context, changed []string) error {
		logger.Info("schema changed", "files", changed)
		if err := db.Run(ctx); err != nil {
			return fmt.Errorf("compile %s: %w", db.Package(), err)
		}
		return nil
	}, watch.WithDebounce(debounce), watch.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("watching schema package", "dir", db.SchemaDir())
	return w.Run(ctx)
}
