package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/syssam/awto"
	"github.com/syssam/awto/internal/config"
)

// options are the global flags.
type options struct {
	root    string
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   awto.Name,
		Short: "Compile schema packages into generated Go packages",
		Long: titleStyle.Render(awto.Name) + subtitleStyle.Render(" - schema package compiler") + `

awto reads the models registered in schema/schema.go, writes the
database package under awto/database, adds it to go.work and builds it.

` + subtitleStyle.Render("Examples:") + `
  awto compile database          Compile the database package
  awto compile database --watch  Re-compile on schema changes
  awto config show               Show the effective configuration`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.root, "root", ".", "project root directory")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is <root>/awto.toml)")

	cmd.AddCommand(newCompileCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newGenerateCmd())
	return cmd
}

func (o *options) load() (*config.Config, error) {
	return config.Load(o.root, o.cfgFile)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: awto.Name})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
