package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/syssam/awto/compiler"
	"github.com/syssam/awto/compiler/gen"
	"github.com/syssam/awto/compiler/load"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run build steps of generated packages",
	}
	cmd.AddCommand(newGenerateBindingsCmd())
	return cmd
}

// newGenerateBindingsCmd is invoked by go generate inside a generated
// package and writes the model bindings into its source directory.
func newGenerateBindingsCmd() *cobra.Command {
	var schemaDir, entry, out, ormPkg string
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "Write the model bindings of a generated package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models, err := load.ExtractFile(filepath.Join(schemaDir, entry))
			if err != nil {
				return err
			}
			modules, err := gen.Modules(models)
			if err != nil {
				return err
			}
			if err := gen.WriteBindings(out, ormPkg, modules); err != nil {
				return err
			}
			newLogger(cmd.ErrOrStderr(), false).Debug("wrote bindings", "dir", out, "models", len(modules))
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaDir, "schema", compiler.DefaultSchemaDir, "schema package directory")
	cmd.Flags().StringVar(&entry, "entry", compiler.DefaultSchemaEntry, "schema entry file")
	cmd.Flags().StringVar(&out, "out", gen.DefaultSourceDir, "bindings directory")
	cmd.Flags().StringVar(&ormPkg, "orm", gen.DefaultORMPackage, "import path of the ORM runtime")
	return cmd
}
