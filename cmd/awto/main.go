// awto compiles the schema package of a project into its database package.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/syssam/awto"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(awto.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
