// glint is a workbench for the glint bridge: an interactive console over a
// demo wrapper class, plus schema inspection commands.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "glint",
		Short: "Workbench for the glint native bridge",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(newConsoleCommand())
	root.AddCommand(newSchemaCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
