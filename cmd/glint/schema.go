package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/schema"
)

func newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect object schema files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <files...>",
		Short: "Validate schema files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				if _, err := schema.LoadFile(path); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failed = true
					continue
				}
				fmt.Printf("%s: ok\n", path)
			}
			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "print <file>",
		Short: "Print a schema's property layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("schema %s (%d properties)\n", s.Name, len(s.Properties))
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for i, p := range s.Properties {
				typ := p.Type
				if typ == "" {
					typ = "any"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, p.Name, typ)
			}
			return w.Flush()
		},
	})

	return cmd
}
