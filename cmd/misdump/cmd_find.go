// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/mission/lexer"
	"gitlab.com/fisherprime/mission/loader"
	"gitlab.com/fisherprime/mission/types"
)

func newFindCmd(opts *rootOptions) *cobra.Command {
	var (
		fields    []string
		inherited bool
	)

	cmd := &cobra.Command{
		Use:   "find <name> <file>...",
		Short: "Print the element with an object name",
		Long: `Print the element with an object name, searching every file.

Fields requested with --field & those printed with --inherited are resolved through the
element's inheritance chain.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, paths := args[0], args[1:]

			l, err := opts.newLoader()
			if err != nil {
				return err
			}
			defer l.Release()

			docs, err := l.LoadAll(cmd.Context(), paths...)
			if err != nil {
				return err
			}
			elements := loader.Elements(docs)

			e, err := elements.Locate(cmd.Context(), name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if inherited {
				merged, err := elements.Inherited(cmd.Context(), e)
				if err != nil {
					return err
				}
				for _, key := range merged.Keys() {
					fmt.Fprintf(out, "%s = %s\n", key, merged[key].Text())
				}

				return nil
			}

			if len(fields) < 1 {
				cfg := &lexer.Config{Delimiter: l.Config().Delimiter, Logger: l.Config().Logger}
				output, err := e.Serialize(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(out, output)

				return nil
			}

			var requested types.StringSlice
			requested.UniqueAppend(fields...)
			for _, field := range requested {
				val, err := elements.Resolve(cmd.Context(), e, field)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s = %s\n", field, val.Text())
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "field", nil, "resolve & print a field instead of the element")
	cmd.Flags().BoolVar(&inherited, "inherited", false, "print every field including inherited ones")

	return cmd
}
