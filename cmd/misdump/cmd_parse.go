// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/mission"
	"gitlab.com/fisherprime/mission/lexer"
	"gitlab.com/fisherprime/mission/loader"
)

type (
	// dumpEntry is the spew view of an element, omitting the tree links.
	dumpEntry struct {
		Tag      string
		Name     string
		Inherits string
		Depth    int
		Fields   map[string]any
	}
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	var parseFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse mission files & print them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.newLoader()
			if err != nil {
				return err
			}
			defer l.Release()

			docs, loadErr := l.LoadAll(cmd.Context(), args...)
			if docs == nil {
				return loadErr
			}

			out := cmd.OutOrStdout()
			for _, doc := range docs {
				if doc == nil {
					continue
				}

				switch parseFormat {
				case "mission":
					cfg := &lexer.Config{Delimiter: l.Config().Delimiter, Logger: l.Config().Logger}
					output, err := doc.Elements.Serialize(cmd.Context(), cfg)
					if err != nil {
						return fmt.Errorf("serialize %s: %w", doc.Path, err)
					}
					fmt.Fprintf(out, "// %s\n%s", doc.Path, output)
				case "spew":
					fmt.Fprintf(out, "// %s\n", doc.Path)
					dumpElements(out, doc.Elements)
				case "summary":
					summarize(out, doc)
				default:
					return fmt.Errorf("unknown format: %s (expected mission, spew, or summary)", parseFormat)
				}
			}

			return loadErr
		},
	}

	cmd.Flags().StringVarP(&parseFormat, "format", "f", "summary", "output format (mission, spew, summary)")

	return cmd
}

func dumpElements(out io.Writer, elements mission.List) {
	elements.Visit(func(e *mission.Element) bool {
		dumpConfig.Fdump(out, dumpEntry{
			Tag:      e.Tag(),
			Name:     e.Name(),
			Inherits: e.Inherits(),
			Depth:    e.Depth(),
			Fields:   e.Fields().Interface(),
		})
		return true
	})
}

func summarize(out io.Writer, doc *loader.Document) {
	fmt.Fprintf(out, "%s (%s): %d elements\n", doc.Path, doc.ID, doc.Elements.Count())

	for _, tag := range doc.Elements.Tags() {
		fmt.Fprintf(out, "  %-24s %d\n", tag, len(doc.Elements.FilterByTag(tag)))
	}
}
