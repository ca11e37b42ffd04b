package main

import (
	"fmt"

	"github.com/spf13/cobra"

	wikitext "github.com/growler/go-wikitext"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize a document's structure and diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, exceptions, err := parseArgs(args)
		if err != nil {
			return err
		}
		var (
			containers map[wikitext.ContainerType]int = make(map[wikitext.ContainerType]int)
			footnotes  int
			textBytes  int
		)
		wikitext.QueryList(tree.Elements, func(e wikitext.Element) wikitext.WalkResult {
			switch e := e.(type) {
			case *wikitext.Container:
				containers[e.Type]++
			case *wikitext.Footnote:
				footnotes++
			case *wikitext.Text:
				textBytes += len(e.Text)
			}
			return wikitext.WalkContinue
		})
		fmt.Printf("paragraph-safe: %v\n", tree.ParagraphSafe)
		fmt.Printf("text bytes:     %d\n", textBytes)
		fmt.Printf("footnote refs:  %d\n", footnotes)
		fmt.Printf("headings:       %d\n", len(tree.Headings))
		for typ, n := range containers {
			fmt.Printf("container %-14s %d\n", string(typ)+":", n)
		}
		if len(exceptions) > 0 {
			fmt.Printf("exceptions:     %d\n", len(exceptions))
			for _, exc := range exceptions {
				fmt.Printf("  - %s\n", exc)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
