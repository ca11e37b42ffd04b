package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wikitext "github.com/growler/go-wikitext"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a wikitext document to HTML",
	Long: `Render parses the document and writes the resulting HTML to stdout.
Non-fatal parse diagnostics go to stderr as warnings; the document still
renders. Fatal conditions (such as exceeding the nesting limit) abort
with a non-zero exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOptions()
		if err != nil {
			return err
		}
		tree, exceptions, err := parseArgs(args)
		if err != nil {
			return err
		}
		reportExceptions(exceptions)
		out := wikitext.Render(tree, opts)
		fmt.Print(out.HTML)
		if check, _ := cmd.Flags().GetBool("check-footnotes"); check {
			if len(out.Footnotes) > 0 && !hasFootnoteList(tree) {
				fmt.Fprintf(os.Stderr, "warning: %d footnote(s) gathered but no [[footnotes]] block; bodies were dropped\n", len(out.Footnotes))
			}
		}
		return nil
	},
}

func hasFootnoteList(tree *wikitext.Tree) bool {
	found := false
	wikitext.QueryList(tree.Elements, func(*wikitext.FootnoteBlock) wikitext.WalkResult {
		found = true
		return wikitext.WalkStop
	})
	return found
}

func init() {
	renderCmd.Flags().Bool("check-footnotes", false, "warn when footnotes are gathered but never listed")
	rootCmd.AddCommand(renderCmd)
}
