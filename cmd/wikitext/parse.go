package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print a document's element tree as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, exceptions, err := parseArgs(args)
		if err != nil {
			return err
		}
		reportExceptions(exceptions)
		w := bufio.NewWriter(os.Stdout)
		if err := tree.WriteJSON(w); err != nil {
			return fmt.Errorf("writing tree: %w", err)
		}
		fmt.Fprintln(w)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
