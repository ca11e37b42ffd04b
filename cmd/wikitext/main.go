// Command wikitext compiles wikitext documents to HTML from the command
// line. Configuration follows the usual precedence: flags, then
// WIKITEXT_* environment variables, then the .wikitext.yml config file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
