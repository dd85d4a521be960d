package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd regenerates the Markdown command reference. Hidden: it is for
// maintainers, not for analysis runs.
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Generate Markdown documentation for every command",
	Hidden: true,
	Run:    makeDocs,
}

// makeDocs writes one Markdown page per command into ./docs.
func makeDocs(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	if err := os.MkdirAll(out, 0755); err != nil {
		log.Fatalf("failed to create %s: %v", out, err)
	}
	if err := doc.GenMarkdownTree(rootCmd, out); err != nil {
		log.Fatalf("failed to generate docs: %v", err)
	}
}

// set flags
func init() {
	docsCmd.Flags().StringP("out", "o", "./docs", "directory for the generated pages")

	rootCmd.AddCommand(docsCmd)
}
