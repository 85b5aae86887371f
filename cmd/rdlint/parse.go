package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rdlint/internal/diagfmt"
	"rdlint/internal/driver"
	"rdlint/internal/loader"
	"rdlint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.rdoc>",
	Short: "Parse a documentation file and dump its markup tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("spans", false, "annotate nodes with line/column spans")
	parseCmd.Flags().Bool("inlines", false, "include inline elements (mono spans, cross-references)")
}

func runParse(cmd *cobra.Command, args []string) error {
	showSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	showInlines, err := cmd.Flags().GetBool("inlines")
	if err != nil {
		return fmt.Errorf("failed to get inlines flag: %w", err)
	}
	maxFindings, err := cmd.Root().PersistentFlags().GetInt("max-findings")
	if err != nil {
		return fmt.Errorf("failed to get max-findings flag: %w", err)
	}

	fileSet := source.NewFileSet()
	blocks, err := loader.LoadFile(fileSet, args[0])
	if err != nil {
		return err
	}

	treeOpts := diagfmt.TreeOpts{ShowSpans: showSpans, ShowInlines: showInlines}
	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, "== %s ==\n", block.Method)
		doc, bag := driver.ParseBlock(fileSet, block, maxFindings)
		diagfmt.Tree(os.Stdout, doc, fileSet, treeOpts)
		if err := diagfmt.Short(os.Stdout, bag, fileSet, false); err != nil {
			return err
		}
	}
	return nil
}
