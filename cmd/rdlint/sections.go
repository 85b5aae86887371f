package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rdlint/internal/diagfmt"
	"rdlint/internal/driver"
	"rdlint/internal/loader"
	"rdlint/internal/rules"
	"rdlint/internal/source"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file.rdoc>",
	Short: "Segment a documentation file and dump its section map",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	maxFindings, err := cmd.Root().PersistentFlags().GetInt("max-findings")
	if err != nil {
		return fmt.Errorf("failed to get max-findings flag: %w", err)
	}

	fileSet := source.NewFileSet()
	blocks, err := loader.LoadFile(fileSet, args[0])
	if err != nil {
		return err
	}

	// Сегментация без правил: все правила выключены.
	var noRules rules.Config

	for i, block := range blocks {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, "== %s ==\n", block.Method)
		res := driver.CheckBlock(fileSet, block, &noRules, maxFindings)
		diagfmt.Sections(os.Stdout, res.Sections, fileSet)
		if len(res.Entries) > 0 {
			fmt.Fprintf(os.Stdout, "call-seq entries: %d\n", len(res.Entries))
		}
		if err := diagfmt.Short(os.Stdout, res.Bag, fileSet, false); err != nil {
			return err
		}
	}
	return nil
}
