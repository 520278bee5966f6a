package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"htmlit/internal/diagfmt"
	"htmlit/internal/engine"
	"htmlit/internal/project"
	"htmlit/internal/source"
)

var literalsCmd = &cobra.Command{
	Use:   "literals [flags] <file>",
	Short: "List html-tagged template literals found in a file",
	Long:  `List every confirmed tagged template literal in a source file, including literals nested inside interpolations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLiterals,
}

func init() {
	literalsCmd.Flags().Bool("json", false, "emit literals as JSON")
	literalsCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runLiterals(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	cfg, _, err := project.LoadFromDir(filepath.Dir(filePath))
	if err != nil {
		return err
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(fileID)

	eng := engine.New(engine.Options{
		Leaders:            cfg.Literals.Leaders,
		PlaceholderElement: cfg.Literals.PlaceholderElement,
		MaxPasses:          cfg.Literals.MaxCollapsePasses,
	})
	lits := eng.Literals(cmd.Context(), file)

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if asJSON {
		jsonOpts := diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode}
		return diagfmt.LiteralsJSON(os.Stdout, fileSet, fileID, lits, jsonOpts)
	}

	for _, lit := range lits {
		start := file.LineForOffset(uint32(lit.Span.Start)) + 1
		end := file.LineForOffset(uint32(lit.Span.End)) + 1
		fmt.Fprintf(os.Stdout, "%d:%d-%d:%d (%d bytes)\n",
			start, lit.Span.Start, end, lit.Span.End, len(lit.Content))
	}
	return nil
}
