package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"htmlit/internal/diagfmt"
	"htmlit/internal/fold"
	"htmlit/internal/literal"
	"htmlit/internal/project"
	"htmlit/internal/source"
)

var foldsCmd = &cobra.Command{
	Use:   "folds [flags] <file>",
	Short: "List folding ranges for multiline template literals",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolds,
}

func init() {
	foldsCmd.Flags().Bool("json", false, "emit ranges as JSON")
	foldsCmd.Flags().Int("min-lines", 0, "minimum line span for a range (0=from manifest)")
	foldsCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runFolds(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	minLines, err := cmd.Flags().GetInt("min-lines")
	if err != nil {
		return fmt.Errorf("failed to get min-lines flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	cfg, _, err := project.LoadFromDir(filepath.Dir(filePath))
	if err != nil {
		return err
	}
	if minLines <= 0 {
		minLines = cfg.Fold.MinLines
	}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	file := fileSet.Get(fileID)

	resolver := fold.NewResolver(literal.NewMatcher(cfg.Literals.Leaders))
	resolver.SetMinLineSpan(minLines)
	ranges := resolver.Ranges(cmd.Context(), file)

	if asJSON {
		pathMode := diagfmt.PathModeAuto
		if fullPath {
			pathMode = diagfmt.PathModeAbsolute
		}
		return diagfmt.FoldsJSON(os.Stdout, fileSet, fileID, ranges, pathMode)
	}

	// строки в выводе 1-базные
	for _, r := range ranges {
		fmt.Fprintf(os.Stdout, "%d-%d\n", r.StartLine+1, r.EndLine+1)
	}
	return nil
}
