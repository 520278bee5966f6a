package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"htmlit/internal/diag"
	"htmlit/internal/diagfmt"
	"htmlit/internal/driver"
	"htmlit/internal/project"
	"htmlit/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Validate HTML markup inside tagged template literals",
	Long:  `Check JavaScript/TypeScript sources for malformed HTML inside html-tagged template literals (unmatched, mismatched and unclosed tags)`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

// init registers CLI flags for the check command used by runCheck.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "disable the persistent diagnostics cache")
	checkCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runCheck executes the "check" command: it loads the project configuration,
// runs the literal checker over the provided path (single file or directory),
// prints diagnostics in the chosen format and exits with a non-zero status
// when any diagnostics contain errors.
func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	st, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	// единственный каталог даёт базу для относительных путей
	singleDir := len(args) == 1 && st.IsDir()

	configDir := args[0]
	if !st.IsDir() {
		configDir = filepath.Dir(args[0])
	}
	cfg, _, err := project.LoadFromDir(configDir)
	if err != nil {
		return err
	}
	// флаг перекрывает манифест только если задан явно
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.Check.MaxDiagnostics = maxDiagnostics
	}

	opts := driver.CheckOptions{Config: cfg, Jobs: jobs}
	if cfg.Check.Cache && !noCache {
		// недоступный кэш не мешает проверке
		if cache, cacheErr := driver.OpenDiskCache("htmlit"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	var files []string
	for _, arg := range args {
		info, statErr := os.Stat(arg)
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		if info.IsDir() {
			dirFiles, listErr := driver.ListSourceFiles(arg)
			if listErr != nil {
				return listErr
			}
			files = append(files, dirFiles...)
		} else {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "no supported source files found")
		}
		return nil
	}

	useTUI := shouldUseTUI(mode) && format == "pretty" && !quiet

	var (
		fileSet *source.FileSet
		results []driver.CheckResult
	)
	run := func(sink driver.ProgressSink) (*source.FileSet, []driver.CheckResult, error) {
		runOpts := opts
		runOpts.Progress = sink
		if singleDir {
			return driver.CheckDir(cmd.Context(), args[0], runOpts)
		}
		return driver.CheckFiles(cmd.Context(), files, runOpts)
	}
	if useTUI {
		fileSet, results, err = runCheckWithUI("checking "+args[0], files, run)
	} else {
		fileSet, results, err = run(nil)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	useColor, err := useColorOutput(cmd)
	if err != nil {
		return err
	}
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	exitCode := 0
	for _, r := range results {
		if r.Bag == nil {
			continue
		}
		// детерминированный порядок и отсутствие дублей перед выводом
		r.Bag.Sort()
		r.Bag.Dedup()
		if r.Bag.HasErrors() {
			exitCode = 1
		}
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  pathMode,
			ShowNotes: withNotes,
			Max:       cfg.Check.MaxDiagnostics,
		}
		printed := 0
		for _, r := range results {
			if r.Bag == nil || r.Bag.Len() == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(os.Stdout)
			}
			printed++
			diagfmt.Pretty(os.Stdout, r.Bag, fileSet, prettyOpts)
		}
		if !quiet {
			printCheckSummary(os.Stdout, results)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              cfg.Check.MaxDiagnostics,
			IncludeNotes:     withNotes,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			displayPath := r.Path
			if r.Loaded {
				file := fileSet.Get(r.FileID)
				displayMode := "auto"
				if fullPath {
					displayMode = "absolute"
				}
				displayPath = file.FormatPath(displayMode, fileSet.BaseDir())
			}
			output[displayPath] = diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}

	if exitCode != 0 {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// printCheckSummary печатает короткий итог по файлам и диагностикам.
func printCheckSummary(w *os.File, results []driver.CheckResult) {
	var errors, warnings, cached int
	for _, r := range results {
		if r.FromCache {
			cached++
		}
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			}
		}
	}
	fmt.Fprintf(w, "checked %d file(s)", len(results))
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	fmt.Fprintf(w, ": %d error(s), %d warning(s)\n", errors, warnings)
}
