package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"htmlit/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize an htmlit project",
	Long: `Initialize an htmlit project by creating a project manifest (htmlit.toml)
with the default checker configuration. If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes an htmlit project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// an htmlit.toml manifest.
//
// It resolves the target path, creates the directory if it does not exist,
// and refuses to initialize if htmlit.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest()), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized htmlit project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - %s\n", project.ManifestName)
	return nil
}

// defaultManifest returns the TOML manifest written by `htmlit init`,
// spelling out the defaults so they are easy to tweak.
func defaultManifest() string {
	cfg := project.Default()
	leaders := make([]string, 0, len(cfg.Literals.Leaders))
	for _, leader := range cfg.Literals.Leaders {
		leaders = append(leaders, fmt.Sprintf("%q", leader))
	}
	return fmt.Sprintf(`# htmlit project manifest
[literals]
leaders = [%s]
placeholder_element = %q
max_collapse_passes = %d

[fold]
min_lines = %d

[check]
max_diagnostics = %d
cache = %t
`,
		strings.Join(leaders, ", "),
		cfg.Literals.PlaceholderElement,
		cfg.Literals.MaxCollapsePasses,
		cfg.Fold.MinLines,
		cfg.Check.MaxDiagnostics,
		cfg.Check.Cache,
	)
}
