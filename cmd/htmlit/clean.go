package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlit/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the persistent diagnostics cache",
	Long:  "Remove all cached check results from the per-user cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("htmlit")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove cache: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, "cache removed")
	return nil
}
