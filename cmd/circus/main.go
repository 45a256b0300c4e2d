// Package main provides the circus CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "circus",
	Short: "Circular-substructure molecular descriptors",
	Long: `circus computes circular-substructure (CircuS) descriptors from SMILES.

Core features:
  - Fragment enumeration over a radius range, atom- or bond-rooted
  - Canonical fragment keys, stable feature columns across fit/transform
  - Multi-column composition with per-block provenance
  - Per-atom prediction attribution by perturb-and-rescore (ColorAtom)
  - SQLite persistence of fitted vocabularies

Input is CSV/TSV with a SMILES column; output is a dense descriptor table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(bootstrap)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// bootstrap loads .env (best effort) and wires the process logger before any
// command runs.
func bootstrap() {
	_ = godotenv.Load()
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// dbPath resolves the vocabulary store location: flag value first, then the
// CIRCUS_DB environment variable, then a file in the working directory.
func dbPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CIRCUS_DB"); env != "" {
		return env
	}
	return "circus.db"
}
