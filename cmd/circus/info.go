package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circus/vocabstore"
)

var infoDB string

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&infoDB, "db", "", "Vocabulary store path (default $CIRCUS_DB or ./circus.db)")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show version, runtime, and stored models",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Printf("circus %s\n", Version)
	fmt.Printf("go      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	path := dbPath(infoDB)
	st, err := vocabstore.Open(path)
	if err != nil {
		fmt.Printf("store   %s (unavailable: %v)\n", path, err)
		return nil
	}
	defer st.Close()

	names, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("store   %s (%d models)\n", path, len(names))
	for _, n := range names {
		cfg, vocab, lErr := st.Load(cmd.Context(), n)
		if lErr != nil {
			fmt.Printf("  %-20s (unreadable: %v)\n", n, lErr)
			continue
		}
		root := "atoms"
		if cfg.OnBond {
			root = "bonds"
		}
		fmt.Printf("  %-20s radii %d..%d on %s, %d keys\n", n, cfg.Lower, cfg.Upper, root, vocab.Len())
	}
	return nil
}
