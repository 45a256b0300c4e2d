package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration for 'circus complex'",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

const starterConfig = `# circus complex configuration
input: data.csv        # CSV/TSV with one SMILES column per structural role
output: descriptors.csv
separator: ","
id_column: ""          # optional; row numbers are used when empty
row_policy: skip       # skip unparsable rows, or "fail" to abort the batch

columns:
  - column: SMILES     # structural column name in the input header
    lower: 0           # inclusive radius bounds, in bond hops
    upper: 2
    on_bond: false     # root fragments on bonds instead of atoms
    workers: 1
`

func runInit(cmd *cobra.Command, args []string) error {
	path := "circus.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		exitWithError(ExitError, "%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		exitWithError(ExitError, "writing %s: %v", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
