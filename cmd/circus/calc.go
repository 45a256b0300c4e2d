package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/chem"
	"github.com/katalvlaran/circus/smiles"
	"github.com/katalvlaran/circus/vocabstore"
)

var (
	calcInput     string
	calcOutput    string
	calcSmilesCol string
	calcIDCol     string
	calcLower     int
	calcUpper     int
	calcOnBond    bool
	calcWorkers   int
	calcSep       string
	calcSave      string
	calcDB        string
)

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "", "Input CSV/TSV file with a SMILES column (required)")
	calcCmd.Flags().StringVarP(&calcOutput, "output", "o", "", "Output CSV file for the descriptor table (required)")
	calcCmd.Flags().StringVar(&calcSmilesCol, "smiles-column", "SMILES", "Name of the SMILES column")
	calcCmd.Flags().StringVar(&calcIDCol, "id-column", "", "Optional ID column carried into the output")
	calcCmd.Flags().IntVar(&calcLower, "lower", 0, "Lower radius bound (bond hops)")
	calcCmd.Flags().IntVar(&calcUpper, "upper", 2, "Upper radius bound (bond hops)")
	calcCmd.Flags().BoolVar(&calcOnBond, "on-bond", false, "Root fragments on bonds instead of atoms")
	calcCmd.Flags().IntVar(&calcWorkers, "workers", 1, "Transform worker goroutines")
	calcCmd.Flags().StringVar(&calcSep, "separator", ",", "Field separator of the input file")
	calcCmd.Flags().StringVar(&calcSave, "save", "", "Persist the fitted vocabulary under this model name")
	calcCmd.Flags().StringVar(&calcDB, "db", "", "Vocabulary store path (default $CIRCUS_DB or ./circus.db)")
	calcCmd.MarkFlagRequired("input")
	calcCmd.MarkFlagRequired("output")
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Fit and compute CircuS descriptors for one SMILES column",
	Long: `Fit a descriptor generator on the input structures and write the dense
descriptor table. Rows whose SMILES fail to parse are skipped with a warning.

Example:
  circus calc -i train.csv -o train_desc.csv --lower 0 --upper 3 --save solubility`,
	RunE: runCalc,
}

func runCalc(cmd *cobra.Command, args []string) error {
	sep, err := parseSep(calcSep)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	tbl, err := readTable(calcInput, sep)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	raw, err := tbl.column(calcSmilesCol)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	ids, err := rowIDs(tbl, calcIDCol, len(raw))
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	mols := make([]chem.MoleculeView, 0, len(raw))
	keptIDs := make([]string, 0, len(raw))
	for i, s := range raw {
		m, pErr := smiles.Parse(s)
		if pErr != nil {
			slog.Warn("skipping unparsable structure", "row", i+1, "smiles", s, "err", pErr)
			continue
		}
		mols = append(mols, m)
		keptIDs = append(keptIDs, ids[i])
	}
	if len(mols) == 0 {
		exitWithError(ExitDataError, "no parsable structures in %s", calcInput)
	}
	slog.Debug("structures loaded", "total", len(raw), "kept", len(mols))

	opts := []circus.Option{circus.WithWorkers(calcWorkers)}
	if calcOnBond {
		opts = append(opts, circus.WithOnBond())
	}
	gen, err := circus.NewGenerator(calcLower, calcUpper, opts...)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	mat, err := gen.FitTransform(cmd.Context(), mols)
	if err != nil {
		exitWithError(ExitError, "computing descriptors: %v", err)
	}
	slog.Info("descriptors computed", "rows", mat.Rows(), "columns", mat.Width())

	idHeader := calcIDCol
	if idHeader == "" {
		idHeader = "row"
	}
	if err = writeDense(calcOutput, sep, idHeader, keptIDs, featureNames("", mat.Width()), mat.Dense()); err != nil {
		exitWithError(ExitError, "writing %s: %v", calcOutput, err)
	}

	if calcSave != "" {
		st, sErr := vocabstore.Open(dbPath(calcDB))
		if sErr != nil {
			exitWithError(ExitError, "%v", sErr)
		}
		defer st.Close()
		if sErr = st.Save(cmd.Context(), calcSave, gen.Config(), gen.Vocabulary()); sErr != nil {
			exitWithError(ExitError, "saving model %q: %v", calcSave, sErr)
		}
		slog.Info("model saved", "name", calcSave, "keys", gen.Width())
	}
	return nil
}

// rowIDs resolves the ID column, or synthesizes 1-based row numbers.
func rowIDs(tbl *table, col string, n int) ([]string, error) {
	if col != "" {
		return tbl.column(col)
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i+1)
	}
	return ids, nil
}
