package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/circus/coloratom"
	"github.com/katalvlaran/circus/smiles"
	"github.com/katalvlaran/circus/vocabstore"
)

var (
	colorModel   string
	colorDB      string
	colorWeights string
	colorWorkers int
	colorRadius  int
)

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.Flags().StringVarP(&colorModel, "model", "m", "", "Stored model name (required)")
	colorCmd.Flags().StringVar(&colorDB, "db", "", "Vocabulary store path (default $CIRCUS_DB or ./circus.db)")
	colorCmd.Flags().StringVarP(&colorWeights, "weights", "w", "", "File of linear model weights, one per descriptor column (default: all ones)")
	colorCmd.Flags().IntVar(&colorWorkers, "workers", 1, "Perturbation worker goroutines")
	colorCmd.Flags().IntVar(&colorRadius, "fragment-radius", -1, "Remove the whole radius-r fragment per atom instead of the atom alone")
	colorCmd.MarkFlagRequired("model")
}

var colorCmd = &cobra.Command{
	Use:   "coloratom <smiles>",
	Short: "Attribute a linear model's prediction to individual atoms",
	Long: `Load a fitted model from the vocabulary store, score the given molecule with
a linear model over its descriptors, and print each atom's contribution
computed by perturb-and-rescore.

Example:
  circus coloratom -m solubility -w weights.txt "CCO"`,
	Args: cobra.ExactArgs(1),
	RunE: runColorAtom,
}

func runColorAtom(cmd *cobra.Command, args []string) error {
	mol, err := smiles.Parse(args[0])
	if err != nil {
		exitWithError(ExitDataError, "parsing %q: %v", args[0], err)
	}

	st, err := vocabstore.Open(dbPath(colorDB))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer st.Close()

	gen, err := st.LoadGenerator(cmd.Context(), colorModel)
	if err != nil {
		exitWithError(ExitConfigError, "loading model %q: %v", colorModel, err)
	}

	weights, err := loadWeights(colorWeights, gen.Width())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	score := func(vec []float64) (float64, error) {
		s := 0.0
		for i, v := range vec {
			s += v * weights[i]
		}
		return s, nil
	}

	opts := []coloratom.Option{coloratom.WithWorkers(colorWorkers)}
	if colorRadius >= 0 {
		opts = append(opts, coloratom.WithFragmentRadius(colorRadius))
	}
	ca, err := coloratom.New(gen, score, opts...)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	attr, err := ca.Explain(cmd.Context(), mol)
	if err != nil {
		exitWithError(ExitError, "explaining: %v", err)
	}

	fmt.Println("atom,element,contribution")
	for i := 0; i < mol.AtomCount(); i++ {
		fmt.Printf("%d,%s,%g\n", i, mol.Atom(i).Element, attr[i])
	}
	return nil
}

// loadWeights reads one float per line; an empty path yields uniform ones.
func loadWeights(path string, width int) ([]float64, error) {
	if path == "" {
		w := make([]float64, width)
		for i := range w {
			w[i] = 1
		}
		return w, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var w []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, pErr := strconv.ParseFloat(line, 64)
		if pErr != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, len(w)+1, pErr)
		}
		w = append(w, v)
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if len(w) != width {
		return nil, fmt.Errorf("%s has %d weights, model has %d descriptor columns", path, len(w), width)
	}
	return w, nil
}
