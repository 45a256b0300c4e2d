package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/circus"
	"github.com/katalvlaran/circus/fragmentor"
	"github.com/katalvlaran/circus/smiles"
)

// complexConfig is the YAML configuration of a multi-column run.
type complexConfig struct {
	Input     string          `yaml:"input"`
	Output    string          `yaml:"output"`
	Separator string          `yaml:"separator"`
	IDColumn  string          `yaml:"id_column"`
	RowPolicy string          `yaml:"row_policy"` // skip (default) or fail
	Columns   []complexColumn `yaml:"columns"`
}

// complexColumn configures one (structural column, generator) association.
type complexColumn struct {
	Column  string `yaml:"column"`
	Lower   int    `yaml:"lower"`
	Upper   int    `yaml:"upper"`
	OnBond  bool   `yaml:"on_bond"`
	Workers int    `yaml:"workers"`
}

var complexConfigPath string

func init() {
	rootCmd.AddCommand(complexCmd)
	complexCmd.Flags().StringVarP(&complexConfigPath, "config", "c", "circus.yaml", "YAML configuration file")
}

var complexCmd = &cobra.Command{
	Use:   "complex",
	Short: "Compose descriptors over multiple structural columns",
	Long: `Run a config-driven ComplexFragmentor: each configured column gets its own
independently parameterized generator, and the per-column blocks are
concatenated into one descriptor table. See 'circus init' for a starter
configuration.`,
	RunE: runComplex,
}

func runComplex(cmd *cobra.Command, args []string) error {
	cfg, err := loadComplexConfig(complexConfigPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	sep, err := parseSep(cfg.Separator)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	tbl, err := readTable(cfg.Input, sep)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	frame := fragmentor.NewFrame()
	added := make(map[string]bool)
	for _, c := range cfg.Columns {
		if added[c.Column] {
			continue
		}
		raw, cErr := tbl.column(c.Column)
		if cErr != nil {
			exitWithError(ExitDataError, "%v", cErr)
		}
		if cErr = frame.AddStringColumn(c.Column, raw, smiles.Parse); cErr != nil {
			exitWithError(ExitDataError, "%v", cErr)
		}
		added[c.Column] = true
	}

	assocs := make([]fragmentor.Association, len(cfg.Columns))
	for i, c := range cfg.Columns {
		opts := []circus.Option{}
		if c.Workers > 0 {
			opts = append(opts, circus.WithWorkers(c.Workers))
		}
		if c.OnBond {
			opts = append(opts, circus.WithOnBond())
		}
		gen, gErr := circus.NewGenerator(c.Lower, c.Upper, opts...)
		if gErr != nil {
			exitWithError(ExitConfigError, "column %q: %v", c.Column, gErr)
		}
		assocs[i] = fragmentor.Association{Column: c.Column, Gen: gen}
	}

	var copts []fragmentor.Option
	if cfg.RowPolicy == "fail" {
		copts = append(copts, fragmentor.WithRowPolicy(fragmentor.FailFast))
	}
	cmp, err := fragmentor.NewComposer(assocs, copts...)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err = cmp.Fit(cmd.Context(), frame); err != nil {
		exitWithError(ExitError, "fitting: %v", err)
	}
	out, err := cmp.Transform(cmd.Context(), frame)
	if err != nil {
		exitWithError(ExitError, "transforming: %v", err)
	}
	for _, re := range out.Skipped {
		slog.Warn("row skipped", "row", re.Row+1, "column", re.Column, "err", re.Err)
	}
	slog.Info("descriptors composed",
		"rows", out.Matrix.Rows(), "columns", out.Matrix.Width(), "skipped", len(out.Skipped))

	ids, err := rowIDs(tbl, cfg.IDColumn, frame.Rows())
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	keptIDs := make([]string, len(out.Kept))
	for i, row := range out.Kept {
		keptIDs[i] = ids[row]
	}

	names := make([]string, 0, out.Matrix.Width())
	for i, b := range out.Blocks {
		names = append(names, featureNames(fmt.Sprintf("%s%d", b.Column, i+1), b.Width)...)
	}
	idHeader := cfg.IDColumn
	if idHeader == "" {
		idHeader = "row"
	}
	if err = writeDense(cfg.Output, sep, idHeader, keptIDs, names, out.Matrix.Dense()); err != nil {
		exitWithError(ExitError, "writing %s: %v", cfg.Output, err)
	}
	return nil
}

// loadComplexConfig reads and validates the YAML configuration.
func loadComplexConfig(path string) (*complexConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg complexConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Input == "" || cfg.Output == "" {
		return nil, fmt.Errorf("%s: input and output are required", path)
	}
	if len(cfg.Columns) == 0 {
		return nil, fmt.Errorf("%s: at least one column is required", path)
	}
	if cfg.Separator == "" {
		cfg.Separator = ","
	}
	if cfg.RowPolicy != "" && cfg.RowPolicy != "skip" && cfg.RowPolicy != "fail" {
		return nil, fmt.Errorf("%s: row_policy must be \"skip\" or \"fail\"", path)
	}
	return &cfg, nil
}
