// Package main runs the outlier filter and the summaries over a CSV file.
//
//	demo summarize --measure rt --within cond --subject subject data/reaction_times.csv
//	demo outliers --measure rt --by subject,cond --sd 2 data/reaction_times.csv
//	demo normalize --measure rt --subject subject data/reaction_times.csv
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sartorproj/summaryse/internal/config"
	"github.com/sartorproj/summaryse/internal/logging"
	"github.com/sartorproj/summaryse/outlier"
	"github.com/sartorproj/summaryse/summary"
	"github.com/sartorproj/summaryse/table"
	"github.com/sartorproj/summaryse/within"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr, cfg: config.Default(), closeLog: func() {}}
	defer func() { a.closeLog() }()

	root := a.rootCmd()
	root.SetArgs(args)
	return root.Execute()
}

type app struct {
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
	closeLog   func()
	stdout     io.Writer
	stderr     io.Writer
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "demo",
		Short:         "Outlier removal and within-subject summaries of tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "analysis file (TOML)")
	flags.StringSlice("measure", nil, "measure columns")
	flags.StringSlice("strings", nil, "columns loaded as categorical")
	flags.String("delimiter", "", "CSV field delimiter")
	flags.StringP("out", "o", "", "write the result to this CSV file instead of stdout")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("seq-url", "", "Seq endpoint receiving log records")

	root.AddCommand(
		a.summarizeCmd(),
		a.outliersCmd(),
		a.normalizeCmd(),
	)
	return root
}

// setup loads the analysis file, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.configFile != "" {
		cfg, err := config.Load(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if len(args) > 0 {
		a.cfg.Data.File = args[0]
	}

	flags := cmd.Flags()
	overrideSlice(cmd, "measure", &a.cfg.Summary.Measures)
	overrideSlice(cmd, "strings", &a.cfg.Data.Strings)
	overrideSlice(cmd, "group", &a.cfg.Summary.Group)
	overrideSlice(cmd, "between", &a.cfg.Summary.Between)
	overrideSlice(cmd, "within", &a.cfg.Summary.Within)
	overrideSlice(cmd, "subject", &a.cfg.Summary.Subject)
	overrideSlice(cmd, "by", &a.cfg.Outlier.By)
	overrideString(cmd, "delimiter", &a.cfg.Data.Delimiter)
	overrideString(cmd, "out", &a.cfg.Data.Output)
	overrideString(cmd, "log-level", &a.cfg.Log.Level)
	overrideString(cmd, "seq-url", &a.cfg.Log.SeqURL)
	overrideString(cmd, "location", &a.cfg.Outlier.Location)
	overrideString(cmd, "method", &a.cfg.Outlier.Method)
	if flags.Changed("sd") {
		a.cfg.Outlier.Multiplier, _ = flags.GetFloat64("sd")
	}
	if flags.Changed("confidence") {
		a.cfg.Summary.Confidence, _ = flags.GetFloat64("confidence")
	}
	if flags.Changed("outliers") {
		a.cfg.Outlier.Enabled, _ = flags.GetBool("outliers")
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}
	if a.cfg.Data.File == "" {
		return fmt.Errorf("no input file: pass it as an argument or set data.file")
	}

	level, err := logging.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logging.New(a.stderr, logging.Options{Level: level, SeqURL: a.cfg.Log.SeqURL})
	return nil
}

func overrideSlice(cmd *cobra.Command, name string, dst *[]string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetStringSlice(name)
	}
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}

func addOutlierFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSlice("by", nil, "outlier grouping columns")
	flags.Float64("sd", 1, "band half width in spreads")
	flags.String("location", "", "band center: mean or median")
	flags.String("method", "", "band construction: sd or iqr")
}

func (a *app) summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize measures per group, optionally within subjects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.summarize()
		},
	}
	flags := cmd.Flags()
	flags.StringSlice("group", nil, "grouping columns (plain summary)")
	flags.StringSlice("between", nil, "between-subject factor columns")
	flags.StringSlice("within", nil, "within-subject factor columns")
	flags.StringSlice("subject", nil, "subject id columns (enables the within-subject summary)")
	flags.Float64("confidence", summary.DefaultConfidence, "confidence level")
	flags.Bool("outliers", false, "remove outliers before summarizing")
	addOutlierFlags(cmd)
	return cmd
}

func (a *app) outliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outliers [file]",
		Short: "Report outliers per group, or write the filtered rows with --out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.outliers()
		},
	}
	addOutlierFlags(cmd)
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Add subject-mean and within-subject normalized columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.normalize()
		},
	}
	flags := cmd.Flags()
	flags.StringSlice("subject", nil, "subject id columns")
	flags.StringSlice("between", nil, "between-subject factor columns")
	return cmd
}

func (a *app) load() (*table.Table, error) {
	opts := table.DefaultCSVOptions()
	opts.Strings = a.cfg.Data.Strings
	opts.Delimiter = a.cfg.Data.CSVDelimiter()

	t, err := table.LoadCSV(a.cfg.Data.File, opts)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded table", "file", a.cfg.Data.File, "rows", t.Len(), "columns", t.Names())
	return t, nil
}

func (a *app) filter(t *table.Table) (*table.Table, *outlier.Report, error) {
	oc := a.cfg.OutlierConfig()
	oc.Logger = a.logger
	measure := a.cfg.OutlierMeasure()

	report, err := outlier.Detect(t, a.cfg.Outlier.By, measure, oc)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("removed outliers",
		"measure", measure,
		"by", a.cfg.Outlier.By,
		"method", oc.Method,
		"multiplier", oc.Multiplier,
		"removed", report.Removed(),
		"kept", len(report.Keep),
	)
	return report.Apply(t), report, nil
}

func (a *app) requireMeasures() error {
	if len(a.cfg.Summary.Measures) == 0 {
		return fmt.Errorf("no measure: use --measure or set summary.measures")
	}
	return nil
}

func (a *app) summarize() error {
	if err := a.requireMeasures(); err != nil {
		return err
	}
	t, err := a.load()
	if err != nil {
		return err
	}
	if a.cfg.Outlier.Enabled {
		if t, _, err = a.filter(t); err != nil {
			return err
		}
	}

	var out *table.Table
	if a.cfg.WithinSubject() {
		res, err := within.Summarize(t, a.cfg.Summary.Measures, a.cfg.WithinConfig())
		if err != nil {
			return err
		}
		a.logger.Info("within-subject summary",
			"groups", res.Summary.Len(),
			"within_levels", res.WithinLevels,
			"correction", res.Correction,
		)
		out = res.Summary
	} else {
		out, err = summary.Summarize(t, a.cfg.Summary.Measures, a.cfg.Summary.Group, a.cfg.Summary.Confidence)
		if err != nil {
			return err
		}
		a.logger.Info("summary", "groups", out.Len())
	}
	return a.write(out)
}

func (a *app) outliers() error {
	if a.cfg.OutlierMeasure() == "" {
		return fmt.Errorf("no measure: use --measure or set outlier.measure")
	}
	t, err := a.load()
	if err != nil {
		return err
	}
	filtered, report, err := a.filter(t)
	if err != nil {
		return err
	}
	if a.cfg.Data.Output != "" {
		return a.write(filtered)
	}
	perGroup, err := report.Table()
	if err != nil {
		return err
	}
	return a.write(perGroup)
}

func (a *app) normalize() error {
	if err := a.requireMeasures(); err != nil {
		return err
	}
	if len(a.cfg.Summary.Subject) == 0 {
		return fmt.Errorf("normalize needs --subject")
	}
	t, err := a.load()
	if err != nil {
		return err
	}
	out, err := within.Normalize(t, a.cfg.Summary.Subject, a.cfg.Summary.Measures, a.cfg.Summary.Between)
	if err != nil {
		return err
	}
	return a.write(out)
}

func (a *app) write(t *table.Table) error {
	if a.cfg.Data.Output == "" {
		return table.WriteCSV(a.stdout, t)
	}
	if err := table.SaveCSV(t, a.cfg.Data.Output); err != nil {
		return err
	}
	a.logger.Info("wrote table", "file", a.cfg.Data.Output, "rows", t.Len())
	return nil
}
