package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/augmentic/principia/internal/chartgen"
)

// printParamSpecs writes one line per parameter, sorted by name.
func printParamSpecs(f *Formatter, specs map[string]chartgen.ParamSpec) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := specs[name]
		fmt.Fprintf(f.Writer, "  %s: %s (%s, default %v, range [%v, %v])\n",
			name, spec.Description, spec.Type, spec.Default, spec.Min, spec.Max)
	}
}

// formatParamSet renders a parameter set as sorted key=value pairs.
func formatParamSet(set map[string]float64) string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += name + "=" + strconv.FormatFloat(set[name], 'g', -1, 64)
	}
	return out
}

// NewChartCommand creates the chart command group.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Generate physics visualizations as PNG images",
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List available visualizations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			if f.Format == "json" {
				return f.JSON(chartgen.List())
			}
			list := chartgen.List()
			for _, name := range chartgen.Names() {
				fmt.Fprintf(f.Writer, "%s: %s\n", name, list[name])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "info <name>",
		Short:         "Show a visualization's description and parameters",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			v, err := chartgen.Lookup(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(v)
			}
			fmt.Fprintf(f.Writer, "%s: %s\n", args[0], v.Description)
			fmt.Fprintln(f.Writer, "parameters:")
			printParamSpecs(f, v.Params)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "params <name>",
		Short:         "Show a visualization's parameter spec",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			v, err := chartgen.Lookup(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(v.Params)
			}
			printParamSpecs(f, v.Params)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "suggest <name>",
		Short:         "Suggest parameter sets (defaults, lower and upper bounds)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			v, err := chartgen.Lookup(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			sets := chartgen.SuggestParams(v.Params)
			if f.Format == "json" {
				return f.JSON(sets)
			}
			labels := []string{"defaults", "low", "high"}
			for i, set := range sets {
				fmt.Fprintf(f.Writer, "%s: %s\n", labels[i], formatParamSet(set))
			}
			return nil
		},
	})

	var paramsJSON string
	generate := &cobra.Command{
		Use:           "generate <name>",
		Short:         "Render a visualization to a PNG file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := newLogger(rootOpts)

			var params map[string]float64
			if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
				return WrapExitError(ExitCommandError, "parsing --params", err)
			}

			rec, err := openRecorder(cmd.Context(), rootOpts, log)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer rec.close()

			g := chartgen.NewGenerator(rootOpts.OutputDir, chartgen.WithLogger(log))
			path, err := g.Generate(args[0], params)
			if err != nil {
				_ = f.Fail(ErrCodeRender, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			rec.record(cmd.Context(), "png", args[0], path)

			if f.Format == "json" {
				return f.JSON(map[string]string{"path": path})
			}
			fmt.Fprintf(f.Writer, "Visualization saved to: %s\n", path)
			return nil
		},
	}
	generate.Flags().StringVar(&paramsJSON, "params", "{}", "JSON object of parameter values")
	cmd.AddCommand(generate)

	cmd.AddCommand(&cobra.Command{
		Use:           "for-formula <formula>",
		Short:         "Render the visualization paired with a formula, using default parameters",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := newLogger(rootOpts)

			vis, err := chartgen.ForFormula(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}

			rec, err := openRecorder(cmd.Context(), rootOpts, log)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer rec.close()

			g := chartgen.NewGenerator(rootOpts.OutputDir, chartgen.WithLogger(log))
			path, err := g.Generate(vis, nil)
			if err != nil {
				_ = f.Fail(ErrCodeRender, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			rec.record(cmd.Context(), "png", vis, path)

			if f.Format == "json" {
				return f.JSON(map[string]string{
					"formula":       args[0],
					"visualization": vis,
					"path":          path,
				})
			}
			fmt.Fprintf(f.Writer, "%s -> %s\n", args[0], vis)
			fmt.Fprintf(f.Writer, "Visualization saved to: %s\n", path)
			return nil
		},
	})

	var (
		insFormula string
		insVis     string
	)
	insights := &cobra.Command{
		Use:           "insights",
		Short:         "Show insights for a formula/visualization pair",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			report, err := chartgen.Insights(insFormula, insVis)
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(report)
			}
			fmt.Fprintf(f.Writer, "%s (%s)\n", report.Formula, report.Visualization)
			for _, in := range report.Insights {
				fmt.Fprintf(f.Writer, "  [%s] %s\n", in.Type, in.Content)
			}
			return nil
		},
	}
	insights.Flags().StringVar(&insFormula, "formula", "", "formula name")
	insights.Flags().StringVar(&insVis, "visualization", "", "visualization name")
	cmd.AddCommand(insights)

	var (
		seqParam string
		seqFrom  float64
		seqTo    float64
		seqSteps int
	)
	sequence := &cobra.Command{
		Use:           "sequence <name>",
		Short:         "Render a frame sequence sweeping one parameter",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := newLogger(rootOpts)

			rec, err := openRecorder(cmd.Context(), rootOpts, log)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer rec.close()

			g := chartgen.NewGenerator(rootOpts.OutputDir, chartgen.WithLogger(log))
			paths, err := g.Sequence(args[0], seqParam, seqFrom, seqTo, seqSteps)
			if err != nil {
				_ = f.Fail(ErrCodeRender, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			for _, p := range paths {
				rec.record(cmd.Context(), "png", args[0], p)
			}

			if f.Format == "json" {
				return f.JSON(map[string]interface{}{"frames": paths})
			}
			for _, p := range paths {
				fmt.Fprintln(f.Writer, p)
			}
			return nil
		},
	}
	sequence.Flags().StringVar(&seqParam, "param", "", "parameter to sweep")
	sequence.Flags().Float64Var(&seqFrom, "from", 0, "first value of the sweep")
	sequence.Flags().Float64Var(&seqTo, "to", 1, "last value of the sweep")
	sequence.Flags().IntVar(&seqSteps, "steps", 5, "number of frames")
	_ = sequence.MarkFlagRequired("param")
	cmd.AddCommand(sequence)

	return cmd
}
