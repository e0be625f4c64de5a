package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/augmentic/principia/internal/catalog"
)

// printFormula writes one formula in the text format.
func printFormula(f *Formatter, key string, formula catalog.Formula) {
	fmt.Fprintf(f.Writer, "%s: %s\n", key, formula.Name)
	fmt.Fprintf(f.Writer, "  %s\n", formula.Description)
	fmt.Fprintf(f.Writer, "  latex: %s\n", formula.LaTeX)
	if formula.Category != "" {
		fmt.Fprintf(f.Writer, "  category: %s\n", formula.Category)
	}
	if len(formula.Components) > 0 {
		fmt.Fprintf(f.Writer, "  components: %s\n", strings.Join(formula.Components, ", "))
	}
	if len(formula.Variables) > 0 {
		syms := make([]string, 0, len(formula.Variables))
		for sym := range formula.Variables {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		fmt.Fprintln(f.Writer, "  variables:")
		for _, sym := range syms {
			fmt.Fprintf(f.Writer, "    %s: %s\n", sym, formula.Variables[sym])
		}
	}
}

// NewFormulaCommand creates the formula command group.
func NewFormulaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formula",
		Short: "Inspect the formula catalog",
	}

	var formulaDir string
	cmd.PersistentFlags().StringVar(&formulaDir, "formula-dir", "", "extra directory of formula JSON files")

	load := func() (*catalog.Catalog, error) {
		cat, err := catalog.New(catalog.WithLogger(newLogger(rootOpts)))
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "loading catalog", err)
		}
		if formulaDir != "" {
			if err := cat.LoadDir(formulaDir); err != nil {
				return nil, WrapExitError(ExitCommandError, "loading formula dir", err)
			}
		}
		return cat, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List available formulas",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			if f.Format == "json" {
				return f.JSON(cat.List())
			}
			list := cat.List()
			for _, name := range cat.Names() {
				fmt.Fprintf(f.Writer, "%s: %s\n", name, list[name])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "get <name>",
		Short:         "Show a formula definition",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			formula, err := cat.Get(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(formula)
			}
			printFormula(f, args[0], formula)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "explore <name>",
		Short:         "Show a formula with its resolved components",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			ex, err := cat.Explore(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(ex)
			}
			printFormula(f, args[0], ex.Formula)
			if len(ex.Components) > 0 {
				keys := make([]string, 0, len(ex.Components))
				for key := range ex.Components {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				fmt.Fprintln(f.Writer, "resolved components:")
				for _, key := range keys {
					printFormula(f, key, ex.Components[key])
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "compare <name> <name>...",
		Short:         "Compare component overlap between formulas",
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			cmp := cat.Compare(args)
			if f.Format == "json" {
				return f.JSON(cmp)
			}
			fmt.Fprintf(f.Writer, "common components: %s\n", strings.Join(cmp.CommonComponents, ", "))
			for _, name := range args {
				if msg, bad := cmp.Errors[name]; bad {
					fmt.Fprintf(f.Writer, "%s: %s\n", name, msg)
					continue
				}
				fmt.Fprintf(f.Writer, "unique to %s: %s\n", name, strings.Join(cmp.UniqueComponents[name], ", "))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "search <query>",
		Short:         "Search formulas by name, description, latex or components",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			results := cat.Search(args[0])
			if f.Format == "json" {
				return f.JSON(results)
			}
			if len(results) == 0 {
				fmt.Fprintln(f.Writer, "no matches")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(f.Writer, "%s (score %d)\n", r.Name, r.Score)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "deps <name>",
		Short:         "Show a formula's component dependency tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := load()
			if err != nil {
				return err
			}
			f := newFormatter(rootOpts, cmd)
			deps, err := cat.DependencyTree(args[0])
			if err != nil {
				_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}
			if f.Format == "json" {
				return f.JSON(deps)
			}
			fmt.Fprintf(f.Writer, "direct: %s\n", strings.Join(deps.Direct, ", "))
			for _, comp := range deps.Direct {
				if sub, ok := deps.Tree[comp]; ok {
					fmt.Fprintf(f.Writer, "  %s -> %s\n", comp, strings.Join(sub, ", "))
				}
			}
			return nil
		},
	})

	return cmd
}
