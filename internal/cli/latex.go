package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/augmentic/principia/internal/catalog"
	"github.com/augmentic/principia/internal/texkit"
)

// formulaDoc converts a catalog formula into texkit's rendering input,
// resolving components when requested. Component references missing from
// the catalog are skipped, matching Explore.
func formulaDoc(cat *catalog.Catalog, key string, includeComponents bool) (texkit.FormulaDoc, error) {
	f, err := cat.Get(key)
	if err != nil {
		return texkit.FormulaDoc{}, err
	}
	doc := texkit.FormulaDoc{Name: f.Name, Description: f.Description, LaTeX: f.LaTeX}
	if includeComponents {
		for _, ref := range f.Components {
			cf, err := cat.Get(ref)
			if err != nil {
				continue
			}
			doc.Components = append(doc.Components, texkit.FormulaDoc{
				Name:        cf.Name,
				Description: cf.Description,
				LaTeX:       cf.LaTeX,
			})
		}
	}
	return doc, nil
}

// writeArtifact writes content under the output directory unless the
// name is already an explicit path.
func writeArtifact(outputDir, name string, content []byte) (string, error) {
	path := name
	if !filepath.IsAbs(name) && filepath.Dir(name) == "." {
		path = filepath.Join(outputDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// NewLatexCommand creates the latex command group.
func NewLatexCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latex",
		Short: "Generate LaTeX sources from the formula catalog",
	}

	var (
		formulaName       string
		fullDocument      bool
		docTitle          string
		includeComponents bool
		output            string
	)

	generate := &cobra.Command{
		Use:           "generate",
		Short:         "Render a formula section or a full document as .tex",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := newLogger(rootOpts)

			cat, err := catalog.New(catalog.WithLogger(log))
			if err != nil {
				return WrapExitError(ExitCommandError, "loading catalog", err)
			}

			var (
				content      string
				name         string
				artifactName string
			)
			switch {
			case fullDocument:
				keys := cat.Names()
				if formulaName != "" {
					keys = []string{formulaName}
				}
				docs := make([]texkit.FormulaDoc, 0, len(keys))
				for _, key := range keys {
					fd, err := formulaDoc(cat, key, includeComponents)
					if err != nil {
						_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
						return NewExitError(ExitFailure, err.Error())
					}
					docs = append(docs, fd)
				}
				content, err = texkit.RenderDocument(texkit.DocumentDoc{
					Title:    docTitle,
					Author:   "principia",
					Date:     time.Now().Format("2006-01-02"),
					Formulas: docs,
				})
				name = "document.tex"
				artifactName = docTitle
			case formulaName != "":
				fd, err := formulaDoc(cat, formulaName, includeComponents)
				if err != nil {
					_ = f.Fail(ErrCodeNotFound, err.Error(), nil)
					return NewExitError(ExitFailure, err.Error())
				}
				content, err = texkit.RenderFormula(fd)
				if err != nil {
					_ = f.Fail(ErrCodeRender, err.Error(), nil)
					return NewExitError(ExitFailure, err.Error())
				}
				name = formulaName + ".tex"
				artifactName = formulaName
			default:
				return NewExitError(ExitCommandError, "either --formula or --document is required")
			}
			if err != nil {
				_ = f.Fail(ErrCodeRender, err.Error(), nil)
				return NewExitError(ExitFailure, err.Error())
			}

			if output != "" {
				name = output
			}

			rec, err := openRecorder(cmd.Context(), rootOpts, log)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer rec.close()

			path, err := writeArtifact(rootOpts.OutputDir, name, []byte(content))
			if err != nil {
				return WrapExitError(ExitCommandError, "writing output", err)
			}
			rec.record(cmd.Context(), "tex", artifactName, path)

			if f.Format == "json" {
				return f.JSON(map[string]string{"path": path})
			}
			fmt.Fprintf(f.Writer, "LaTeX saved to: %s\n", path)
			return nil
		},
	}
	generate.Flags().StringVar(&formulaName, "formula", "", "formula to render")
	generate.Flags().BoolVar(&fullDocument, "document", false, "render a full document instead of one section")
	generate.Flags().StringVar(&docTitle, "title", "Theory of Everything", "document title (with --document)")
	generate.Flags().BoolVar(&includeComponents, "include-components", false, "include component formulas")
	generate.Flags().StringVar(&output, "output", "", "output file name (default derived from formula)")
	cmd.AddCommand(generate)

	return cmd
}
