package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/augmentic/principia/internal/catalog"
	"github.com/augmentic/principia/internal/pdfgen"
	"github.com/augmentic/principia/internal/schema"
	"github.com/augmentic/principia/internal/texkit"
)

// loadTheme resolves the PDF theme from the --theme flag, falling back
// to the built-in defaults.
func loadTheme(rootOpts *RootOptions) (pdfgen.Theme, error) {
	if rootOpts.Theme == "" {
		return pdfgen.DefaultTheme(), nil
	}
	return pdfgen.LoadTheme(rootOpts.Theme)
}

// resolveOutput places bare file names under the output directory and
// leaves explicit paths alone.
func resolveOutput(outputDir, name string) string {
	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(outputDir, name)
}

// formulaPDF renders a single formula to PDF. It first writes the LaTeX
// source and hands it to pdflatex; when no TeX toolchain is installed it
// falls back to the native builder so the command still produces a PDF.
// Returns the PDF path and the intermediate .tex path.
func formulaPDF(ctx context.Context, log *zap.Logger, cat *catalog.Catalog, assembler *pdfgen.Assembler,
	key string, includeComponents bool, outputDir, outPath string) (string, string, error) {

	fd, err := formulaDoc(cat, key, includeComponents)
	if err != nil {
		return "", "", err
	}
	tex, err := texkit.RenderFormula(fd)
	if err != nil {
		return "", "", err
	}
	texPath, err := writeArtifact(outputDir, key+".tex", []byte(tex))
	if err != nil {
		return "", "", err
	}

	built, err := texkit.CompilePDF(ctx, texPath, outPath)
	if err == nil {
		return built, texPath, nil
	}
	if !errors.Is(err, texkit.ErrLaTeXNotFound) {
		return "", "", err
	}

	log.Info("pdflatex not available, using native builder", zap.String("formula", key))
	doc := pdfgen.Document{
		Type:     pdfgen.TypeFormulaSheet,
		Title:    fd.Name,
		Formulas: []string{key},
	}
	if includeComponents {
		f, err := cat.Get(key)
		if err != nil {
			return "", "", err
		}
		for _, ref := range f.Components {
			if _, err := cat.Get(ref); err == nil {
				doc.Formulas = append(doc.Formulas, ref)
			}
		}
	}
	if err := assembler.Assemble(doc, outPath); err != nil {
		return "", "", err
	}
	return outPath, texPath, nil
}

// NewPDFCommand creates the pdf command group.
func NewPDFCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Assemble PDF documents",
	}

	var (
		contentPath       string
		formulaName       string
		includeComponents bool
		output            string
	)

	generate := &cobra.Command{
		Use:           "generate",
		Short:         "Assemble a PDF from a document descriptor or a single formula",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			log := newLogger(rootOpts)

			if contentPath == "" && formulaName == "" {
				return NewExitError(ExitCommandError, "either --content or --formula is required")
			}

			theme, err := loadTheme(rootOpts)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading theme", err)
			}

			cat, err := catalog.New(catalog.WithLogger(log))
			if err != nil {
				return WrapExitError(ExitCommandError, "loading catalog", err)
			}

			rec, err := openRecorder(cmd.Context(), rootOpts, log)
			if err != nil {
				return WrapExitError(ExitCommandError, "opening session ledger", err)
			}
			defer rec.close()

			assembler := pdfgen.NewAssembler(cat, theme, pdfgen.WithAssemblerLogger(log))

			var (
				outPath string
				texPath string
				name    string
			)
			if contentPath != "" {
				verrs, err := schema.ValidateFile(schema.KindDocument, contentPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "validating content", err)
				}
				if len(verrs) > 0 {
					_ = f.Fail(ErrCodeContent, fmt.Sprintf("%s is not a valid document", contentPath), verrs)
					return NewExitError(ExitFailure, "invalid document content")
				}
				doc, err := pdfgen.LoadDocument(contentPath)
				if err != nil {
					_ = f.Fail(ErrCodeContent, err.Error(), nil)
					return NewExitError(ExitFailure, err.Error())
				}
				name = doc.Title
				out := output
				if out == "" {
					base := filepath.Base(contentPath)
					out = base[:len(base)-len(filepath.Ext(base))] + ".pdf"
				}
				outPath = resolveOutput(rootOpts.OutputDir, out)
				if err := assembler.Assemble(doc, outPath); err != nil {
					_ = f.Fail(ErrCodeRender, err.Error(), nil)
					return NewExitError(ExitFailure, err.Error())
				}
			} else {
				name = formulaName
				out := output
				if out == "" {
					out = formulaName + ".pdf"
				}
				outPath, texPath, err = formulaPDF(cmd.Context(), log, cat, assembler,
					formulaName, includeComponents, rootOpts.OutputDir, resolveOutput(rootOpts.OutputDir, out))
				if err != nil {
					_ = f.Fail(ErrCodeRender, err.Error(), nil)
					return NewExitError(ExitFailure, err.Error())
				}
			}
			if texPath != "" {
				rec.record(cmd.Context(), "tex", name, texPath)
			}
			rec.record(cmd.Context(), "pdf", name, outPath)

			if f.Format == "json" {
				return f.JSON(map[string]string{"path": outPath})
			}
			fmt.Fprintf(f.Writer, "PDF saved to: %s\n", outPath)
			return nil
		},
	}
	generate.Flags().StringVar(&contentPath, "content", "", "document descriptor JSON file")
	generate.Flags().StringVar(&formulaName, "formula", "", "render a single formula")
	generate.Flags().BoolVar(&includeComponents, "include-components", false, "include component formulas (with --formula)")
	generate.Flags().StringVar(&output, "output", "", "output file name")
	cmd.AddCommand(generate)

	return cmd
}
