package chartgen

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Generator renders visualizations into an output directory.
type Generator struct {
	outDir string
	log    *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// NewGenerator returns a Generator writing into outDir. The directory is
// created on first use.
func NewGenerator(outDir string, opts ...Option) *Generator {
	g := &Generator{outDir: outDir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the named visualization with the supplied parameters
// (defaults fill the gaps) and returns the path of the written PNG.
func (g *Generator) Generate(name string, params map[string]float64) (string, error) {
	return g.generate(name, params, name+".png")
}

// Sequence renders a series of frames sweeping one parameter from `from`
// to `to` in `steps` evenly spaced values. Returns the frame paths in
// order.
func (g *Generator) Sequence(name, param string, from, to float64, steps int) ([]string, error) {
	if steps < 2 {
		return nil, fmt.Errorf("sequence needs at least 2 steps, got %d", steps)
	}
	v, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if _, ok := v.Params[param]; !ok {
		return nil, fmt.Errorf("unknown parameter %q for %s (available: %v)",
			param, name, paramNames(v.Params))
	}

	paths := make([]string, 0, steps)
	stride := (to - from) / float64(steps-1)
	for i := 0; i < steps; i++ {
		value := from + float64(i)*stride
		frame := fmt.Sprintf("%s_%s_%03d.png", name, param, i+1)
		path, err := g.generate(name, map[string]float64{param: value}, frame)
		if err != nil {
			return nil, fmt.Errorf("frame %d (%s=%v): %w", i+1, param, value, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) generate(name string, params map[string]float64, filename string) (string, error) {
	v, err := Lookup(name)
	if err != nil {
		return "", err
	}
	resolved, err := resolveParams(v.Params, params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.outDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := v.render(resolved, f); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	g.log.Debug("rendered visualization",
		zap.String("name", name), zap.String("path", path))
	return path, nil
}
