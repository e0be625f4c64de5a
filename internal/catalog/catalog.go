package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed formulas/*.json
var formulaFS embed.FS

// Formula is a single formula definition. Components reference other
// formulas by key.
type Formula struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	LaTeX       string            `json:"latex"`
	Category    string            `json:"category,omitempty"`
	Components  []string          `json:"components,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
}

// Catalog holds the loaded formula set.
type Catalog struct {
	formulas map[string]Formula
	log      *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Catalog) { c.log = log }
}

// New loads the embedded formula set.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{
		formulas: make(map[string]Formula),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	entries, err := formulaFS.ReadDir("formulas")
	if err != nil {
		return nil, fmt.Errorf("read embedded formulas: %w", err)
	}
	for _, entry := range entries {
		data, err := formulaFS.ReadFile("formulas/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded formula %s: %w", entry.Name(), err)
		}
		var f Formula
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse embedded formula %s: %w", entry.Name(), err)
		}
		c.formulas[keyFromFilename(entry.Name())] = f
	}
	return c, nil
}

// LoadDir merges formula definitions from an external directory into the
// catalog. Files that fail to parse are skipped with a warning so a single
// bad payload does not take down the whole catalog.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read formula dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			c.log.Warn("skipping unreadable formula file",
				zap.String("path", path), zap.Error(err))
			continue
		}
		var f Formula
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Warn("skipping malformed formula file",
				zap.String("path", path), zap.Error(err))
			continue
		}
		c.formulas[keyFromFilename(entry.Name())] = f
	}
	return nil
}

func keyFromFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Names returns all formula keys in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.formulas))
	for name := range c.formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns formula keys mapped to their descriptions.
func (c *Catalog) List() map[string]string {
	out := make(map[string]string, len(c.formulas))
	for name, f := range c.formulas {
		out[name] = f.Description
	}
	return out
}

// Get returns the formula for the given key.
func (c *Catalog) Get(name string) (Formula, error) {
	f, ok := c.formulas[name]
	if !ok {
		return Formula{}, fmt.Errorf("unknown formula %q (available: %s)",
			name, strings.Join(c.Names(), ", "))
	}
	return f, nil
}

// Exploration is the result of Explore: a formula together with the
// resolved definitions of its components.
type Exploration struct {
	Formula    Formula            `json:"formula"`
	Components map[string]Formula `json:"components"`
}

// Explore returns a formula and its resolved component formulas. Component
// references with no matching definition are omitted.
func (c *Catalog) Explore(name string) (Exploration, error) {
	f, err := c.Get(name)
	if err != nil {
		return Exploration{}, err
	}
	comps := make(map[string]Formula)
	for _, ref := range f.Components {
		if cf, ok := c.formulas[ref]; ok {
			comps[ref] = cf
		}
	}
	return Exploration{Formula: f, Components: comps}, nil
}

// Comparison is the result of Compare.
type Comparison struct {
	Formulas         map[string]Formula  `json:"formulas"`
	Errors           map[string]string   `json:"errors,omitempty"`
	CommonComponents []string            `json:"common_components"`
	UniqueComponents map[string][]string `json:"unique_components"`
}

// Compare reports component overlap between the named formulas. Unknown
// names are reported in Errors rather than failing the whole comparison.
func (c *Catalog) Compare(names []string) Comparison {
	cmp := Comparison{
		Formulas:         make(map[string]Formula),
		Errors:           make(map[string]string),
		CommonComponents: []string{},
		UniqueComponents: make(map[string][]string),
	}

	componentSets := make(map[string]map[string]bool)
	for _, name := range names {
		f, err := c.Get(name)
		if err != nil {
			cmp.Errors[name] = err.Error()
			continue
		}
		cmp.Formulas[name] = f
		set := make(map[string]bool, len(f.Components))
		for _, comp := range f.Components {
			set[comp] = true
		}
		componentSets[name] = set
	}

	common := make(map[string]bool)
	for name, set := range componentSets {
		unique := []string{}
		for comp := range set {
			shared := false
			for other, otherSet := range componentSets {
				if other != name && otherSet[comp] {
					shared = true
					break
				}
			}
			if shared {
				common[comp] = true
			} else {
				unique = append(unique, comp)
			}
		}
		sort.Strings(unique)
		cmp.UniqueComponents[name] = unique
	}
	for comp := range common {
		cmp.CommonComponents = append(cmp.CommonComponents, comp)
	}
	sort.Strings(cmp.CommonComponents)

	if len(cmp.Errors) == 0 {
		cmp.Errors = nil
	}
	return cmp
}

// SearchResult is a single scored search hit.
type SearchResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Search scores formulas against a case-insensitive substring query.
// Weights: name match 3, description 2, latex 1, each component 1.
// Results are sorted by score descending, then name ascending.
func (c *Catalog) Search(query string) []SearchResult {
	query = strings.ToLower(query)
	var results []SearchResult
	for name, f := range c.formulas {
		score := 0
		if strings.Contains(strings.ToLower(name), query) ||
			strings.Contains(strings.ToLower(f.Name), query) {
			score += 3
		}
		if strings.Contains(strings.ToLower(f.Description), query) {
			score += 2
		}
		if strings.Contains(strings.ToLower(f.LaTeX), query) {
			score++
		}
		for _, comp := range f.Components {
			if strings.Contains(strings.ToLower(comp), query) {
				score++
			}
		}
		if score > 0 {
			results = append(results, SearchResult{Name: name, Score: score})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// Dependencies describes a formula's component references.
type Dependencies struct {
	Direct []string            `json:"direct"`
	Tree   map[string][]string `json:"tree"`
}

// DependencyTree returns the direct components of a formula and, for each
// component present in the catalog, its own direct components.
func (c *Catalog) DependencyTree(name string) (Dependencies, error) {
	f, err := c.Get(name)
	if err != nil {
		return Dependencies{}, err
	}
	deps := Dependencies{
		Direct: append([]string{}, f.Components...),
		Tree:   make(map[string][]string),
	}
	for _, comp := range f.Components {
		if cf, ok := c.formulas[comp]; ok {
			deps.Tree[comp] = append([]string{}, cf.Components...)
		}
	}
	return deps, nil
}
