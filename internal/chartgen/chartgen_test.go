package chartgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngMagic is the first eight bytes of every PNG file.
var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Len(t, names, 5)
	assert.Contains(t, names, "gravitational_potential")
	assert.Contains(t, names, "coupling_unification")

	list := List()
	for _, name := range names {
		assert.NotEmpty(t, list[name])
	}

	v, err := Lookup("wave_packet")
	require.NoError(t, err)
	assert.Len(t, v.Params, 3)

	_, err = Lookup("nope")
	assert.Error(t, err)
}

func TestResolveParams(t *testing.T) {
	specs := map[string]ParamSpec{
		"mass":   {Type: "float", Default: 1.0, Min: 0.1, Max: 10.0},
		"levels": {Type: "int", Default: 8, Min: 2, Max: 20},
	}

	t.Run("defaults fill gaps", func(t *testing.T) {
		p, err := resolveParams(specs, nil)
		require.NoError(t, err)
		assert.Equal(t, 1.0, p["mass"])
		assert.Equal(t, 8.0, p["levels"])
	})

	t.Run("supplied values override", func(t *testing.T) {
		p, err := resolveParams(specs, map[string]float64{"mass": 2.5})
		require.NoError(t, err)
		assert.Equal(t, 2.5, p["mass"])
	})

	t.Run("unknown parameter", func(t *testing.T) {
		_, err := resolveParams(specs, map[string]float64{"spin": 1})
		assert.ErrorContains(t, err, "unknown parameter")
	})

	t.Run("non-integer for int param", func(t *testing.T) {
		_, err := resolveParams(specs, map[string]float64{"levels": 2.5})
		assert.ErrorContains(t, err, "must be an integer")
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := resolveParams(specs, map[string]float64{"mass": 50})
		assert.ErrorContains(t, err, "out of range")
	})
}

func TestSuggestParams(t *testing.T) {
	v, err := Lookup("higgs_potential")
	require.NoError(t, err)

	sets := SuggestParams(v.Params)
	require.Len(t, sets, 3)
	assert.Equal(t, 1.0, sets[0]["vev"])  // default
	assert.Equal(t, 0.5, sets[1]["vev"])  // min
	assert.Equal(t, 3.0, sets[2]["vev"])  // max
}

func TestGenerateAllVisualizations(t *testing.T) {
	g := NewGenerator(t.TempDir())

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			path, err := g.Generate(name, nil)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Greater(t, len(data), len(pngMagic))
			assert.True(t, bytes.HasPrefix(data, pngMagic), "output is not a PNG")
		})
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	g := NewGenerator(t.TempDir())

	_, err := g.Generate("gravitational_potential", map[string]float64{"mass": 1000})
	assert.Error(t, err)

	_, err = g.Generate("no_such_chart", nil)
	assert.Error(t, err)
}

func TestSequence(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	paths, err := g.Sequence("higgs_potential", "vev", 0.5, 2.0, 4)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	assert.Equal(t, filepath.Join(dir, "higgs_potential_vev_001.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "higgs_potential_vev_004.png"), paths[3])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	_, err = g.Sequence("higgs_potential", "bogus", 0, 1, 3)
	assert.Error(t, err)

	_, err = g.Sequence("higgs_potential", "vev", 0.5, 2.0, 1)
	assert.Error(t, err)
}
