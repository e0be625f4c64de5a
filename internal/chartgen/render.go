package chartgen

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 800
	chartHeight = 500
	samples     = 240
)

// sample evaluates f at n evenly spaced points over [from, to].
func sample(from, to float64, n int, f func(x float64) float64) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := 0; i < n; i++ {
		x := from + float64(i)*step
		xs[i] = x
		ys[i] = f(x)
	}
	return xs, ys
}

func renderGravitationalPotential(p map[string]float64, w io.Writer) error {
	mass := p["mass"]
	xs, ys := sample(0.5, 20, samples, func(r float64) float64 {
		return -mass / r
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("Gravitational potential, M = %.2f", mass),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "r"},
		YAxis:  chart.YAxis{Name: "Φ(r)"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Φ(r) = -GM/r", XValues: xs, YValues: ys},
		},
	}
	return graph.Render(chart.PNG, w)
}

func renderQuantumOscillator(p map[string]float64, w io.Writer) error {
	levels := int(p["levels"])
	omega := p["frequency"]

	bars := make([]chart.Value, levels)
	for n := 0; n < levels; n++ {
		bars[n] = chart.Value{
			Value: omega * (float64(n) + 0.5),
			Label: fmt.Sprintf("n=%d", n),
		}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Harmonic oscillator levels, ω = %.2f", omega),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 30,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderWavePacket(p map[string]float64, w io.Writer) error {
	amp := p["amplitude"]
	freq := p["frequency"]
	width := p["width"]

	envelope := func(x float64) float64 {
		return amp * math.Exp(-x*x/(2*width*width))
	}
	xs, packet := sample(-5, 5, samples, func(x float64) float64 {
		return envelope(x) * math.Cos(2*math.Pi*freq*x)
	})
	_, upper := sample(-5, 5, samples, envelope)

	graph := chart.Chart{
		Title:  "Gaussian wave packet",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "x"},
		YAxis:  chart.YAxis{Name: "ψ(x)"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "ψ(x)", XValues: xs, YValues: packet},
			chart.ContinuousSeries{
				Name:    "envelope",
				XValues: xs,
				YValues: upper,
				Style:   chart.Style{StrokeDashArray: []float64{5, 5}},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func renderHiggsPotential(p map[string]float64, w io.Writer) error {
	vev := p["vev"]
	lambda := p["coupling"]

	xs, ys := sample(-2*vev, 2*vev, samples, func(phi float64) float64 {
		d := phi*phi - vev*vev
		return lambda * d * d
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("Higgs potential, v = %.2f, λ = %.2f", vev, lambda),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "φ"},
		YAxis:  chart.YAxis{Name: "V(φ)"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "V(φ) = λ(φ²-v²)²", XValues: xs, YValues: ys},
		},
	}
	return graph.Render(chart.PNG, w)
}

func renderCouplingUnification(p map[string]float64, w io.Writer) error {
	decades := p["decades"]

	// Schematic running of the inverse couplings: linear in log10(μ/GeV),
	// converging near 10^14 GeV.
	xs, a1 := sample(0, decades, samples, func(t float64) float64 { return 59 - 2.2*t })
	_, a2 := sample(0, decades, samples, func(t float64) float64 { return 29.6 - 0.1*t })
	_, a3 := sample(0, decades, samples, func(t float64) float64 { return 8.5 + 1.4*t })

	graph := chart.Chart{
		Title:  "Running gauge couplings",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "log10(μ / GeV)"},
		YAxis:  chart.YAxis{Name: "α⁻¹"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "α₁⁻¹", XValues: xs, YValues: a1},
			chart.ContinuousSeries{Name: "α₂⁻¹", XValues: xs, YValues: a2},
			chart.ContinuousSeries{Name: "α₃⁻¹", XValues: xs, YValues: a3},
		},
	}
	return graph.Render(chart.PNG, w)
}
