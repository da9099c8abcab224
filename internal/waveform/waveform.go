package waveform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	duration   = 1.0
	sampleRate = 100

	chartWidth  = 640
	chartHeight = 480
	jpegQuality = 90

	chartTitle = "Two sine waves"
	xAxisLabel = "Time [s]"
	yAxisLabel = "Amplitude"
)

var (
	firstWaveColor  = drawing.ColorFromHex("1f77b4")
	secondWaveColor = drawing.ColorFromHex("ff7f0e")
	gridColor       = drawing.ColorFromHex("d9d9d9")
)

// Params describes the two waves: y = amp * sin(2π * freq * t + phase).
type Params struct {
	Amp1   float64
	Amp2   float64
	Freq1  float64
	Freq2  float64
	Phase1 float64
	Phase2 float64
}

func DefaultParams() Params {
	return Params{Amp1: 1, Amp2: 1, Freq1: 1, Freq2: 2, Phase1: 0, Phase2: 0}
}

// Samples returns the shared time axis and both waves. The axis holds
// sampleRate*duration evenly spaced points including both endpoints.
func Samples(p Params) (xs, y1, y2 []float64) {
	n := int(sampleRate * duration)
	xs = make([]float64, n)
	y1 = make([]float64, n)
	y2 = make([]float64, n)

	step := duration / float64(n-1)
	for i := range n {
		x := float64(i) * step
		xs[i] = x
		y1[i] = p.Amp1 * math.Sin(2*math.Pi*p.Freq1*x+p.Phase1)
		y2[i] = p.Amp2 * math.Sin(2*math.Pi*p.Freq2*x+p.Phase2)
	}
	return xs, y1, y2
}

// Generate renders the chart for p. The result carries no data-URI prefix.
// Identical parameters always yield identical output.
func Generate(p Params) (string, error) {
	xs, y1, y2 := Samples(p)

	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	graph := chart.Chart{
		Title:  chartTitle,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           xAxisLabel,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           yAxisLabel,
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "y1",
				XValues: xs,
				YValues: y1,
				Style:   chart.Style{StrokeColor: firstWaveColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "y2",
				XValues: xs,
				YValues: y2,
				Style:   chart.Style{StrokeColor: secondWaveColor, StrokeWidth: 2},
			},
		},
	}

	var pngBuf bytes.Buffer
	if err := graph.Render(chart.PNG, &pngBuf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}

	img, err := png.Decode(&pngBuf)
	if err != nil {
		return "", fmt.Errorf("failed to decode chart: %w", err)
	}

	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return base64.StdEncoding.EncodeToString(jpegBuf.Bytes()), nil
}
