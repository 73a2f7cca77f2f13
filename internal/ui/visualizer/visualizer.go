// Package visualizer renders spectrum snapshots as terminal graphics.
package visualizer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/chime/internal/spectrum"
	"github.com/llehouerou/chime/internal/ui/styles"
)

// partialBlocks indexes lower-eighth block glyphs by eighths filled.
var partialBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇'}

// Render draws a snapshot into a width x height cell area. Off mode and
// empty frames render a centered hint instead.
func Render(snap spectrum.Snapshot, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	switch snap.Mode {
	case spectrum.ModeBars:
		if len(snap.Bars) == 0 {
			return placeholder("waiting for audio", width, height)
		}
		return renderBars(snap, width, height)
	case spectrum.ModeWaveform:
		if len(snap.Waveform) == 0 {
			return placeholder("waiting for audio", width, height)
		}
		return renderWaveform(snap, width, height)
	case spectrum.ModeOff:
	}
	return placeholder("visualizer off", width, height)
}

// renderBars draws one column per cell, filling upward with eighth-block
// resolution. Peak markers ride above the bars and share the row gradient.
func renderBars(snap spectrum.Snapshot, width, height int) string {
	bars := resample(snap.Bars, width)
	peaks := resample(snap.Peaks, width)
	ramp := styles.Ramp(height, styles.T().VizLow, styles.T().VizHigh)

	// eighths of a cell filled, per column
	levels := make([]int, width)
	for i, v := range bars {
		levels[i] = int(clamp01(v) * float64(height) * 8)
	}
	peakRows := make([]int, width)
	for i, v := range peaks {
		// row index from the top, -1 when the peak sits inside the bar
		row := height - 1 - int(clamp01(v)*float64(height-1))
		if levels[i] >= (height-row)*8 {
			row = -1
		}
		peakRows[i] = row
	}

	var b strings.Builder
	for row := range height {
		cells := make([]rune, width)
		floor := (height - 1 - row) * 8 // eighths below this row
		for col := range width {
			switch {
			case levels[col] >= floor+8:
				cells[col] = '█'
			case levels[col] > floor:
				cells[col] = partialBlocks[levels[col]-floor]
			case peakRows[col] == row:
				cells[col] = '▁'
			default:
				cells[col] = ' '
			}
		}
		// ramp runs quiet (bottom) to loud (top)
		style := lipgloss.NewStyle().Foreground(ramp[height-1-row])
		b.WriteString(style.Render(string(cells)))
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderWaveform draws a symmetric amplitude envelope around the center row.
func renderWaveform(snap spectrum.Snapshot, width, height int) string {
	wave := resample(snap.Waveform, width)
	style := lipgloss.NewStyle().Foreground(styles.T().Primary)
	centerStyle := styles.T().S().Subtle

	center := float64(height-1) / 2
	half := float64(height) / 2

	var b strings.Builder
	for row := range height {
		cells := make([]rune, width)
		dist := absf(float64(row) - center)
		for col := range width {
			amp := absf(wave[col]) * half
			switch {
			case amp >= dist && amp > 0.05:
				cells[col] = '█'
			case dist < 1:
				cells[col] = '─'
			default:
				cells[col] = ' '
			}
		}
		line := string(cells)
		if strings.ContainsRune(line, '█') {
			b.WriteString(style.Render(line))
		} else {
			b.WriteString(centerStyle.Render(line))
		}
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func placeholder(hint string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		styles.T().S().Subtle.Render(hint))
}

// resample stretches or shrinks src to n values, averaging buckets when
// shrinking.
func resample(src []float64, n int) []float64 {
	out := make([]float64, n)
	if len(src) == 0 {
		return out
	}
	for i := range n {
		lo := i * len(src) / n
		hi := (i + 1) * len(src) / n
		if hi <= lo {
			hi = lo + 1
		}
		var sum float64
		for _, v := range src[lo:min(hi, len(src))] {
			sum += v
		}
		out[i] = sum / float64(min(hi, len(src))-lo)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
