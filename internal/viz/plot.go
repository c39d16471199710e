// Package viz renders cycles and sweeps for the terminal: a rune-canvas
// P-V diagram, asciigraph line plots, and lipgloss-styled summaries.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/metrics"
	"github.com/bohounsoun/thermosim/internal/sweep"
)

// Leg marker runes in traversal order: compression, heat addition,
// expansion, rejection.
var legMarks = [4]rune{'.', '#', 'o', '+'}

// PVDiagram renders the sampled cycle as a scatter canvas in the P-V
// plane, volume in litres on x and pressure in bar on y. An optional
// frozen reference cycle is drawn underneath with faint dots; reference
// points outside the active bounds are clipped.
func PVDiagram(curves [4]cycle.Curve, width, height int, ref ...[4]cycle.Curve) string {
	if width < 10 {
		width = 70
	}
	if height < 5 {
		height = 20
	}

	vMin, vMax := curves[0].Volume[0], curves[0].Volume[0]
	pMin, pMax := curves[0].Pressure[0], curves[0].Pressure[0]
	for _, c := range curves {
		for i := range c.Volume {
			if c.Volume[i] < vMin {
				vMin = c.Volume[i]
			}
			if c.Volume[i] > vMax {
				vMax = c.Volume[i]
			}
			if c.Pressure[i] < pMin {
				pMin = c.Pressure[i]
			}
			if c.Pressure[i] > pMax {
				pMax = c.Pressure[i]
			}
		}
	}
	vRange := vMax - vMin
	pRange := pMax - pMin
	if vRange == 0 {
		vRange = 1
	}
	if pRange == 0 {
		pRange = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, overlay := range ref {
		for _, c := range overlay {
			for i := range c.Volume {
				px := int(float64(width-1) * (c.Volume[i] - vMin) / vRange)
				py := int(float64(height-1) * (c.Pressure[i] - pMin) / pRange)
				py = height - 1 - py
				if px >= 0 && px < width && py >= 0 && py < height {
					canvas[py][px] = '·'
				}
			}
		}
	}

	for legIdx, c := range curves {
		for i := range c.Volume {
			px := int(float64(width-1) * (c.Volume[i] - vMin) / vRange)
			py := int(float64(height-1) * (c.Pressure[i] - pMin) / pRange)
			py = height - 1 - py
			if px >= 0 && px < width && py >= 0 && py < height {
				canvas[py][px] = legMarks[legIdx]
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "  %6.1f ┌%s┐\n", pMax/1e5, strings.Repeat("─", width))
	for i := range canvas {
		if i == height/2 {
			fmt.Fprintf(&sb, "  %6.1f │", (pMax+pMin)/2e5)
		} else {
			sb.WriteString("         │")
		}
		sb.WriteString(string(canvas[i]))
		sb.WriteString("│\n")
	}
	fmt.Fprintf(&sb, "  %6.1f └%s┘\n", pMin/1e5, strings.Repeat("─", width))
	fmt.Fprintf(&sb, "         %.3f L%s%.3f L\n", vMin*1000, strings.Repeat(" ", max(1, width-14)), vMax*1000)
	sb.WriteString(Dim.Render("         . compression   # heat addition   o expansion   + rejection"))
	sb.WriteString("\n")
	return sb.String()
}

// TSDiagram plots temperature against relative entropy with asciigraph,
// concatenating the legs in traversal order.
func TSDiagram(curves [4]cycle.Curve, width, height int) string {
	var temps []float64
	for _, c := range curves {
		temps = append(temps, c.Temperature...)
	}
	return asciigraph.Plot(temps,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("T (K) along cycle path A->B->C->D->A"),
	)
}

// EfficiencyPlot renders a sweep's efficiency curve. Failed samples are
// plotted at the last known efficiency so the curve stays continuous;
// their count is reported in the caption.
func EfficiencyPlot(res *sweep.Result, width, height int) string {
	data := make([]float64, 0, len(res.Samples))
	last := 0.0
	for _, s := range res.Samples {
		if s.Err == nil {
			last = s.Efficiency * 100
		}
		data = append(data, last)
	}

	caption := "efficiency (%) vs compression ratio"
	if res.Failed > 0 {
		caption = fmt.Sprintf("%s (%d samples failed)", caption, res.Failed)
	}
	if len(res.Samples) > 0 {
		caption = fmt.Sprintf("%s, τ ∈ [%.1f, %.1f]", caption,
			res.Samples[0].Tau, res.Samples[len(res.Samples)-1].Tau)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Summary formats the vertex table and the headline numbers for one run.
func Summary(res *cycle.Result, perf *metrics.Performance) string {
	var sb strings.Builder

	sb.WriteString(Header.Render(fmt.Sprintf("%s cycle | %s gas | τ=%.1f", res.Spec.Type, res.Gas.Kind, res.Spec.CompressionRatio)))
	sb.WriteString("\n\n")

	sb.WriteString(Dim.Render("  pt      P (bar)       V (L)       T (K)    S (J/K)       W (J)"))
	sb.WriteString("\n")
	for i, st := range res.States {
		sb.WriteString(fmt.Sprintf("  %s  %11.3f %11.4f %11.1f %10.3f %11.1f\n",
			cycle.Labels[i], st.Pressure/1e5, st.Volume*1000, st.Temperature, st.Entropy, res.CumulativeWork[i]))
	}
	sb.WriteString("\n")

	line := func(label string, value string) {
		sb.WriteString("  ")
		sb.WriteString(MetricLabel.Render(fmt.Sprintf("%-14s", label)))
		sb.WriteString(MetricValue.Render(value))
		sb.WriteString("\n")
	}
	line("net work", fmt.Sprintf("%.1f J", res.NetWork))
	line("heat in", fmt.Sprintf("%.1f J", res.HeatIn))
	line("efficiency", fmt.Sprintf("%.2f %%", res.Efficiency*100))
	if res.Spec.Type == cycle.Diesel {
		line("cutoff ratio", fmt.Sprintf("%.3f", res.CutoffRatio))
	}
	if perf != nil {
		line("power", fmt.Sprintf("%.2f kW", perf.Power/1000))
		line("torque", fmt.Sprintf("%.1f N·m", perf.Torque))
		line("mep", fmt.Sprintf("%.2f bar", perf.MeanEffective/1e5))
	}

	return sb.String()
}
