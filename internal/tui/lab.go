// Package tui is the interactive virtual laboratory: a bubbletea program
// with live compression-ratio and peak-temperature controls, cycle and
// gas toggles, and a frozen-reference overlay for comparisons.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bohounsoun/thermosim/internal/config"
	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/gas"
	"github.com/bohounsoun/thermosim/internal/metrics"
	"github.com/bohounsoun/thermosim/internal/viz"
)

const (
	tauStep  = 0.5
	tauMin   = 1.5
	tauMax   = 30.0
	tempStep = 100.0
	tempMin  = 600.0
	tempMax  = 4000.0
)

// Model is the laboratory session. All interactive state lives here and
// is passed explicitly into the cycle engine on every recompute; nothing
// is process-global.
type Model struct {
	cfg *config.Config

	tau       float64
	peakTemp  float64
	cycleType cycle.Type
	gasKind   gas.Kind

	result *cycle.Result
	curves [4]cycle.Curve
	perf   *metrics.Performance
	err    error

	refCurves *[4]cycle.Curve
	refLabel  string
	refEta    float64

	width, height int
}

func New(cfg *config.Config) Model {
	m := Model{
		cfg:      cfg,
		tau:      cfg.Spec.Tau,
		peakTemp: cfg.Spec.PeakTemp,
		width:    100,
		height:   32,
	}
	if cfg.Cycle == "diesel" {
		m.cycleType = cycle.Diesel
	}
	if cfg.Gas.Model != "" && cfg.Gas.Model != "ideal" {
		m.gasKind = gas.VanDerWaals
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.tau = clamp(m.tau-tauStep, tauMin, tauMax)
		case "right", "l":
			m.tau = clamp(m.tau+tauStep, tauMin, tauMax)
		case "down", "j":
			m.peakTemp = clamp(m.peakTemp-tempStep, tempMin, tempMax)
		case "up", "k":
			m.peakTemp = clamp(m.peakTemp+tempStep, tempMin, tempMax)
		case "c":
			if m.cycleType == cycle.Otto {
				m.cycleType = cycle.Diesel
			} else {
				m.cycleType = cycle.Otto
			}
		case "g":
			if m.gasKind == gas.Ideal {
				m.gasKind = gas.VanDerWaals
			} else {
				m.gasKind = gas.Ideal
			}
		case "f":
			if m.err == nil {
				curves := m.curves
				m.refCurves = &curves
				m.refLabel = fmt.Sprintf("%s/%s τ=%.1f", m.cycleType, m.gasKind, m.tau)
				m.refEta = m.result.Efficiency
			}
			return m, nil
		case "x":
			m.refCurves = nil
			m.refLabel = ""
			return m, nil
		default:
			return m, nil
		}
		m.recompute()
	}
	return m, nil
}

func (m *Model) recompute() {
	cfg := *m.cfg
	cfg.Cycle = m.cycleType.String()
	cfg.Spec.Tau = m.tau
	cfg.Spec.PeakTemp = m.peakTemp
	cfg.Spec.Cutoff = 0
	if m.gasKind == gas.VanDerWaals {
		if cfg.Gas.Model == "" || cfg.Gas.Model == "ideal" {
			// Laboratory default real gas: nitrogen.
			cfg.Gas = *config.GetGasPreset("nitrogen")
		}
	} else {
		cfg.Gas = config.GasConfig{Model: "ideal", Gamma: cfg.Gas.Gamma}
		if cfg.Gas.Gamma == 0 {
			cfg.Gas.Gamma = config.DefaultGamma
		}
	}

	m.result, m.curves, m.perf, m.err = nil, [4]cycle.Curve{}, nil, nil

	engine, err := cfg.NewEngine()
	if err != nil {
		m.err = err
		return
	}
	spec, err := cfg.CycleSpec()
	if err != nil {
		m.err = err
		return
	}
	res, err := engine.Compute(spec)
	if err != nil {
		m.err = err
		return
	}
	curves, err := engine.Curves(res, cfg.CurveSamples())
	if err != nil {
		m.err = err
		return
	}
	perf, err := metrics.Compute(res, metrics.Params{
		Speed:        cfg.Engine.Speed,
		Cylinders:    cfg.Engine.Cylinders,
		Displacement: cfg.Engine.Displacement,
	})
	if err != nil {
		m.err = err
		return
	}

	m.result, m.curves, m.perf = res, curves, &perf
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(viz.Header.Render("thermosim virtual laboratory"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  cycle %s  gas %s   τ %s   T_max %s\n",
		viz.Cyan.Render(m.cycleType.String()),
		viz.Cyan.Render(m.gasKind.String()),
		viz.Yellow.Render(fmt.Sprintf("%.1f", m.tau)),
		viz.Yellow.Render(fmt.Sprintf("%.0f K", m.peakTemp))))

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(viz.Red.Render("  " + m.err.Error()))
		sb.WriteString("\n")
	} else {
		plotW := m.width - 14
		if plotW < 40 {
			plotW = 40
		}
		plotH := m.height - 14
		if plotH < 10 {
			plotH = 10
		}

		sb.WriteString("\n")
		if m.refCurves != nil {
			sb.WriteString(viz.PVDiagram(m.curves, plotW, plotH, *m.refCurves))
			delta := (m.result.Efficiency - m.refEta) * 100
			sb.WriteString(viz.Dim.Render(fmt.Sprintf("         vs %s: η %+.2f pts", m.refLabel, delta)))
			sb.WriteString("\n")
		} else {
			sb.WriteString(viz.PVDiagram(m.curves, plotW, plotH))
		}

		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  η %s   W %s   P %s   M %s\n",
			viz.MetricValue.Render(fmt.Sprintf("%.2f%%", m.result.Efficiency*100)),
			viz.MetricValue.Render(fmt.Sprintf("%.0f J", m.result.NetWork)),
			viz.MetricValue.Render(fmt.Sprintf("%.1f kW", m.perf.Power/1000)),
			viz.MetricValue.Render(fmt.Sprintf("%.1f N·m", m.perf.Torque))))
	}

	sb.WriteString("\n")
	sb.WriteString(viz.Dim.Render("  ←/→ ratio  ↑/↓ peak temp  c cycle  g gas  f freeze ref  x clear  q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run starts the laboratory.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(New(cfg))
	_, err := p.Run()
	return err
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
