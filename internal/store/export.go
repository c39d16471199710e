package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/sweep"
)

// Vertex is one cycle vertex in the exchange format.
type Vertex struct {
	Index          int     `json:"index"`
	Label          string  `json:"label"`
	Pressure       float64 `json:"pressure"`
	Volume         float64 `json:"volume"`
	Temperature    float64 `json:"temperature"`
	Entropy        float64 `json:"entropy"`
	CumulativeWork float64 `json:"cumulative_work"`
}

// CycleExport is the raw-data export of one computed cycle.
type CycleExport struct {
	Cycle       string   `json:"cycle"`
	Gas         string   `json:"gas"`
	Tau         float64  `json:"tau"`
	CutoffRatio float64  `json:"cutoff_ratio,omitempty"`
	Vertices    []Vertex `json:"vertices"`
	NetWork     float64  `json:"net_work"`
	HeatIn      float64  `json:"heat_in"`
	HeatOut     float64  `json:"heat_out"`
	Efficiency  float64  `json:"efficiency"`
}

// SweepExport is the raw-data export of a sensitivity sweep. Failed
// samples carry their error text and no efficiency.
type SweepExport struct {
	Cycle   string        `json:"cycle"`
	Gas     string        `json:"gas"`
	Samples []SweepSample `json:"samples"`
	Failed  int           `json:"failed"`
}

type SweepSample struct {
	Tau        float64 `json:"tau"`
	Efficiency float64 `json:"efficiency"`
	NetWork    float64 `json:"net_work"`
	Error      string  `json:"error,omitempty"`
}

// ExportCycle flattens a result into the exchange structure.
func ExportCycle(res *cycle.Result) CycleExport {
	out := CycleExport{
		Cycle:       res.Spec.Type.String(),
		Gas:         res.Gas.Kind.String(),
		Tau:         res.Spec.CompressionRatio,
		CutoffRatio: res.CutoffRatio,
		Vertices:    make([]Vertex, 4),
		NetWork:     res.NetWork,
		HeatIn:      res.HeatIn,
		HeatOut:     res.HeatOut,
		Efficiency:  res.Efficiency,
	}
	for i, st := range res.States {
		out.Vertices[i] = Vertex{
			Index:          i,
			Label:          cycle.Labels[i],
			Pressure:       st.Pressure,
			Volume:         st.Volume,
			Temperature:    st.Temperature,
			Entropy:        st.Entropy,
			CumulativeWork: res.CumulativeWork[i],
		}
	}
	return out
}

// ExportSweep flattens a sweep result into the exchange structure.
func ExportSweep(cycleName, gasName string, res *sweep.Result) SweepExport {
	out := SweepExport{
		Cycle:   cycleName,
		Gas:     gasName,
		Samples: make([]SweepSample, len(res.Samples)),
		Failed:  res.Failed,
	}
	for i, s := range res.Samples {
		out.Samples[i] = SweepSample{Tau: s.Tau, Efficiency: s.Efficiency, NetWork: s.NetWork}
		if s.Err != nil {
			out.Samples[i].Error = s.Err.Error()
		}
	}
	return out
}

// WriteCycleJSON encodes a result as indented JSON.
func WriteCycleJSON(w io.Writer, res *cycle.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportCycle(res))
}

// ParseCycleJSON parses the exchange format back; with JSON's default
// float64 handling the round trip is lossless.
func ParseCycleJSON(data []byte) (*CycleExport, error) {
	var out CycleExport
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WriteSweepJSON encodes a sweep as indented JSON.
func WriteSweepJSON(w io.Writer, cycleName, gasName string, res *sweep.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportSweep(cycleName, gasName, res))
}

// WriteCycleCSV writes the vertex table as CSV.
func WriteCycleCSV(w io.Writer, res *cycle.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"index", "label", "pressure", "volume", "temperature", "entropy", "cumulative_work"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, v := range ExportCycle(res).Vertices {
		row := []string{
			strconv.Itoa(v.Index),
			v.Label,
			strconv.FormatFloat(v.Pressure, 'g', -1, 64),
			strconv.FormatFloat(v.Volume, 'g', -1, 64),
			strconv.FormatFloat(v.Temperature, 'g', -1, 64),
			strconv.FormatFloat(v.Entropy, 'g', -1, 64),
			strconv.FormatFloat(v.CumulativeWork, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSweepCSV writes the sweep samples as CSV.
func WriteSweepCSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"tau", "efficiency", "net_work", "error"}); err != nil {
		return err
	}
	for _, s := range res.Samples {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		row := []string{
			strconv.FormatFloat(s.Tau, 'g', -1, 64),
			strconv.FormatFloat(s.Efficiency, 'g', -1, 64),
			strconv.FormatFloat(s.NetWork, 'g', -1, 64),
			errText,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
