// Package store persists computed cycles under a data directory, one
// subdirectory per run holding metadata.json and the sampled cycle points
// as CSV, and implements the JSON/CSV exchange formats for raw-data export.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bohounsoun/thermosim/internal/cycle"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Cycle     string             `json:"cycle"`
	Gas       string             `json:"gas"`
	Timestamp time.Time          `json:"timestamp"`
	Tau       float64            `json:"tau"`
	Cutoff    float64            `json:"cutoff,omitempty"`
	PeakTemp  float64            `json:"peak_temp"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Point is one sampled cycle point as stored on disk.
type Point struct {
	Leg         string
	Volume      float64
	Pressure    float64
	Temperature float64
	Entropy     float64
}

// Save writes one run directory and returns its ID.
func (s *Store) Save(res *cycle.Result, curves [4]cycle.Curve) (string, error) {
	runID := fmt.Sprintf("%s_%d", res.Spec.Type, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Cycle:     res.Spec.Type.String(),
		Gas:       res.Gas.Kind.String(),
		Timestamp: time.Now(),
		Tau:       res.Spec.CompressionRatio,
		Cutoff:    res.CutoffRatio,
		PeakTemp:  res.Spec.PeakTemperature,
		Metrics: map[string]float64{
			"net_work":   res.NetWork,
			"heat_in":    res.HeatIn,
			"heat_out":   res.HeatOut,
			"efficiency": res.Efficiency,
		},
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	exportFile, err := os.Create(filepath.Join(runDir, "cycle.json"))
	if err != nil {
		return "", err
	}
	defer exportFile.Close()
	if err := WriteCycleJSON(exportFile, res); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"leg", "volume", "pressure", "temperature", "entropy"}); err != nil {
		return "", err
	}
	for _, curve := range curves {
		for i := range curve.Volume {
			row := []string{
				curve.Leg,
				strconv.FormatFloat(curve.Volume[i], 'g', -1, 64),
				strconv.FormatFloat(curve.Pressure[i], 'g', -1, 64),
				strconv.FormatFloat(curve.Temperature[i], 'g', -1, 64),
				strconv.FormatFloat(curve.Entropy[i], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadExport reads back the exchange document written at save time.
func (s *Store) LoadExport(runID string) (*CycleExport, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "cycle.json"))
	if err != nil {
		return nil, err
	}
	return ParseCycleJSON(data)
}

func (s *Store) LoadPoints(runID string) ([]Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []Point{}, nil
	}

	points := make([]Point, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 5 {
			continue
		}
		var p Point
		p.Leg = row[0]
		if p.Volume, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("bad volume in %s: %w", runID, err)
		}
		if p.Pressure, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("bad pressure in %s: %w", runID, err)
		}
		if p.Temperature, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("bad temperature in %s: %w", runID, err)
		}
		if p.Entropy, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("bad entropy in %s: %w", runID, err)
		}
		points = append(points, p)
	}

	return points, nil
}
