package storage

import (
	"encoding/json"
	"io"
)

// ExportData is a saved run as a single JSON document.
type ExportData struct {
	RunMetadata
	Potential []float64 `json:"potential"`
	Kinetic   []float64 `json:"kinetic"`
	Total     []float64 `json:"total"`
}

// Export writes the run's metadata and energy series to w as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	reports, err := s.LoadEnergies(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Potential:   make([]float64, len(reports)),
		Kinetic:     make([]float64, len(reports)),
		Total:       make([]float64, len(reports)),
	}
	for i, r := range reports {
		data.Potential[i] = r.Potential
		data.Kinetic[i] = r.Kinetic
		data.Total[i] = r.Total
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
