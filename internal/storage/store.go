package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/mdsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	energiesFile = "energies.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	BoxSize     float64            `json:"box_size"`
	Particles   int                `json:"particles"`
	Steps       int                `json:"steps"`
	Dt          float64            `json:"dt"`
	ForceField  string             `json:"force_field"`
	Cutoff      float64            `json:"cutoff,omitempty"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata and energy series under a new run id.
// ID, Timestamp, Steps, EnergyDrift and Metrics are filled from result.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", meta.ForceField, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeEnergies(filepath.Join(runDir, energiesFile), result.Reports); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeEnergies(path string, reports []dynamo.StepReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "potential", "kinetic", "total"}); err != nil {
		return err
	}
	for _, r := range reports {
		row := []string{
			strconv.Itoa(r.Step),
			strconv.FormatFloat(r.Potential, 'g', -1, 64),
			strconv.FormatFloat(r.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(r.Total, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns the stored runs, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadEnergies reads back the step reports of a run.
func (s *Store) LoadEnergies(runID string) ([]dynamo.StepReport, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, energiesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.StepReport{}, nil
	}

	reports := make([]dynamo.StepReport, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 4 {
			return nil, fmt.Errorf("%s line %d: expected 4 fields, got %d", energiesFile, i+2, len(record))
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", energiesFile, i+2, err)
		}
		var vals [3]float64
		for k := range vals {
			vals[k], err = strconv.ParseFloat(record[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", energiesFile, i+2, err)
			}
		}
		reports = append(reports, dynamo.StepReport{
			Step:      step,
			Potential: vals[0],
			Kinetic:   vals[1],
			Total:     vals[2],
		})
	}
	return reports, nil
}
