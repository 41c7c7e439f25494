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

	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/voigt"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
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

// RunInfo describes the run being saved.
type RunInfo struct {
	Model   string
	Params  map[string]float64
	Path    string
	MaxIter int
	Tol     float64
	Err     error
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Model           string             `json:"model"`
	Params          map[string]float64 `json:"params"`
	Path            string             `json:"path"`
	Timestamp       time.Time          `json:"timestamp"`
	Steps           int                `json:"steps"`
	Duration        float64            `json:"duration"`
	MaxIter         int                `json:"max_iter"`
	Tol             float64            `json:"tol"`
	TotalIterations int                `json:"total_iterations"`
	Metrics         map[string]float64 `json:"metrics"`
	Error           string             `json:"error,omitempty"`
}

var historyHeader = []string{
	"step", "kind", "time",
	"eps1", "eps2", "eps3", "eps4", "eps5", "eps6",
	"sig1", "sig2", "sig3", "sig4", "sig5", "sig6",
	"iterations", "residual",
}

// Save writes one run directory. Partial results of a failed run are
// stored with the failure recorded in the metadata.
func (s *Store) Save(info RunInfo, result *loading.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Model, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Model:           info.Model,
		Params:          info.Params,
		Path:            info.Path,
		Timestamp:       now,
		MaxIter:         info.MaxIter,
		Tol:             info.Tol,
		TotalIterations: result.TotalIterations,
		Metrics:         result.Metrics,
	}
	if n := len(result.Records); n > 0 {
		meta.Steps = n - 1
		meta.Duration = result.Records[n-1].Time - result.Records[0].Time
	}
	if info.Err != nil {
		meta.Error = info.Err.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, historyFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteHistory(f, result.Records); err != nil {
		return "", err
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

func (s *Store) LoadHistory(runID string) ([]loading.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, historyFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []loading.Record{}, nil
	}

	records := make([]loading.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", historyFile, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func formatRecord(r loading.Record) []string {
	row := make([]string, 0, len(historyHeader))
	row = append(row, strconv.Itoa(r.Step), string(r.Kind), strconv.FormatFloat(r.Time, 'g', -1, 64))
	for _, v := range r.Strain {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	for _, v := range r.Stress {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row, strconv.Itoa(r.Iterations), strconv.FormatFloat(r.Residual, 'g', -1, 64))
	return row
}

func parseRecord(row []string) (loading.Record, error) {
	var r loading.Record
	if len(row) != len(historyHeader) {
		return r, fmt.Errorf("expected %d fields, got %d", len(historyHeader), len(row))
	}

	var err error
	if r.Step, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	r.Kind = loading.Kind(row[1])
	if r.Time, err = strconv.ParseFloat(row[2], 64); err != nil {
		return r, err
	}
	if r.Strain, err = parseVector(row[3:9]); err != nil {
		return r, err
	}
	if r.Stress, err = parseVector(row[9:15]); err != nil {
		return r, err
	}
	if r.Iterations, err = strconv.Atoi(row[15]); err != nil {
		return r, err
	}
	if r.Residual, err = strconv.ParseFloat(row[16], 64); err != nil {
		return r, err
	}
	return r, nil
}

func parseVector(fields []string) (voigt.Vector, error) {
	var v voigt.Vector
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return v, err
		}
		v[i] = x
	}
	return v, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
