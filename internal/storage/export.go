package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/Technologicat/materials/internal/loading"
)

type ExportData struct {
	Model           string             `json:"model"`
	Params          map[string]float64 `json:"params,omitempty"`
	Path            string             `json:"path"`
	Steps           int                `json:"steps"`
	TotalIterations int                `json:"total_iterations"`
	Times           []float64          `json:"times"`
	Strains         [][6]float64       `json:"strains"`
	Stresses        [][6]float64       `json:"stresses"`
	Iterations      []int              `json:"iterations"`
	Metrics         map[string]float64 `json:"metrics"`
}

func NewExportData(info RunInfo, result *loading.Result) ExportData {
	n := len(result.Records)
	data := ExportData{
		Model:           info.Model,
		Params:          info.Params,
		Path:            info.Path,
		TotalIterations: result.TotalIterations,
		Times:           make([]float64, n),
		Strains:         make([][6]float64, n),
		Stresses:        make([][6]float64, n),
		Iterations:      make([]int, n),
		Metrics:         result.Metrics,
	}
	if n > 0 {
		data.Steps = n - 1
	}
	for i, r := range result.Records {
		data.Times[i] = r.Time
		data.Strains[i] = r.Strain
		data.Stresses[i] = r.Stress
		data.Iterations[i] = r.Iterations
	}
	return data
}

func ExportJSON(w io.Writer, info RunInfo, result *loading.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExportData(info, result))
}

// WriteHistory writes records in the history.csv layout.
func WriteHistory(w io.Writer, records []loading.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(formatRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
