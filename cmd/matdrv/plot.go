package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/storage"
	"github.com/Technologicat/materials/internal/viz"
)

var components = []string{"11", "22", "33", "23", "13", "12"}

func loadRun(runID string) (*storage.RunMetadata, []loading.Record, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	records, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("run %s has no history", runID)
	}
	return meta, records, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("path: %s\n", meta.Path)
	fmt.Printf("records: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(r loading.Record) float64
	}{
		{"ε11 vs step", func(r loading.Record) float64 { return r.Strain[0] }},
		{"σ11 vs step", func(r loading.Record) float64 { return r.Stress[0] }},
		{"iterations per step", func(r loading.Record) float64 { return float64(r.Iterations) }},
	}

	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func loopPlot(cmd *cobra.Command, args []string) error {
	if xComp < 0 || xComp > 5 || yComp < 0 || yComp > 5 {
		return errors.New("components must be in 0-5")
	}

	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, r := range records {
		xs[i] = r.Strain[xComp]
		ys[i] = r.Stress[yComp]
	}

	fmt.Printf("stress-strain loop: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: ε%s, y-axis: σ%s\n\n", components[xComp], components[yComp])

	width, height := 70, 20
	canvas := viz.NewCanvas(width, height)
	canvas.Plot(xs, ys)

	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(ys)

	fmt.Printf("%10.3f ┌%s┐\n", yMax, strings.Repeat("─", width))
	for i, row := range canvas.Grid {
		label := strings.Repeat(" ", 10)
		if i == height/2 {
			label = fmt.Sprintf("%10.3f", (yMax+yMin)/2)
		}
		fmt.Printf("%s │%s│\n", label, string(row))
	}
	fmt.Printf("%10.3f └%s┘\n", yMin, strings.Repeat("─", width))
	fmt.Printf("%12.3e%s%.3e\n", xMin, strings.Repeat(" ", width-20), xMax)
	return nil
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, records, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteHistory(os.Stdout, records)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	info := storage.RunInfo{Model: meta.Model, Params: meta.Params, Path: meta.Path, MaxIter: meta.MaxIter, Tol: meta.Tol}
	result := &loading.Result{Records: records, Metrics: meta.Metrics, TotalIterations: meta.TotalIterations}
	return storage.ExportJSON(os.Stdout, info, result)
}
