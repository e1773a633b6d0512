package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// sample is one recorded data point: a tree of minimum degree T, after
// performing Operation, with the pager's cumulative counters at that
// instant and the per-op latency of the step that produced it.
type sample struct {
	Degree    int32
	Operation string
	LatencyNs int64
	Reads     uint64
	Writes    uint64
	Allocs    uint64
}

// writeCSV records one row per sample: degree, operation, latency, and the
// pager's cumulative counters at that point.
func writeCSV(w io.Writer, samples []sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Degree", "Operation", "LatencyNs", "Reads", "Writes", "Allocs"}); err != nil {
		return err
	}
	for _, s := range samples {
		err := cw.Write([]string{
			strconv.Itoa(int(s.Degree)),
			s.Operation,
			strconv.FormatInt(s.LatencyNs, 10),
			strconv.FormatUint(s.Reads, 10),
			strconv.FormatUint(s.Writes, 10),
			strconv.FormatUint(s.Allocs, 10),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderChart plots cumulative reads/writes/allocs against sample index
// for a single sweep run (the insert checkpoints, then the OLTP and OLAP
// passes), one line per counter, and saves it as a PNG.
func renderChart(path string, samples []sample, degree int32) error {
	reads := make(plotter.XYs, 0, len(samples))
	writes := make(plotter.XYs, 0, len(samples))
	allocs := make(plotter.XYs, 0, len(samples))
	for i, s := range samples {
		x := float64(i)
		reads = append(reads, plotter.XY{X: x, Y: float64(s.Reads)})
		writes = append(writes, plotter.XY{X: x, Y: float64(s.Writes)})
		allocs = append(allocs, plotter.XY{X: x, Y: float64(s.Allocs)})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("btree pager growth (t=%d)", degree)
	p.X.Label.Text = "checkpoint"
	p.Y.Label.Text = "cumulative count"

	readsLine, err := plotter.NewLine(reads)
	if err != nil {
		return err
	}
	writesLine, err := plotter.NewLine(writes)
	if err != nil {
		return err
	}
	allocsLine, err := plotter.NewLine(allocs)
	if err != nil {
		return err
	}
	writesLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	allocsLine.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}

	p.Add(readsLine, writesLine, allocsLine)
	p.Legend.Add("reads", readsLine)
	p.Legend.Add("writes", writesLine)
	p.Legend.Add("allocs", allocsLine)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
