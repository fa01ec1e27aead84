package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/sim"
)

type Report struct {
	Name             string             `json:"name,omitempty"`
	Width            float64            `json:"width"`
	Height           float64            `json:"height"`
	Particles        int                `json:"particles"`
	Generation       uint64             `json:"generation"`
	Frames           uint64             `json:"frames"`
	Circles          int                `json:"circles"`
	Lines            int                `json:"lines"`
	MeanDisplacement float64            `json:"mean_displacement"`
	Pointer          [2]float64         `json:"pointer"`
	Metrics          map[string]float64 `json:"metrics,omitempty"`
	Snapshot         string             `json:"snapshot,omitempty"`
}

// Collect builds a Report from the simulation state, the last frame drawn
// and any metrics observed during the run.
func Collect(name string, s *mesh.Simulation, last sim.FrameStats, metrics ...sim.Metric) Report {
	vp := s.Viewport()
	ptr := s.Pointer()
	r := Report{
		Name:             name,
		Width:            vp.W,
		Height:           vp.H,
		Particles:        s.Len(),
		Generation:       s.Generation(),
		Frames:           s.Steps(),
		Circles:          last.Circles,
		Lines:            last.Lines,
		MeanDisplacement: s.MeanDisplacement(),
		Pointer:          [2]float64{ptr.X, ptr.Y},
	}
	if len(metrics) > 0 {
		r.Metrics = make(map[string]float64, len(metrics))
		for _, m := range metrics {
			r.Metrics[m.Name()] = m.Value()
		}
	}
	return r
}

func WriteJSON(w io.Writer, reports ...Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(reports) == 1 {
		return encoder.Encode(reports[0])
	}
	return encoder.Encode(reports)
}

func ExportJSON(path string, reports ...Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, reports...)
}

func ExportJSONStdout(reports ...Report) error {
	return WriteJSON(os.Stdout, reports...)
}

// WriteSummary prints an aligned, human-readable table.
func WriteSummary(w io.Writer, reports ...Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVIEWPORT\tPARTICLES\tFRAMES\tLINES\tDISPLACEMENT")
	for _, r := range reports {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%.0fx%.0f\t%d\t%d\t%d\t%.3f\n",
			name, r.Width, r.Height, r.Particles, r.Frames, r.Lines, r.MeanDisplacement)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range reports {
		if len(r.Metrics) == 0 {
			continue
		}
		keys := make([]string, 0, len(r.Metrics))
		for k := range r.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "\n%s metrics:\n", nameOr(r.Name))
		for _, k := range keys {
			fmt.Fprintf(w, "  %-14s %.4f\n", k, r.Metrics[k])
		}
	}
	return nil
}

func nameOr(s string) string {
	if s == "" {
		return "run"
	}
	return s
}
