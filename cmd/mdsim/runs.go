package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mdsim/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFORCE FIELD\tTIME\tN\tBOX\tSTEPS\tDT\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\t%g\t%.3e\n",
			run.ID,
			run.ForceField,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.BoxSize,
			run.Steps,
			run.Dt,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	reports, err := st.LoadEnergies(runID)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("force field: %s\n", meta.ForceField)
	fmt.Printf("steps: %d\n\n", len(reports))

	potential := make([]float64, len(reports))
	kinetic := make([]float64, len(reports))
	total := make([]float64, len(reports))
	for i, r := range reports {
		potential[i] = r.Potential
		kinetic[i] = r.Kinetic
		total[i] = r.Total
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"potential energy", potential},
		{"kinetic energy", kinetic},
		{"total energy", total},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}
