package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/forcefield"
	"github.com/san-kum/mdsim/internal/storage"
)

var (
	dataDir  string
	logLevel string
)

// main registers the mdsim commands and exits with status 1 if the selected
// command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "mdsim",
		Short:         "molecular dynamics with pluggable force fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print per-step energies",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Bool("quiet", false, "do not print per-step reports")
	runCmd.Flags().String("metrics-addr", "", "serve prometheus metrics on this address while running")
	runCmd.Flags().String("profile", "", "write a profile to the data directory (cpu, mem)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Int("fps", 30, "frame rate")
	liveCmd.Flags().Int("steps-per-frame", 1, "integration steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energies of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("%-10s %4d particles  box %-5g %-5s %d steps\n",
					name, p.Particles, p.BoxSize, p.ForceField, p.Steps)
			}
		},
	}

	forceFieldsCmd := &cobra.Command{
		Use:   "forcefields",
		Short: "list built-in force fields",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range forcefield.NewRegistry().List() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, forceFieldsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// addSimFlags registers the flags shared by run and live. Every simulation
// flag can also be set through an MDSIM_ environment variable, e.g.
// MDSIM_FORCE_FIELD=ideal.
func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("box", config.DefaultBoxSize, "cubic box edge length")
	f.Int("particles", config.DefaultParticles, "number of particles")
	f.Int("steps", config.DefaultSteps, "number of integration steps")
	f.Float64("dt", config.DefaultDt, "timestep")
	f.Float64("cutoff", forcefield.DefaultCutoff, "cutoff radius of the built-in lj force field (not used with --plugin)")
	f.String("force-field", config.DefaultForceField, "built-in force field")
	f.String("plugin", "", "force field plugin (.so), overrides --force-field")
	f.Bool("validate", false, "fail on non-finite energies")
	f.Bool("save", false, "save the run to the data directory")
	f.String("config", "", "config file path (yaml)")
	f.String("preset", "", "use preset configuration")
}
