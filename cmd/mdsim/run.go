package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/report"
	"github.com/san-kum/mdsim/internal/sim"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if mode, _ := cmd.Flags().GetString("profile"); mode != "" {
		stop, err := startProfile(mode)
		if err != nil {
			return err
		}
		defer stop()
	}

	ff, ffName, err := buildForceField(cfg)
	if err != nil {
		return err
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	for _, m := range metrics.Defaults() {
		opts = append(opts, sim.WithMetric(m))
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	var out *report.Text
	if !quiet {
		out = report.NewText(os.Stdout)
		opts = append(opts, sim.WithObserver(out))
	}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		reg := prometheus.NewRegistry()
		exp, err := metrics.NewExporter(reg)
		if err != nil {
			return err
		}
		opts = append(opts, sim.WithObserver(exp))

		stop := serveMetrics(addr, reg, logger)
		defer stop()
	}

	s, err := sim.New(cfg.Sim(), ff, opts...)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		zap.String("force_field", ffName),
		zap.Int("steps", cfg.Steps),
		zap.Float64("dt", cfg.Dt),
	)

	result, err := s.Run(cfg.Steps, cfg.Dt)
	if err != nil {
		return err
	}

	if out != nil {
		if err := out.Done(); err != nil {
			return err
		}
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		runID, err := saveRun(cfg, ffName, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved run %s (energy drift %.3e)\n", runID, result.EnergyDrift)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ff, ffName, err := buildForceField(cfg)
	if err != nil {
		return err
	}

	// Log output would tear the terminal view, so the simulator stays silent.
	ms := metrics.Defaults()
	opts := make([]sim.Option, 0, len(ms))
	for _, m := range ms {
		opts = append(opts, sim.WithMetric(m))
	}

	s, err := sim.New(cfg.Sim(), ff, opts...)
	if err != nil {
		return err
	}

	fps, _ := cmd.Flags().GetInt("fps")
	perFrame, _ := cmd.Flags().GetInt("steps-per-frame")
	title := fmt.Sprintf("%s | %d particles | box %g", ffName, cfg.Particles, cfg.BoxSize)

	final, err := viz.Run(viz.NewModel(s, title, cfg.Steps, cfg.Dt, perFrame, fps))
	if err != nil {
		return err
	}
	if final.Err() != nil {
		return final.Err()
	}

	if save, _ := cmd.Flags().GetBool("save"); save && len(final.Reports()) > 0 {
		result := dynamo.NewResult(final.Reports())
		for _, m := range ms {
			result.Metrics[m.Name()] = m.Value()
		}
		runID, err := saveRun(cfg, ffName, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s (%d steps)\n", runID, result.StepsTaken)
	}
	return nil
}

func saveRun(cfg *config.Config, ffName string, result *dynamo.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	meta := storage.RunMetadata{
		BoxSize:    cfg.BoxSize,
		Particles:  cfg.Particles,
		Dt:         cfg.Dt,
		ForceField: ffName,
	}
	if cfg.Plugin == "" && cfg.ForceField == "lj" {
		meta.Cutoff = cfg.Cutoff
	}
	return st.Save(meta, result)
}

func startProfile(mode string) (func(), error) {
	var opt func(*profile.Profile)
	switch mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	default:
		return nil, fmt.Errorf("unknown profile mode: %s (want cpu or mem)", mode)
	}
	p := profile.Start(opt, profile.ProfilePath(dataDir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}

// serveMetrics exposes reg on addr until the returned func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
