package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/spikenet/datarecording"
	"github.com/sarchlab/spikenet/monitoring"
	"github.com/sarchlab/spikenet/report"
	"github.com/sarchlab/spikenet/rng"
	"github.com/sarchlab/spikenet/simulation"
)

var (
	runSeed    uint64
	runSteps   uint64
	runMonitor bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and write its reports.",
	Long: `run builds the configured network, advances it for the configured ` +
		`number of steps and writes <prefix>_params.txt, ` +
		`<prefix>_samples.txt and <prefix>_spikes.txt.`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0,
		"seed of the sampling source, overriding the configuration")
	runCmd.Flags().Uint64Var(&runSteps, "steps", 0,
		"number of ticks, overriding the configuration")
	runCmd.Flags().BoolVar(&runMonitor, "monitor", false,
		"serve the monitoring web page while running")

	rootCmd.AddCommand(runCmd)
}

type reportFiles struct {
	params, samples, spikes *os.File
}

func createReportFiles(prefix string) (*reportFiles, error) {
	files := &reportFiles{}

	for _, f := range []struct {
		dst    **os.File
		suffix string
	}{
		{&files.params, "_params.txt"},
		{&files.samples, "_samples.txt"},
		{&files.spikes, "_spikes.txt"},
	} {
		file, err := os.Create(prefix + f.suffix)
		if err != nil {
			_ = files.close()
			return nil, err
		}
		*f.dst = file
	}

	return files, nil
}

func (f *reportFiles) close() error {
	var errs []error
	for _, file := range []*os.File{f.params, f.samples, f.spikes} {
		if file != nil {
			errs = append(errs, file.Close())
		}
	}

	return errors.Join(errs...)
}

func runSimulation(cmd *cobra.Command, _ []string) (err error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = runSeed
	}
	if cmd.Flags().Changed("steps") {
		cfg.Run.Steps = runSteps
	}
	if cmd.Flags().Changed("monitor") {
		cfg.Monitor.Enabled = runMonitor
	}

	source := rng.New(cfg.Run.Seed)

	net, counts, err := buildNetwork(cfg, source, logger)
	if err != nil {
		return err
	}

	files, err := createReportFiles(cfg.Output.Prefix)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, files.close())
	}()

	if err := report.WriteParams(files.params, net); err != nil {
		return fmt.Errorf("writing parameters: %w", err)
	}

	reportHook, err := report.NewHook(net, counts, files.samples, files.spikes)
	if err != nil {
		return fmt.Errorf("writing samples header: %w", err)
	}

	builder := simulation.MakeBuilder().
		WithNetwork(net).
		WithSource(source).
		WithInputMean(cfg.Run.InputMean).
		WithInputSD(cfg.Run.InputSD).
		WithLogger(logger)

	if cfg.Output.Database {
		recorder, recErr := datarecording.New(cfg.Output.DatabasePath)
		if recErr != nil {
			return recErr
		}
		defer func() {
			err = errors.Join(err, recorder.Close())
		}()

		builder = builder.WithDataRecorder(recorder, report.Samples(net, counts)...)
	}

	sim := builder.Build()
	sim.AcceptHook(reportHook)

	if cfg.Monitor.Enabled {
		monitor := monitoring.NewMonitor().
			WithLogger(logger).
			WithPortNumber(cfg.Monitor.Port).
			WithBrowser(cfg.Monitor.OpenBrowser)
		monitor.RegisterSimulation(sim)
		sim.AcceptHook(monitoring.NewProgressHook(monitor, "simulation", cfg.Run.Steps))

		url, err := monitor.StartServer()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Monitoring simulation with %s\n", url)

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = monitor.StopServer(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := sim.Run(ctx, cfg.Run.Steps); err != nil {
		return err
	}

	if err := reportHook.Err(); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	return sim.RecordingErr()
}
