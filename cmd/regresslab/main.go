// Command regresslab runs the model comparison study end to end, printing the
// comparison table and optionally writing a JSON report and an HTML chart
// page.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/gostatslab/regresslab"
	"github.com/pkg/profile"
)

func main() {
	var (
		seed       = flag.Uint64("seed", 1, "seed for synthetic data generation and resampling")
		n          = flag.Int("n", 200, "number of generated observations")
		numTrain   = flag.Int("train", 20, "number of observations in the training split")
		reportPath = flag.String("report", "", "path to write the JSON report, skipped if empty")
		plotPath   = flag.String("plot", "", "path to write the HTML chart page, skipped if empty")
		cpuProfile = flag.Bool("cpuprofile", false, "write a CPU profile to the current directory")
	)
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*seed, *n, *numTrain, *reportPath, *plotPath); err != nil {
		slog.Error("unable to run study", "error", err.Error())
		os.Exit(1)
	}
}

func run(seed uint64, n, numTrain int, reportPath, plotPath string) error {
	opt := regresslab.NewDefaultOptions()
	opt.Seed = seed
	opt.NumInstances = n
	opt.NumTrain = numTrain

	study, err := regresslab.New(opt)
	if err != nil {
		return fmt.Errorf("unable to initialize study, %w", err)
	}
	if err := study.Run(); err != nil {
		return fmt.Errorf("unable to run study, %w", err)
	}

	comparison, err := study.Comparison()
	if err != nil {
		return err
	}
	if err := comparison.TablePrint(os.Stdout); err != nil {
		return fmt.Errorf("unable to print comparison table, %w", err)
	}

	if reportPath != "" {
		report, err := study.Report()
		if err != nil {
			return err
		}
		bytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to marshal report, %w", err)
		}
		if err := os.WriteFile(reportPath, bytes, 0o644); err != nil {
			return fmt.Errorf("unable to write report, %w", err)
		}
	}

	if plotPath != "" {
		file, err := os.Create(plotPath)
		if err != nil {
			return fmt.Errorf("unable to create plot file, %w", err)
		}
		defer file.Close()

		if err := study.PlotResults(file); err != nil {
			return fmt.Errorf("unable to render plots, %w", err)
		}
	}
	return nil
}
