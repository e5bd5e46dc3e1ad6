// Command scaletrace replays a gesture script through the scale detector
// and reports what it recognised. It can dump every resampled grid point to
// CSV and plot raw against filtered span.
//
// Usage:
//
//	scaletrace -script pinch.yaml [-config tuning.yaml] [-csv out.csv] [-plot out.png] [-log-level debug]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phanxgames/scalegesture"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "scaletrace: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scaletrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scriptPath := fs.String("script", "", "gesture script (YAML or JSON)")
	configPath := fs.String("config", "", "detector config (YAML); defaults when empty")
	csvPath := fs.String("csv", "", "write resampled grid points to this CSV file")
	plotPath := fs.String("plot", "", "write a span plot to this image file")
	logLevel := fs.String("log-level", "info", "log level: error, warn, info, debug")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scriptPath == "" {
		fs.Usage()
		return errors.New("-script is required")
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := setupLogger(level, stderr)
	scalegesture.SetLogger(logger)
	defer scalegesture.SetLogger(nil)

	cfg := scalegesture.DefaultConfig()
	if *configPath != "" {
		cfg, err = scalegesture.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := scalegesture.ParseScript(data)
	if err != nil {
		return err
	}

	rec := newRecorder(logger)
	d := scalegesture.New(cfg, rec)
	d.SetTrace(rec.addSample)

	res, err := script.Play(d)
	if err != nil {
		return fmt.Errorf("play %s: %w", *scriptPath, err)
	}

	st := summarize(intervals(res.Frames))
	fmt.Fprintf(stdout, "frames: %d (ignored %d), grid points: %d\n",
		len(res.Frames), res.Ignored, len(rec.samples))
	fmt.Fprintf(stdout, "frame interval ms: mean %.2f, stddev %.2f, min %.2f, max %.2f\n",
		st.Mean, st.StdDev, st.Min, st.Max)
	fmt.Fprintf(stdout, "gestures: begin %d, scale %d, end %d\n", rec.begins, rec.scales, rec.ends)
	fmt.Fprintf(stdout, "scale factor range: %.4f .. %.4f\n", rec.minFactor, rec.maxFactor)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, rec.samples); err != nil {
			return err
		}
		logger.Info("wrote csv", "path", *csvPath, "rows", len(rec.samples))
	}
	if *plotPath != "" {
		if err := writePlot(*plotPath, filepath.Base(*scriptPath), rec.samples); err != nil {
			return err
		}
		logger.Info("wrote plot", "path", *plotPath)
	}
	return nil
}
