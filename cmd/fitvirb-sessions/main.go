// Command fitvirb-sessions decodes a .fit file, runs the
// SessionSegmenter and SensorCalibrator, and writes a canonical-sample
// Parquet or CSV export plus a human-readable session summary, grounded
// on the teacher's pipeline.Run and cmd/fit_analyze, generalized from
// cycling metrics to VIRB recording sessions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kjordahl/fitvirb/canonicalsample"
	"github.com/kjordahl/fitvirb/fit"
	"github.com/kjordahl/fitvirb/fit/calibrate"
	"github.com/kjordahl/fitvirb/fit/domain"
	"github.com/kjordahl/fitvirb/fit/profile"
	"github.com/kjordahl/fitvirb/fit/session"
	"github.com/kjordahl/fitvirb/summary"
)

func main() {
	var (
		fitPath            = flag.String("fit", "", "Path to input .fit file")
		outDir             = flag.String("out", "", "Output directory")
		format             = flag.String("format", "parquet", "Canonical sample format: parquet|csv")
		requireCorrelation = flag.Bool("require-correlation", false, "Fail if the file carries no timestamp_correlation message")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --fit input.fit --out outdir [--format parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*fitPath) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*fitPath, *outDir, *format, *requireCorrelation); err != nil {
		fmt.Fprintf(os.Stderr, "fitvirb-sessions failed: %v\n", err)
		os.Exit(1)
	}
}

func run(fitPath, outDir, format string, requireCorrelation bool) error {
	data, err := os.ReadFile(fitPath)
	if err != nil {
		return fmt.Errorf("read fit file: %w", err)
	}

	messages, err := fit.NewDecoder(data).Decode()
	if err != nil {
		return fmt.Errorf("decode fit file: %w", err)
	}
	profile.Augment(messages)

	calibrated, err := calibrateSensors(messages)
	if err != nil {
		return fmt.Errorf("calibrate sensors: %w", err)
	}

	spans, err := session.Segment(messages)
	if err != nil {
		return fmt.Errorf("segment sessions: %w", err)
	}
	startTime, err := session.StartTime(messages, requireCorrelation)
	if err != nil {
		return fmt.Errorf("derive start time: %w", err)
	}

	samples, err := canonicalsample.Build(messages, startTime)
	if err != nil {
		return fmt.Errorf("build canonical samples: %w", err)
	}

	track, err := domain.GPSTrack(messages)
	if err != nil {
		return fmt.Errorf("project gps track: %w", err)
	}
	sessionSummary, err := summary.Summarize(messages, spans, track, startTime)
	if err != nil {
		return fmt.Errorf("summarize session: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	samplesPath, err := writeCanonicalSamples(outDir, format, samples)
	if err != nil {
		return err
	}

	summaryPath := filepath.Join(outDir, "summary.json")
	if err := writeJSON(summaryPath, sessionSummary); err != nil {
		return fmt.Errorf("write summary.json: %w", err)
	}

	if len(calibrated) > 0 {
		sensorsPath := filepath.Join(outDir, "calibrated_sensor_data.json")
		if err := writeJSON(sensorsPath, calibrated); err != nil {
			return fmt.Errorf("write calibrated_sensor_data.json: %w", err)
		}
	}

	notesPath := filepath.Join(outDir, "notes.txt")
	if err := os.WriteFile(notesPath, []byte(sessionSummary.Notes), 0o644); err != nil {
		return fmt.Errorf("write notes.txt: %w", err)
	}

	fmt.Printf("fitvirb-sessions complete\n")
	fmt.Printf("Output dir:        %s\n", outDir)
	fmt.Printf("Canonical samples: %s\n", samplesPath)
	fmt.Printf("Summary:           %s\n", summaryPath)
	fmt.Printf("Notes:             %s\n", notesPath)
	fmt.Printf("Sessions detected: %d\n", len(spans))
	for i, span := range spans {
		fmt.Printf("  session %d: messages [%d, %d], %d clip uuid(s)\n", i, span.Start, span.End, len(span.UUIDs))
	}
	return nil
}

func writeCanonicalSamples(outDir, format string, samples []canonicalsample.Sample) (string, error) {
	switch format {
	case "csv":
		path := filepath.Join(outDir, "canonical_samples.csv")
		if err := canonicalsample.WriteCSV(path, samples); err != nil {
			return "", fmt.Errorf("write canonical samples csv: %w", err)
		}
		return path, nil
	case "parquet", "":
		path := filepath.Join(outDir, "canonical_samples.parquet")
		if err := canonicalsample.WriteParquet(path, samples); err != nil {
			return "", fmt.Errorf("write canonical samples parquet: %w", err)
		}
		return path, nil
	default:
		return "", fmt.Errorf("unknown format %q, want parquet or csv", format)
	}
}

// calibrateSensors applies the most-recent-prior calibration to every
// sensor-data message of every sensor type present and returns the
// calibrated series keyed by sensor name, for callers that want the
// calibrated values alongside (not instead of) the raw decoded message.
func calibrateSensors(messages []fit.DataMessage) (map[string][]domain.SensorData, error) {
	out := make(map[string][]domain.SensorData)
	for _, st := range []domain.SensorType{
		domain.SensorAccelerometer, domain.SensorGyroscope,
		domain.SensorMagnetometer, domain.SensorBarometer,
	} {
		samples, err := domain.SensorDataSeries(messages, st)
		if err != nil {
			return nil, err
		}
		if len(samples) == 0 {
			continue
		}
		cal, err := domain.Calibrations(messages, st)
		if err != nil {
			return nil, err
		}
		calibrate.Apply(samples, cal)
		out[st.String()] = samples
	}
	return out, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
