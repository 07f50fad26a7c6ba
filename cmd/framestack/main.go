// Command framestack averages a set of aligned frames into one output
// frame. Inputs may be PNG/JPEG images or raw plane dumps; each input may
// carry a picture-type label suffix ("frame.png:P") that drives the
// weighted mean.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"framestack/internal/models"
	"framestack/pkg/aggregate"
	"framestack/pkg/config"
	"framestack/pkg/engine"
	"framestack/pkg/sample"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "framestack.yaml", "Path to YAML configuration file")
	outPath := flag.String("out", "output.png", "Output file (.png, .jpg, .gray, .raw, optionally .gz)")
	outKindName := flag.String("kind", "", "Output sample kind (u8, u10, u12, u16, f16, f32; default: same as sources)")
	modeName := flag.String("mode", "", "Aggregation mode: mean or median")
	preset := flag.Int("preset", 0, "Weight preset for the mean (0=balanced, 1=x264/5, 2=x264 grain, 3=x265 grain)")
	discard := flag.Int("discard", 0, "Number of extreme values trimmed from each end before averaging")
	weightsArg := flag.String("weights", "", "Custom I,P,B weight triple for the mean (e.g. 1.82,1.3,1)")
	workers := flag.Int("workers", 0, "Worker goroutines for the scan (0 = one per CPU core)")
	rawKindName := flag.String("raw-kind", "u8", "Sample kind of raw plane inputs")
	rawWidth := flag.Int("raw-width", 0, "Width of raw plane inputs in samples")
	rawHeight := flag.Int("raw-height", 0, "Height of raw plane inputs in samples")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", *configPath)
		return
	}

	// Load configuration; explicitly passed flags take precedence over it.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["mode"] {
		*modeName = cfg.Aggregation.Mode
	}
	if !set["preset"] {
		*preset = cfg.Aggregation.Preset
	}
	if !set["discard"] {
		*discard = cfg.Aggregation.Discard
	}
	if !set["kind"] {
		*outKindName = cfg.Output.Kind
	}
	if !set["workers"] {
		*workers = cfg.Processing.Workers
	}

	// Resolve the custom weight triple: the -weights flag wins, then the
	// config file's aggregation.weights list.
	var weights [3]float64
	hasWeights := false
	if set["weights"] {
		weights, err = parseWeights(*weightsArg)
		if err != nil {
			log.Fatalf("Invalid weights: %v", err)
		}
		hasWeights = true
	} else if len(cfg.Aggregation.Weights) > 0 {
		weights, err = weightsFromConfig(cfg.Aggregation.Weights)
		if err != nil {
			log.Fatalf("Invalid weights in config: %v", err)
		}
		hasWeights = true
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: framestack [flags] input1[:L] input2[:L] ...")
		flag.Usage()
		os.Exit(1)
	}

	mode, err := resolveMode(*modeName, *preset, *discard, weights, hasWeights)
	if err != nil {
		log.Fatalf("Invalid aggregation mode: %v", err)
	}

	rawKind, err := sample.ParseKind(*rawKindName)
	if err != nil {
		log.Fatalf("Invalid raw input kind: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("FRAMESTACK - MULTI-SOURCE FRAME AGGREGATION")
		fmt.Println("================================")
		fmt.Printf("Mode: %v, sources: %d, workers: %d\n", mode.Op, len(args), *workers)
	}

	// Load all source frames
	decoded := make([]models.DecodedSource, 0, len(args))
	for i, arg := range args {
		file := parseSourceArg(arg, i)
		frame, err := loadFrame(file, rawKind, *rawWidth, *rawHeight)
		if err != nil {
			log.Fatalf("Failed to load source %d (%s): %v", i, file.Path, err)
		}
		if cfg.Output.Verbose {
			p := frame.Planes[0]
			fmt.Printf("  [%d] %s: %d plane(s) %dx%d %v label=%v\n",
				i, file.Path, len(frame.Planes), p.Width, p.Height, p.Kind, file.Label)
		}
		decoded = append(decoded, models.DecodedSource{File: file, Frame: frame})
	}
	sources := make([]engine.Source, len(decoded))
	for i, d := range decoded {
		sources[i] = engine.Source{Frame: d.Frame, Label: d.File.Label}
	}

	// Allocate the output frame: source layout, possibly a different kind
	outKind := sources[0].Frame.Planes[0].Kind
	if *outKindName != "" {
		outKind, err = sample.ParseKind(*outKindName)
		if err != nil {
			log.Fatalf("Invalid output kind: %v", err)
		}
	}
	dims := make([][2]int, len(sources[0].Frame.Planes))
	for i, p := range sources[0].Frame.Planes {
		dims[i] = [2]int{p.Width, p.Height}
	}
	out := sample.NewFrame(outKind, dims)

	// Run the aggregation
	startTime := time.Now()
	if err := engine.New(*workers).Run(mode, sources, out); err != nil {
		log.Fatalf("Aggregation failed: %v", err)
	}
	elapsed := time.Since(startTime)

	if err := writeFrame(*outPath, out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Printf("\nAggregated %d sources in %.3f seconds\n", len(sources), elapsed.Seconds())
		fmt.Printf("Output (%v) saved to: %s\n", outKind, *outPath)
	}
}

// resolveMode turns the CLI arguments into an aggregation mode. A custom
// weight triple overrides the preset table; median accepts no mean
// parameters.
func resolveMode(name string, preset, discard int, weights [3]float64, hasWeights bool) (aggregate.Mode, error) {
	switch name {
	case "median":
		if preset != 0 || discard != 0 || hasWeights {
			return aggregate.Mode{}, fmt.Errorf("%w: median takes no preset, discard, or weights",
				aggregate.ErrInvalidParams)
		}
		return aggregate.Mode{Op: aggregate.OpMedian}, nil
	case "mean", "":
		if hasWeights {
			if discard != 0 || preset != 0 {
				return aggregate.Mode{}, fmt.Errorf("%w: custom weights exclude preset and discard",
					aggregate.ErrInvalidParams)
			}
			return aggregate.Mode{Op: aggregate.OpWeighted, Weights: weights}, nil
		}
		return aggregate.ResolveMean(preset, discard)
	default:
		return aggregate.Mode{}, fmt.Errorf("%w: unknown mode %q", aggregate.ErrInvalidParams, name)
	}
}

// weightsFromConfig validates a config-file weight list as an [I, P, B]
// triple.
func weightsFromConfig(ws []float64) ([3]float64, error) {
	if len(ws) != 3 {
		return [3]float64{}, fmt.Errorf("%w: weights must have exactly 3 entries, got %d",
			aggregate.ErrInvalidParams, len(ws))
	}
	return [3]float64{ws[0], ws[1], ws[2]}, nil
}

// parseWeights parses an "I,P,B" weight triple.
func parseWeights(arg string) ([3]float64, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("%w: weights must be three comma-separated numbers",
			aggregate.ErrInvalidParams)
	}
	var w [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("%w: bad weight %q", aggregate.ErrInvalidParams, part)
		}
		w[i] = v
	}
	return w, nil
}
