package main

import (
	"os"

	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/mat"

	"github.com/lhchan/mixhop-syngen/pkg/artifacts"
	"github.com/lhchan/mixhop-syngen/pkg/mixhop"
	"github.com/lhchan/mixhop-syngen/pkg/pipeline"
	"github.com/lhchan/mixhop-syngen/pkg/viz"
)

func main() {
	fs := pflag.NewFlagSet("syngen", pflag.ExitOnError)
	fs.Float64("h", 0.5, "homophily level")
	fs.Int("n", 2000, "total number of nodes")
	fs.Int("c", 4, "total number of classes (must be even)")
	fs.Int("num_graph", 10, "number of graphs generated for each setting")
	fs.Bool("plot", false, "plot degree distribution and features per graph")
	fs.String("out", "", "output directory (default mixhop_syn-<n>_<c>)")
	fs.Int64("seed", 0, "random seed (default: time-based)")
	fs.Bool("splits", false, "also write train/val/test splits per graph")
	fs.String("log_level", "info", "log level")
	configFile := fs.String("config", "", "optional config file")
	fs.Parse(os.Args[1:])

	cfg := mixhop.NewConfig()
	if *configFile != "" {
		if err := cfg.LoadFromFile(*configFile); err != nil {
			// Logger not configured yet, fall back to stderr
			os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	if err := cfg.BindFlags(fs); err != nil {
		os.Stderr.WriteString("failed to bind flags: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := cfg.CreateLogger()

	outDir := cfg.OutputDir()
	if f := fs.Lookup("out"); f != nil && !f.Changed && outDir == "mixhop_syn" {
		outDir = mixhop.DefaultOutputDir(cfg.Nodes(), cfg.Classes())
	}

	writer, err := artifacts.NewFileWriter(outDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create output directory")
	}

	pipe := pipeline.New(cfg, writer)
	pipe.Logger = logger
	if cfg.Plot() {
		numClasses := cfg.Classes()
		pipe.OnGraph = func(name string, g *mixhop.Graph, x *mat.Dense) error {
			return viz.WriteAll(outDir, name, g, x, numClasses)
		}
	}

	logger.Info().
		Int("n", cfg.Nodes()).
		Int("c", cfg.Classes()).
		Float64("h", cfg.Homophily()).
		Int("num_graphs", cfg.NumGraphs()).
		Str("out", outDir).
		Msg("Starting generation")

	if _, err := pipe.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Generation failed")
	}
}
