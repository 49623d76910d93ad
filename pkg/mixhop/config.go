package mixhop

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config manages generator configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Generator parameters
	v.SetDefault("generator.nodes", 2000)
	v.SetDefault("generator.classes", 4)
	v.SetDefault("generator.homophily", 0.5)
	v.SetDefault("generator.edges_per_node", DefaultEdgesPerNode)
	v.SetDefault("generator.seed_nodes", DefaultSeedNodes)
	v.SetDefault("generator.exponent", DefaultExponent)
	v.SetDefault("generator.num_graphs", 10)
	v.SetDefault("generator.random_seed", time.Now().UnixNano())

	// Output parameters
	v.SetDefault("output.dir", "mixhop_syn")
	v.SetDefault("output.write_splits", false)
	v.SetDefault("output.plot", false)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// BindFlags maps CLI flags onto configuration keys
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"generator.nodes":       "n",
		"generator.classes":     "c",
		"generator.homophily":   "h",
		"generator.num_graphs":  "num_graph",
		"generator.random_seed": "seed",
		"output.dir":            "out",
		"output.write_splits":   "splits",
		"output.plot":           "plot",
		"logging.level":         "log_level",
	}
	for key, name := range bindings {
		if f := fs.Lookup(name); f != nil {
			if err := c.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Getters for generator parameters
func (c *Config) Nodes() int { return c.v.GetInt("generator.nodes") }
func (c *Config) Classes() int { return c.v.GetInt("generator.classes") }
func (c *Config) Homophily() float64 { return c.v.GetFloat64("generator.homophily") }
func (c *Config) EdgesPerNode() int { return c.v.GetInt("generator.edges_per_node") }
func (c *Config) SeedNodes() int { return c.v.GetInt("generator.seed_nodes") }
func (c *Config) Exponent() float64 { return c.v.GetFloat64("generator.exponent") }
func (c *Config) NumGraphs() int { return c.v.GetInt("generator.num_graphs") }
func (c *Config) RandomSeed() int64 { return c.v.GetInt64("generator.random_seed") }

func (c *Config) OutputDir() string { return c.v.GetString("output.dir") }
func (c *Config) WriteSplits() bool { return c.v.GetBool("output.write_splits") }
func (c *Config) Plot() bool { return c.v.GetBool("output.plot") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// GeneratorParams assembles the attachment parameters from the configuration
func (c *Config) GeneratorParams() GeneratorParams {
	p := DefaultGeneratorParams(c.Nodes(), c.Classes(), c.Homophily())
	p.M = c.EdgesPerNode()
	p.M0 = c.SeedNodes()
	p.Exponent = c.Exponent()
	return p
}

// DefaultOutputDir names the output directory after the node and class counts,
// matching the mixhop_syn-<n>_<c> layout downstream loaders expect
func DefaultOutputDir(n, numClasses int) string {
	return fmt.Sprintf("mixhop_syn-%d_%d", n, numClasses)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "syngen").Logger()
}
