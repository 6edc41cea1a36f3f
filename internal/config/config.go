package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/verify"
)

const (
	DefaultGamma     = 5.0 / 3.0
	DefaultVflow     = 0.1
	DefaultAmplitude = 1.0e-6
	DefaultResLow    = 64
	DefaultResHigh   = 128
	DefaultCutoff    = 1.8
	DefaultRho       = 1.0

	// One mesh block spans 4 cells per direction; both grids must
	// decompose evenly.
	DefaultBlockFactor = 4
)

type Config struct {
	Gamma       float64          `yaml:"gamma"`
	Vflow       float64          `yaml:"vflow"`
	Rho         float64          `yaml:"rho"`
	Pgas        float64          `yaml:"pgas"`
	Amplitude   float64          `yaml:"amplitude"`
	Cutoff      float64          `yaml:"cutoff"`
	Resolutions ResolutionConfig `yaml:"resolutions"`
	BlockFactor int              `yaml:"block_factor"`
	Waves       []int            `yaml:"waves"`
	Solver      SolverConfig     `yaml:"solver"`
}

type ResolutionConfig struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

type SolverConfig struct {
	Bin    string `yaml:"bin"`
	Input  string `yaml:"input"`
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

func DefaultConfig() *Config {
	return &Config{
		Gamma:     DefaultGamma,
		Vflow:     DefaultVflow,
		Rho:       DefaultRho,
		Pgas:      1.0 / DefaultGamma,
		Amplitude: DefaultAmplitude,
		Cutoff:    DefaultCutoff,
		Resolutions: ResolutionConfig{
			Low:  DefaultResLow,
			High: DefaultResHigh,
		},
		BlockFactor: DefaultBlockFactor,
		Waves:       []int{0, 1, 2, 3, 4},
		Solver: SolverConfig{
			Bin:    "bin/athena",
			Input:  "hydro/athinput.linear_wave2d",
			Dir:    "bin",
			Prefix: "hydro_wave",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate is the configuration-error boundary: every physical and
// numerical parameter is checked here, before any solver run or analysis.
func (c *Config) Validate() error {
	if err := c.Equilibrium().Validate(); err != nil {
		return err
	}
	if c.Amplitude <= 0 {
		return fmt.Errorf("amplitude must be positive, got %g", c.Amplitude)
	}
	if c.Cutoff <= 0 {
		return fmt.Errorf("cutoff must be positive, got %g", c.Cutoff)
	}
	if err := c.Pair().Validate(c.BlockFactor); err != nil {
		return err
	}
	if len(c.Waves) == 0 {
		return fmt.Errorf("at least one wave family is required")
	}
	for _, w := range c.Waves {
		if !hydro.Wave(w).Valid() {
			return fmt.Errorf("wave flag %d out of range 0..%d", w, hydro.NumWaves-1)
		}
	}
	return nil
}

// Equilibrium returns the background state the waves are seeded on.
func (c *Config) Equilibrium() hydro.EquilibriumState {
	return hydro.EquilibriumState{
		Rho:   c.Rho,
		Pgas:  c.Pgas,
		Vx:    c.Vflow,
		Gamma: c.Gamma,
	}
}

func (c *Config) Pair() verify.Pair {
	return verify.Pair{Low: c.Resolutions.Low, High: c.Resolutions.High}
}

// WaveFamilies converts the configured wave flags.
func (c *Config) WaveFamilies() []hydro.Wave {
	waves := make([]hydro.Wave, len(c.Waves))
	for i, w := range c.Waves {
		waves[i] = hydro.Wave(w)
	}
	return waves
}
