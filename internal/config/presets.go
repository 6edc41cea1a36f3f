package config

// Presets cover the common verification setups: the regression default,
// a cheap smoke run, and a stricter order demand.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"quick": {
		Gamma: DefaultGamma, Vflow: DefaultVflow,
		Rho: DefaultRho, Pgas: 1.0 / DefaultGamma,
		Amplitude: DefaultAmplitude, Cutoff: 1.5,
		Resolutions: ResolutionConfig{Low: 16, High: 32},
		BlockFactor: DefaultBlockFactor,
		Waves:       []int{0, 4},
		Solver:      DefaultConfig().Solver,
	},
	"strict": {
		Gamma: DefaultGamma, Vflow: DefaultVflow,
		Rho: DefaultRho, Pgas: 1.0 / DefaultGamma,
		Amplitude: DefaultAmplitude, Cutoff: 1.95,
		Resolutions: ResolutionConfig{Low: 128, High: 256},
		BlockFactor: DefaultBlockFactor,
		Waves:       []int{0, 1, 2, 3, 4},
		Solver:      DefaultConfig().Solver,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
