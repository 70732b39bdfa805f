package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rainrunoff/internal/model"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. RAINRUNOFF_SOIL_POROSITY.
const EnvPrefix = "RAINRUNOFF_"

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load parameters from a separate YAML (e.g. examples/basins/*.yaml).
	// If both ParametersFile and Parameters are provided, Parameters overrides ParametersFile.
	ParametersFile string           `yaml:"parameters_file,omitempty"`
	Parameters     ParametersConfig `yaml:"parameters"`
	Log            LogConfig        `yaml:"log"`
}

type ParametersConfig struct {
	Name                        string  `yaml:"name,omitempty"`
	SoilPorosity                float64 `yaml:"soil_porosity"`
	SoilSaturatedConductivity   float64 `yaml:"soil_saturated_conductivity"`
	SoilGroundwaterConductivity float64 `yaml:"soil_groundwater_conductivity"`
	ChannelConductivity         float64 `yaml:"channel_conductivity"`
	PotentialEvapotranspiration float64 `yaml:"potential_evapotranspiration"`
	ReservoirCapacity           float64 `yaml:"reservoir_capacity"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the reference parameters with no overrides.
func Default() *Config {
	return &Config{Parameters: FromModelParams(model.DefaultParameters())}
}

// Load reads path (or starts from Default when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		loaded, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c.Parameters = MergeParameters(c.Parameters, loaded.Parameters)
		c.ParametersFile = loaded.ParametersFile
		c.Log = loaded.Log
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// If parameters_file is set, load it and merge in any explicit overrides from c.Parameters.
	if c.ParametersFile != "" {
		paramsPath := c.ParametersFile
		if !filepath.IsAbs(paramsPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), paramsPath)
			if _, err := os.Stat(cand); err == nil {
				paramsPath = cand
			}
		}
		loaded, err := loadParametersFile(paramsPath)
		if err != nil {
			return nil, err
		}
		c.Parameters = MergeParameters(loaded, c.Parameters)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Parameters.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("parameters invalid: %w", err)
	}
	return nil
}

// ApplyEnv overlays RAINRUNOFF_* variables found by lookup onto the parameters.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, f := range c.Parameters.fields() {
		v, ok := lookup(EnvPrefix + f.env)
		if !ok || v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, f.env, err)
		}
		*f.ptr = x
	}
	if v, ok := lookup(EnvPrefix + "LOG_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sLOG_DEBUG: %w", EnvPrefix, err)
		}
		c.Log.Debug = debug
	}
	return nil
}

type paramField struct {
	env string
	ptr *float64
}

func (p *ParametersConfig) fields() []paramField {
	return []paramField{
		{"SOIL_POROSITY", &p.SoilPorosity},
		{"SOIL_SATURATED_CONDUCTIVITY", &p.SoilSaturatedConductivity},
		{"SOIL_GROUNDWATER_CONDUCTIVITY", &p.SoilGroundwaterConductivity},
		{"CHANNEL_CONDUCTIVITY", &p.ChannelConductivity},
		{"POTENTIAL_EVAPOTRANSPIRATION", &p.PotentialEvapotranspiration},
		{"RESERVOIR_CAPACITY", &p.ReservoirCapacity},
	}
}

func (p ParametersConfig) ToModelParams() model.Parameters {
	return model.Parameters{
		SoilPorosity:                p.SoilPorosity,
		SoilSaturatedConductivity:   p.SoilSaturatedConductivity,
		SoilGroundwaterConductivity: p.SoilGroundwaterConductivity,
		ChannelConductivity:         p.ChannelConductivity,
		PotentialEvapotranspiration: p.PotentialEvapotranspiration,
		ReservoirCapacity:           p.ReservoirCapacity,
	}
}

func FromModelParams(p model.Parameters) ParametersConfig {
	return ParametersConfig{
		SoilPorosity:                p.SoilPorosity,
		SoilSaturatedConductivity:   p.SoilSaturatedConductivity,
		SoilGroundwaterConductivity: p.SoilGroundwaterConductivity,
		ChannelConductivity:         p.ChannelConductivity,
		PotentialEvapotranspiration: p.PotentialEvapotranspiration,
		ReservoirCapacity:           p.ReservoirCapacity,
	}
}

type parametersFileWrapper struct {
	Parameters ParametersConfig `yaml:"parameters"`
}

func loadParametersFile(path string) (ParametersConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ParametersConfig{}, err
	}
	var w parametersFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ParametersConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Parameters, nil
}

// MergeParameters overlays non-zero fields from override onto base.
// Zero is never a valid parameter value, so it always means "not set".
func MergeParameters(base, override ParametersConfig) ParametersConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	src := override.fields()
	dst := out.fields()
	for i := range src {
		if *src[i].ptr != 0 {
			*dst[i].ptr = *src[i].ptr
		}
	}
	return out
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// EnvVar returns the environment variable that overrides a parameter, e.g.
// "soil_porosity" -> "RAINRUNOFF_SOIL_POROSITY".
func EnvVar(name string) string {
	return EnvPrefix + strings.ToUpper(name)
}
