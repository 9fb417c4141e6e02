package qsearch

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries the tunables shared by drivers, samplers and the run pool.
type Config struct {
	MaxQubits         int
	Shots             int
	Seed              uint64
	Workers           int
	Tolerance         float64
	MemoryBudget      int64
	SchedulingTimeout time.Duration
}

/*
NewConfig returns the defaults, overridden by any QSEARCH_* environment
variables (QSEARCH_SHOTS, QSEARCH_MAXQUBITS, ...).
*/
func NewConfig() *Config {
	return configFrom(newViper())
}

/*
LoadConfig reads a config file (any format viper understands) on top of the
defaults and environment.
*/
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return configFrom(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("qsearch")
	v.AutomaticEnv()

	v.SetDefault("maxqubits", MaxQubits)
	v.SetDefault("shots", 1000)
	v.SetDefault("seed", 0)
	v.SetDefault("workers", 4)
	v.SetDefault("tolerance", DefaultTolerance)
	v.SetDefault("memorybudget", int64(1)<<30)
	v.SetDefault("schedulingtimeout", 10*time.Second)

	return v
}

func configFrom(v *viper.Viper) *Config {
	cfg := &Config{
		MaxQubits:         v.GetInt("maxqubits"),
		Shots:             v.GetInt("shots"),
		Seed:              v.GetUint64("seed"),
		Workers:           v.GetInt("workers"),
		Tolerance:         v.GetFloat64("tolerance"),
		MemoryBudget:      v.GetInt64("memorybudget"),
		SchedulingTimeout: v.GetDuration("schedulingtimeout"),
	}

	// The hard cap wins over configuration.
	if cfg.MaxQubits <= 0 || cfg.MaxQubits > MaxQubits {
		cfg.MaxQubits = MaxQubits
	}

	if cfg.Shots < 1 {
		cfg.Shots = 1000
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if cfg.Tolerance <= 0 {
		cfg.Tolerance = DefaultTolerance
	}

	return cfg
}
