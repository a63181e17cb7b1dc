// Package config resolves the hierarchy configuration a run uses:
// the built-in default policy table, optionally overridden by
// CACHESIM_*-prefixed environment variables, which in turn may be
// loaded from a .env-style file passed on the command line.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/filberthamijoyo/cachesim/internal/hierarchy"
)

// EnvPrefix is the prefix of every environment variable this package
// reads.
const EnvPrefix = "CACHESIM_"

// Load returns the default hierarchy configuration with any
// environment overrides applied. If path is non-empty, the .env file
// at path is loaded into the environment first; variables already set
// in the environment win over the file, matching godotenv's Load
// semantics. A malformed override is a configuration error: it is
// reported before any cache level is built.
func Load(path string) (hierarchy.Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return hierarchy.Config{}, fmt.Errorf("config: loading %q: %w", path, err)
		}
	}

	cfg := hierarchy.DefaultConfig()

	for i := range cfg.Levels {
		if err := overrideLevel(&cfg.Levels[i]); err != nil {
			return hierarchy.Config{}, err
		}
	}

	if err := overrideGlobal(&cfg); err != nil {
		return hierarchy.Config{}, err
	}

	return cfg, nil
}

// overrideLevel applies the per-level CACHESIM_<name>_* variables, e.g.
// CACHESIM_L1_CACHE_SIZE=32768 or CACHESIM_L3_MISS_LATENCY=200.
func overrideLevel(spec *hierarchy.LevelSpec) error {
	prefix := EnvPrefix + spec.Name + "_"

	fields := []struct {
		key string
		dst *uint32
	}{
		{"CACHE_SIZE", &spec.Policy.CacheSize},
		{"BLOCK_SIZE", &spec.Policy.BlockSize},
		{"ASSOCIATIVITY", &spec.Policy.Associativity},
		{"HIT_LATENCY", &spec.Policy.HitLatency},
		{"MISS_LATENCY", &spec.Policy.MissLatency},
	}

	for _, f := range fields {
		value, ok := os.LookupEnv(prefix + f.key)
		if !ok {
			continue
		}

		parsed, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("config: %s%s=%q: %w", prefix, f.key, value, err)
		}

		*f.dst = uint32(parsed)
	}

	// Geometry overrides change the derived block count; the policy
	// validation in cache.NewLevel still gets the final say on whether
	// the result is well-formed.
	if spec.Policy.BlockSize > 0 {
		spec.Policy.BlockNum = spec.Policy.CacheSize / spec.Policy.BlockSize
	}

	return nil
}

// overrideGlobal applies the chain-wide write-policy and fill-mode
// variables to every level.
func overrideGlobal(cfg *hierarchy.Config) error {
	flags := []struct {
		key   string
		apply func(*hierarchy.LevelSpec, bool)
	}{
		{"WRITE_BACK", func(s *hierarchy.LevelSpec, v bool) { s.WriteBack = v }},
		{"WRITE_ALLOCATE", func(s *hierarchy.LevelSpec, v bool) { s.WriteAllocate = v }},
		{"FULL_BLOCK_FILL", func(s *hierarchy.LevelSpec, v bool) { s.Policy.FullBlockFill = v }},
	}

	for _, f := range flags {
		value, ok := os.LookupEnv(EnvPrefix + f.key)
		if !ok {
			continue
		}

		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, f.key, value, err)
		}

		for i := range cfg.Levels {
			f.apply(&cfg.Levels[i], parsed)
		}
	}

	return nil
}
