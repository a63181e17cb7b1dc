// Package hierarchy assembles an ordered chain of cache.Level values
// backed by a memory of last resort: L1 -> L2 -> L3 -> memory. There is
// no fan-out; each level has exactly one lower neighbor, and the
// deepest level is distinguished from the others only by having none.
package hierarchy

import (
	"github.com/filberthamijoyo/cachesim/internal/cache"
	"github.com/filberthamijoyo/cachesim/internal/memory"
)

// LevelSpec is one level's policy plus the write policy it uses. The
// write policy is per-level because nothing in the cache model requires
// it to be uniform across the chain, even though the default
// configuration happens to use the same policy everywhere.
type LevelSpec struct {
	Name          string
	Policy        cache.Policy
	WriteBack     bool
	WriteAllocate bool
}

// Config is the full chain specification, ordered from the level
// closest to the CPU (index 0) to the level closest to memory (last).
type Config struct {
	Levels []LevelSpec
}

// DefaultConfig returns the built-in three-level hierarchy:
// 16 KiB direct-mapped L1, 128 KiB 8-way L2, 2 MiB
// 16-way L3, all write-back and write-allocate with 64-byte blocks.
func DefaultConfig() Config {
	return Config{
		Levels: []LevelSpec{
			{
				Name: "L1",
				Policy: cache.MakePolicyBuilder().
					WithCacheSize(16 * 1024).WithBlockSize(64).WithAssociativity(1).
					WithHitLatency(1).WithMissLatency(1).
					Build(),
				WriteBack:     true,
				WriteAllocate: true,
			},
			{
				Name: "L2",
				Policy: cache.MakePolicyBuilder().
					WithCacheSize(128 * 1024).WithBlockSize(64).WithAssociativity(8).
					WithHitLatency(8).WithMissLatency(8).
					Build(),
				WriteBack:     true,
				WriteAllocate: true,
			},
			{
				Name: "L3",
				Policy: cache.MakePolicyBuilder().
					WithCacheSize(2 * 1024 * 1024).WithBlockSize(64).WithAssociativity(16).
					WithHitLatency(20).WithMissLatency(100).
					Build(),
				WriteBack:     true,
				WriteAllocate: true,
			},
		},
	}
}

// Chain is a built hierarchy: Top is what the driver and the prefetch
// controller address; Levels lists every level from Top to the deepest,
// in order, for statistics reporting.
type Chain struct {
	Top    *cache.Level
	Levels []*cache.Level
	Memory *memory.Paged
}

// Build wires cfg's levels into a chain backed by a fresh paged memory.
// It returns an error if any level's policy is invalid.
func Build(cfg Config) (*Chain, error) {
	mem := memory.NewPaged()

	levels := make([]*cache.Level, len(cfg.Levels))

	var lower *cache.Level

	for i := len(cfg.Levels) - 1; i >= 0; i-- {
		spec := cfg.Levels[i]

		var memCollab cache.MemoryCollaborator
		if lower == nil {
			memCollab = mem
		}

		level, err := cache.NewLevel(spec.Name, spec.Policy, lower, memCollab, spec.WriteBack, spec.WriteAllocate)
		if err != nil {
			return nil, err
		}

		levels[i] = level
		lower = level
	}

	return &Chain{
		Top:    levels[0],
		Levels: levels,
		Memory: mem,
	}, nil
}
