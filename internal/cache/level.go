// Package cache implements one level of a set-associative, write-back
// (or write-through/write-around) cache, and the chain of levels formed
// by wiring one Level's lower neighbor to another.
package cache

import (
	"fmt"

	"github.com/filberthamijoyo/cachesim/internal/cache/internal/tagging"
)

// MemoryCollaborator is the backing store consulted by the deepest
// level in a chain. It is paged, uncached, last-write-wins storage;
// see internal/memory for the concrete implementation.
type MemoryCollaborator interface {
	IsPageExist(addr uint32) bool
	AddPage(addr uint32)
	GetByteNoCache(addr uint32) byte
	SetByteNoCache(addr uint32, value byte)
}

// Stats accumulates one level's access counters. Reads, writes, and
// misses (with their miss latency) only count demand accesses; hits and
// their hit latency count every access, including prefetches.
type Stats struct {
	NumRead     uint32
	NumWrite    uint32
	NumHit      uint32
	NumMiss     uint32
	TotalCycles uint64
}

// Level is one level of the cache hierarchy. There is exactly one
// implementation of "cache level" in this package: the deepest level in
// a chain is the one whose lower field is nil, not a different type.
type Level struct {
	Name string

	policy Policy
	dec    decoder
	table  *tagging.Table

	writeBack     bool
	writeAllocate bool

	lower  *Level
	memory MemoryCollaborator

	referenceCounter uint32
	stats            Stats
}

// NewLevel validates policy and builds a Level backed either by lower
// (a non-nil neighbor one level further from the CPU) or by memory (used
// only when lower is nil, i.e. this is the deepest level).
func NewLevel(
	name string,
	policy Policy,
	lower *Level,
	memory MemoryCollaborator,
	writeBack bool,
	writeAllocate bool,
) (*Level, error) {
	if err := validate(policy); err != nil {
		return nil, err
	}

	if lower == nil && memory == nil {
		return nil, fmt.Errorf("cache: level %q has no lower level and no memory", name)
	}

	return &Level{
		Name:          name,
		policy:        policy,
		dec:           newDecoder(policy),
		table:         tagging.NewTable(int(policy.NumSets()), int(policy.Associativity), int(policy.BlockSize)),
		writeBack:     writeBack,
		writeAllocate: writeAllocate,
		lower:         lower,
		memory:        memory,
	}, nil
}

// Policy returns the level's (validated, immutable) configuration.
func (l *Level) Policy() Policy {
	return l.policy
}

// Lower returns the level's lower neighbor, or nil if this is the
// deepest level in the chain.
func (l *Level) Lower() *Level {
	return l.lower
}

// Stats returns a snapshot of the level's accumulated counters.
func (l *Level) Stats() Stats {
	return l.stats
}

// InCache is a pure query: it does not touch the reference counter or
// any statistic.
func (l *Level) InCache(addr uint32) bool {
	setID := int(l.dec.set(addr))
	tag := l.dec.tag(addr)

	_, _, ok := l.table.Lookup(setID, tag)

	return ok
}
