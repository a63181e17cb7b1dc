package cache

import "fmt"

// Policy is an immutable descriptor of one cache level's geometry and
// timing. validate (called by NewLevel) rejects any policy that would
// make the tag/set/offset decomposition ill-defined.
type Policy struct {
	CacheSize     uint32 // total bytes, must be a power of two
	BlockSize     uint32 // bytes per block, power of two, divides CacheSize
	BlockNum      uint32 // CacheSize / BlockSize
	Associativity uint32 // ways per set, must divide BlockNum
	HitLatency    uint32 // cycles charged on a hit
	MissLatency   uint32 // cycles charged on a miss

	// FullBlockFill, when true, fills the entire block on a miss
	// instead of the single byte transferred by default. See DESIGN.md
	// for the default's rationale.
	FullBlockFill bool
}

// NumSets returns BlockNum / Associativity.
func (p Policy) NumSets() uint32 {
	return p.BlockNum / p.Associativity
}

// PolicyBuilder constructs a Policy fluently, defaulting to a single
// 64-byte-block, direct-mapped, zero-latency cache so that tests can
// override only the fields they care about.
type PolicyBuilder struct {
	policy Policy
}

// MakePolicyBuilder returns a builder seeded with minimal defaults.
func MakePolicyBuilder() PolicyBuilder {
	return PolicyBuilder{
		policy: Policy{
			CacheSize:     64,
			BlockSize:     64,
			BlockNum:      1,
			Associativity: 1,
		},
	}
}

// WithCacheSize sets the total cache size in bytes and recomputes
// BlockNum from the currently configured BlockSize.
func (b PolicyBuilder) WithCacheSize(cacheSize uint32) PolicyBuilder {
	b.policy.CacheSize = cacheSize
	if b.policy.BlockSize > 0 {
		b.policy.BlockNum = cacheSize / b.policy.BlockSize
	}

	return b
}

// WithBlockSize sets the block size in bytes and recomputes BlockNum.
func (b PolicyBuilder) WithBlockSize(blockSize uint32) PolicyBuilder {
	b.policy.BlockSize = blockSize
	if blockSize > 0 {
		b.policy.BlockNum = b.policy.CacheSize / blockSize
	}

	return b
}

// WithAssociativity sets the number of ways per set.
func (b PolicyBuilder) WithAssociativity(associativity uint32) PolicyBuilder {
	b.policy.Associativity = associativity
	return b
}

// WithHitLatency sets the cycle cost of a hit.
func (b PolicyBuilder) WithHitLatency(cycles uint32) PolicyBuilder {
	b.policy.HitLatency = cycles
	return b
}

// WithMissLatency sets the cycle cost of a miss.
func (b PolicyBuilder) WithMissLatency(cycles uint32) PolicyBuilder {
	b.policy.MissLatency = cycles
	return b
}

// WithFullBlockFill opts into filling the entire block on a miss.
func (b PolicyBuilder) WithFullBlockFill(full bool) PolicyBuilder {
	b.policy.FullBlockFill = full
	return b
}

// Build returns the assembled Policy. It does not validate; validation
// happens in NewLevel, where a configuration error can be reported
// alongside the level it would have built.
func (b PolicyBuilder) Build() Policy {
	return b.policy
}

func isPowerOfTwo(n uint32) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n uint32) uint32 {
	var bits uint32
	for n > 1 {
		n >>= 1
		bits++
	}

	return bits
}

// validate enforces the geometry constraints: both sizes are powers of
// two, BlockSize divides CacheSize, BlockNum*BlockSize equals
// CacheSize, and Associativity divides BlockNum.
func validate(p Policy) error {
	if !isPowerOfTwo(p.CacheSize) {
		return fmt.Errorf("cache: invalid cache size %d: not a power of two", p.CacheSize)
	}

	if !isPowerOfTwo(p.BlockSize) {
		return fmt.Errorf("cache: invalid block size %d: not a power of two", p.BlockSize)
	}

	if p.CacheSize%p.BlockSize != 0 {
		return fmt.Errorf("cache: cache size %d is not a multiple of block size %d",
			p.CacheSize, p.BlockSize)
	}

	if p.BlockNum*p.BlockSize != p.CacheSize {
		return fmt.Errorf("cache: block num %d * block size %d != cache size %d",
			p.BlockNum, p.BlockSize, p.CacheSize)
	}

	if p.Associativity == 0 || p.BlockNum%p.Associativity != 0 {
		return fmt.Errorf("cache: associativity %d does not divide block num %d",
			p.Associativity, p.BlockNum)
	}

	return nil
}
