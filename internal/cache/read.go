package cache

import "fmt"

// GetByte services a read at addr. cycles, if non-nil, receives the
// cycle cost actually charged for this call (hitLatency on a hit; on a
// miss it is whatever fill wrote into it, which for the deepest level
// includes the 100-cycle-per-byte memory transfer cost).
// isPrefetch marks the access as speculative: it is excluded from
// NumRead and, on a miss, from NumMiss/TotalCycles, but it still
// triggers a real fill and still updates LastReference and (on a hit)
// NumHit.
func (l *Level) GetByte(addr uint32, cycles *uint64, isPrefetch bool) byte {
	l.referenceCounter++
	if !isPrefetch {
		l.stats.NumRead++
	}

	setID := int(l.dec.set(addr))
	tag := l.dec.tag(addr)
	offset := l.dec.offset(addr)

	if way, block, ok := l.table.Lookup(setID, tag); ok {
		l.stats.NumHit++
		l.stats.TotalCycles += uint64(l.policy.HitLatency)
		l.table.Touch(setID, way, l.referenceCounter)

		if cycles != nil {
			*cycles = uint64(l.policy.HitLatency)
		}

		return block.Data[offset]
	}

	if !isPrefetch {
		l.stats.NumMiss++
		l.stats.TotalCycles += uint64(l.policy.MissLatency)
	}

	l.fill(addr, cycles, isPrefetch)

	way, block, ok := l.table.Lookup(setID, tag)
	if !ok {
		panic(fmt.Sprintf(
			"cache: %s: address 0x%08x not resident immediately after its own fill",
			l.Name, addr))
	}

	l.table.Touch(setID, way, l.referenceCounter)

	return block.Data[offset]
}
