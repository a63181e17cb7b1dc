package cache

// SetByte services a demand write of value at addr. Writes are never
// prefetches. cycles, if non-nil, receives the cycle cost charged for
// this call's direct effect at this level (it does not include any
// cost propagated further down on a write-through or write-around
// path — those are charged to the level that incurs them).
func (l *Level) SetByte(addr uint32, value byte, cycles *uint64) {
	l.referenceCounter++
	l.stats.NumWrite++

	setID := int(l.dec.set(addr))
	tag := l.dec.tag(addr)
	offset := l.dec.offset(addr)

	if way, block, ok := l.table.Lookup(setID, tag); ok {
		l.stats.NumHit++
		l.stats.TotalCycles += uint64(l.policy.HitLatency)

		block.Modified = true
		block.Data[offset] = value
		l.table.Update(setID, way, block)
		l.table.Touch(setID, way, l.referenceCounter)

		if cycles != nil {
			*cycles = uint64(l.policy.HitLatency)
		}

		if !l.writeBack {
			l.writeback(block)
			l.stats.TotalCycles += uint64(l.policy.MissLatency)
		}

		return
	}

	l.stats.NumMiss++
	l.stats.TotalCycles += uint64(l.policy.MissLatency)

	if l.writeAllocate {
		l.fill(addr, cycles, false)

		way, block, ok := l.table.Lookup(setID, tag)
		if !ok {
			panic("cache: " + l.Name + ": address not resident immediately after write-allocate fill")
		}

		block.Modified = true
		block.Data[offset] = value
		l.table.Update(setID, way, block)
		l.table.Touch(setID, way, l.referenceCounter)

		return
	}

	// Write-around: the write bypasses this level entirely, no slot is
	// allocated, and only a single byte is forwarded.
	if l.lower != nil {
		l.lower.SetByte(addr, value, nil)
	} else {
		l.memory.SetByteNoCache(addr, value)
	}
}
