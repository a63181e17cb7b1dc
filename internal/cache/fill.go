package cache

import "github.com/filberthamijoyo/cachesim/internal/cache/internal/tagging"

// fill loads the block containing addr into this level, evicting (and,
// if dirty and write-back is enabled, writing back) the chosen victim.
//
// By default this transfers only the single byte at the block's base
// address; Policy.FullBlockFill opts a level into transferring the
// whole block instead (see DESIGN.md for the default's rationale).
// Either way, the victim-selection and writeback logic below is
// identical.
func (l *Level) fill(addr uint32, cycles *uint64, isPrefetch bool) {
	setID := int(l.dec.set(addr))
	tag := l.dec.tag(addr)
	blockAddrBegin := l.dec.blockAddr(addr)

	transferLen := uint32(1)
	if l.policy.FullBlockFill {
		transferLen = l.policy.BlockSize
	}

	newBlock := tagging.Block{
		Valid: true,
		Data:  make([]byte, l.policy.BlockSize),
	}
	newBlock.Tag = tag

	for i := uint32(0); i < transferLen; i++ {
		srcAddr := blockAddrBegin + i

		if l.lower != nil {
			newBlock.Data[i] = l.lower.GetByte(srcAddr, cycles, isPrefetch)
		} else {
			newBlock.Data[i] = l.memory.GetByteNoCache(srcAddr)
			if cycles != nil {
				*cycles += 100
			}
		}
	}

	way := l.table.ChooseVictim(setID)
	victim := l.table.BlockAt(setID, way)

	if l.writeBack && victim.Valid && victim.Modified {
		l.writeback(victim)
		l.stats.TotalCycles += uint64(l.policy.MissLatency)
	}

	l.table.Update(setID, way, newBlock)
}

// writeback propagates every byte of block to the lower level (or
// memory, for the deepest level) as a demand write. Writeback ignores
// prefetch semantics: it is always a demand write at the next level,
// regardless of why this level is evicting the block.
func (l *Level) writeback(block tagging.Block) {
	addrBegin := l.dec.addrOf(block.Tag, uint32(block.SetID))

	for i := uint32(0); i < l.policy.BlockSize; i++ {
		if l.lower != nil {
			l.lower.SetByte(addrBegin+i, block.Data[i], nil)
		} else {
			l.memory.SetByteNoCache(addrBegin+i, block.Data[i])
		}
	}
}
