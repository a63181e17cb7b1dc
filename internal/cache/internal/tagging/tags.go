// Package tagging holds the block table that backs a cache level: the
// per-set array of blocks, lookup by tag, and victim bookkeeping.
package tagging

import "fmt"

// Block is one storage slot of a cache level.
//
// SetID is permanent: a block's position in the owning table fixes
// which set it belongs to for the table's entire lifetime. Everything
// else is mutated in place by fill and write.
type Block struct {
	Valid         bool
	Modified      bool
	Tag           uint32
	SetID         int
	LastReference uint32
	Data          []byte
}

// Table is the flat blockNum-sized array of Block, addressed as
// sets x ways. Table never reallocates a Block's position; fill and
// eviction always overwrite a slot in place.
type Table struct {
	associativity int
	blockSize     int
	blocks        []Block
}

// NewTable builds a table of numSets*associativity blocks, each
// pre-sized to hold blockSize bytes, all initially invalid.
func NewTable(numSets, associativity, blockSize int) *Table {
	t := &Table{
		associativity: associativity,
		blockSize:     blockSize,
		blocks:        make([]Block, numSets*associativity),
	}

	for i := range t.blocks {
		t.blocks[i] = Block{
			SetID: i / associativity,
			Data:  make([]byte, blockSize),
		}
	}

	return t
}

// NumSets returns the number of sets in the table.
func (t *Table) NumSets() int {
	return len(t.blocks) / t.associativity
}

// Associativity returns the number of ways per set.
func (t *Table) Associativity() int {
	return t.associativity
}

// setBounds returns the half-open slot range [begin, end) belonging to
// setID.
func (t *Table) setBounds(setID int) (begin, end int) {
	begin = setID * t.associativity
	end = begin + t.associativity

	return begin, end
}

// Lookup scans the associativity window of setID for a valid block
// whose tag matches. It panics if a visited slot's SetID has drifted
// from the set it is being searched under; slot ownership is fixed at
// construction and nothing may move it.
func (t *Table) Lookup(setID int, tag uint32) (wayID int, block Block, ok bool) {
	begin, end := t.setBounds(setID)

	for i := begin; i < end; i++ {
		if t.blocks[i].SetID != setID {
			panic(assertionMessage(i, setID, t.blocks[i].SetID))
		}

		if t.blocks[i].Valid && t.blocks[i].Tag == tag {
			return i - begin, t.blocks[i], true
		}
	}

	return 0, Block{}, false
}

// BlockAt returns a copy of the block stored at (setID, wayID).
func (t *Table) BlockAt(setID, wayID int) Block {
	begin, _ := t.setBounds(setID)

	return t.blocks[begin+wayID]
}

// Update overwrites the block at (setID, wayID), preserving its
// immutable SetID regardless of what the caller passed in.
func (t *Table) Update(setID, wayID int, block Block) {
	begin, _ := t.setBounds(setID)
	block.SetID = setID
	t.blocks[begin+wayID] = block
}

// Touch bumps the LastReference of the block at (setID, wayID), the
// narrow mutation made on every hit.
func (t *Table) Touch(setID, wayID int, reference uint32) {
	begin, _ := t.setBounds(setID)
	t.blocks[begin+wayID].LastReference = reference
}

// Entry pairs a Block with the way index it occupies within its set,
// for callers (such as a debug dump) that want to walk every slot.
type Entry struct {
	Block
	WayID int
}

// Entries returns every slot in the table, in set-major, way-minor
// order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.blocks))

	for i, b := range t.blocks {
		entries[i] = Entry{Block: b, WayID: i % t.associativity}
	}

	return entries
}

// Reset invalidates every block, leaving each slot's SetID unchanged.
// NewTable already returns an all-invalid table and does not call it.
func (t *Table) Reset() {
	for i := range t.blocks {
		t.blocks[i].Valid = false
		t.blocks[i].Modified = false
		t.blocks[i].Tag = 0
		t.blocks[i].LastReference = 0
	}
}

func assertionMessage(slot, wantSet, gotSet int) string {
	return fmt.Sprintf(
		"tagging: block %d belongs to set %d but was scanned under set %d",
		slot, gotSet, wantSet)
}
