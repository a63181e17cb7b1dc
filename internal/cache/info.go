package cache

// BlockInfo is a snapshot of one slot's metadata, for the verbose
// block dump behind the --dump-blocks flag.
type BlockInfo struct {
	SetID         int
	WayID         int
	Tag           uint32
	Valid         bool
	Modified      bool
	LastReference uint32
}

// Blocks returns a snapshot of every slot in this level, in set-major,
// way-minor order. It never mutates the level or its statistics.
func (l *Level) Blocks() []BlockInfo {
	entries := l.table.Entries()
	infos := make([]BlockInfo, len(entries))

	for i, e := range entries {
		infos[i] = BlockInfo{
			SetID:         e.SetID,
			WayID:         e.WayID,
			Tag:           e.Tag,
			Valid:         e.Valid,
			Modified:      e.Modified,
			LastReference: e.LastReference,
		}
	}

	return infos
}
