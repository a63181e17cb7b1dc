// Package stats renders the statistics a completed run accumulated: the
// per-level counter block printed at termination, optionally followed
// by a verbose dump of every cache slot's state.
package stats

import (
	"fmt"
	"io"

	"github.com/filberthamijoyo/cachesim/internal/cache"
)

// WriteReport prints top's statistics block, recursing through every
// lower level. "L1
// Cache:" is printed once, at the top; every other level is introduced
// only by its own "---------- LOWER CACHE ----------" separator.
func WriteReport(w io.Writer, top *cache.Level) error {
	if _, err := fmt.Fprintf(w, "%s Cache:\n", top.Name); err != nil {
		return err
	}

	level := top
	for level != nil {
		if err := writeStatistics(w, level.Stats()); err != nil {
			return err
		}

		level = level.Lower()
		if level == nil {
			break
		}

		if _, err := fmt.Fprintln(w, "---------- LOWER CACHE ----------"); err != nil {
			return err
		}
	}

	return nil
}

func writeStatistics(w io.Writer, s cache.Stats) error {
	_, err := fmt.Fprintf(w,
		"-------- STATISTICS ----------\n"+
			"Num Read: %d\n"+
			"Num Write: %d\n"+
			"Num Hit: %d\n"+
			"Num Miss: %d\n"+
			"Total Cycles: %d\n",
		s.NumRead, s.NumWrite, s.NumHit, s.NumMiss, s.TotalCycles)

	return err
}

// WriteBlockDump appends the per-block state of top and every lower
// level. It backs the --dump-blocks flag and is never called on the
// statistics-only path.
func WriteBlockDump(w io.Writer, top *cache.Level) error {
	level := top
	for level != nil {
		if _, err := fmt.Fprintf(w, "%s blocks:\n", level.Name); err != nil {
			return err
		}

		for _, b := range level.Blocks() {
			state := "invalid"
			if b.Valid {
				state = "valid"
				if b.Modified {
					state = "valid, modified"
				}
			}

			if _, err := fmt.Fprintf(w, "  set %d way %d: tag 0x%08x, %s, lastReference %d\n",
				b.SetID, b.WayID, b.Tag, state, b.LastReference); err != nil {
				return err
			}
		}

		level = level.Lower()
	}

	return nil
}
