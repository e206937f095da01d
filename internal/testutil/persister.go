package testutil

import "github.com/sadopc/focusplus/internal/focus"

// MemoryPersister keeps every saved snapshot. Setting Err makes Save and
// Clear fail until it is cleared again.
type MemoryPersister struct {
	Saved  []focus.Snapshot
	Clears int
	Err    error
}

func (p *MemoryPersister) Save(s focus.Snapshot) error {
	if p.Err != nil {
		return p.Err
	}
	p.Saved = append(p.Saved, s)
	return nil
}

func (p *MemoryPersister) Clear() error {
	if p.Err != nil {
		return p.Err
	}
	p.Clears++
	p.Saved = nil
	return nil
}

// Last returns the most recent snapshot and whether there was one.
func (p *MemoryPersister) Last() (focus.Snapshot, bool) {
	if len(p.Saved) == 0 {
		return focus.Snapshot{}, false
	}
	return p.Saved[len(p.Saved)-1], true
}
