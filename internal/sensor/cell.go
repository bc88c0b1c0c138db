package sensor

import "sync"

// Cell holds the latest snapshot behind a mutex: one writer (the reader
// loop), many readers. Load returns a point-in-time copy.
type Cell struct {
	mu   sync.Mutex
	snap Snapshot
}

func (c *Cell) Load() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

func (c *Cell) Store(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = s
}
