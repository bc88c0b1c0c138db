package session

import "sync/atomic"

// Sequence issues command sequence numbers. The zero value is ready to
// use; numbers are strictly increasing and never reset for the life of
// the process.
type Sequence struct {
	n atomic.Int64
}

func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}
