package link

import (
	"io"
	"sync"
)

// SimTransport is the no-hardware stand-in used when the serial device is
// absent: reads block until Close and writes vanish. The snapshot cell
// simply keeps its zero value.
type SimTransport struct {
	closed chan struct{}
	once   sync.Once
}

func NewSim() *SimTransport {
	return &SimTransport{closed: make(chan struct{})}
}

func (t *SimTransport) ReadLine() (string, error) {
	<-t.closed
	return "", io.EOF
}

func (t *SimTransport) WriteLine(line string) error {
	return nil
}

func (t *SimTransport) Close() error {
	t.once.Do(func() { close(t.closed) })
	return nil
}
