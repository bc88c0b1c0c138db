package link

import (
	"bufio"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// Opening the port resets the firmware; give it time to come back up
// before the first exchange.
const serialSettleDelay = 2 * time.Second

// SerialTransport talks to the robot over a USB serial port.
type SerialTransport struct {
	port serial.Port
	r    *bufio.Reader
	once sync.Once
}

func OpenSerial(portName string, baud int) (*SerialTransport, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", portName, err)
	}
	time.Sleep(serialSettleDelay)
	return &SerialTransport{port: port, r: bufio.NewReader(port)}, nil
}

func (t *SerialTransport) ReadLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *SerialTransport) WriteLine(line string) error {
	_, err := t.port.Write([]byte(line + "\n"))
	return err
}

func (t *SerialTransport) Close() error {
	var err error
	t.once.Do(func() { err = t.port.Close() })
	return err
}
