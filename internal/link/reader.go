package link

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"artie/internal/events"
	"artie/internal/sensor"
)

const readRetryPause = time.Second

// Reader pumps telemetry lines from the transport into the snapshot cell
// and the event bus.
type Reader struct {
	tr      Transport
	cell    *sensor.Cell
	bus     *events.Bus
	verbose bool
}

func NewReader(tr Transport, cell *sensor.Cell, bus *events.Bus, verbose bool) *Reader {
	return &Reader{tr: tr, cell: cell, bus: bus, verbose: verbose}
}

// Run reads until the context is cancelled. Read errors pause briefly and
// retry; they never end the loop.
func (r *Reader) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := r.tr.ReadLine()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryPause):
			}
			continue
		}
		r.handleLine(line)
	}
}

func (r *Reader) handleLine(line string) {
	snap, ok := sensor.ParseFrame(line, time.Now())
	if ok {
		r.cell.Store(snap)
		r.bus.Publish(events.NewSnapshot(snap))
		return
	}
	if seq, ok := parseAck(line); ok {
		if r.verbose {
			log.Printf("%s ack: seq=%d", logPrefix, seq)
		}
		return
	}
	// Anything else is wire debris; the firmware resends soon enough.
}

type ackFrame struct {
	Res string `json:"res"`
	Seq int64  `json:"seq"`
}

// parseAck recognizes the firmware's command acknowledgement frame.
func parseAck(line string) (int64, bool) {
	var f ackFrame
	if err := json.Unmarshal([]byte(line), &f); err != nil {
		return 0, false
	}
	if f.Res != "ACK" {
		return 0, false
	}
	return f.Seq, true
}
