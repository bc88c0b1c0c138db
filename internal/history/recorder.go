package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"artie/internal/events"
)

const logPrefix = "[artie/history]"

const schema = `
CREATE TABLE IF NOT EXISTS telemetry (
	id TEXT PRIMARY KEY,
	captured_at TIMESTAMP NOT NULL,
	temp REAL NOT NULL,
	humid REAL NOT NULL,
	light INTEGER NOT NULL,
	btn INTEGER NOT NULL,
	discomfort REAL NOT NULL,
	weather TEXT NOT NULL,
	light_status TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS triggers (
	id TEXT PRIMARY KEY,
	at TIMESTAMP NOT NULL,
	invocation_id TEXT,
	from_status TEXT NOT NULL,
	to_status TEXT NOT NULL,
	fired INTEGER NOT NULL,
	reason TEXT NOT NULL
);
`

// Recorder persists telemetry frames and trigger evaluations to a local
// SQLite file. Chat content is never written anywhere.
type Recorder struct {
	db  *sql.DB
	bus *events.Bus
}

// Open creates or opens the history database and ensures the schema.
func Open(path string, bus *events.Bus) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}
	return &Recorder{db: db, bus: bus}, nil
}

// Run consumes bus events until the context is cancelled. Insert failures
// are logged and skipped; recording never disturbs the session.
func (r *Recorder) Run(ctx context.Context) {
	evs, cancel := r.bus.Subscribe(128)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-evs:
			r.record(ev)
		}
	}
}

func (r *Recorder) record(ev events.Event) {
	var err error
	switch {
	case ev.Type == events.TypeSnapshot && ev.Snapshot != nil:
		err = r.insertTelemetry(ev)
	case ev.Type == events.TypeTrigger && ev.Trigger != nil:
		err = r.insertTrigger(ev)
	default:
		return
	}
	if err != nil {
		log.Printf("%s record %s: %v", logPrefix, ev.Type, err)
	}
}

func (r *Recorder) insertTelemetry(ev events.Event) error {
	s := ev.Snapshot
	_, err := r.db.Exec(
		`INSERT INTO telemetry (id, captured_at, temp, humid, light, btn, discomfort, weather, light_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), s.CapturedAt, s.Temp, s.Humid, s.Light, s.Btn, s.Discomfort, s.Weather, s.LightStatus)
	return err
}

func (r *Recorder) insertTrigger(ev events.Event) error {
	t := ev.Trigger
	_, err := r.db.Exec(
		`INSERT INTO triggers (id, at, invocation_id, from_status, to_status, fired, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.At, t.InvocationID, t.From, t.To, t.Fired, t.Reason)
	return err
}

func (r *Recorder) Close() error {
	return r.db.Close()
}
