package interpret

import "artie/internal/sensor"

// Mood and action vocabulary the consistency rules operate on. The model
// may emit other values; only these participate in corrections.
const (
	MoodNeutral = "neutral"
	MoodHappy   = "happy"
	MoodSad     = "sad"
	MoodAngry   = "angry"

	ActNone  = "none"
	ActNod   = "nod"
	ActShake = "shake"
	ActScan  = "scan"
)

// Request is one pipeline input: the query text plus the sensor snapshot
// captured at submission time.
type Request struct {
	Query    string
	Snapshot sensor.Snapshot
}

// RobotCommand is the validated pipeline output. L1 and L2 are
// display-ready: ASCII only, at most 16 characters.
type RobotCommand struct {
	Seq  int64
	L1   string
	L2   string
	Chat string
	Mood string
	Act  string
}
