package sensor

import (
	"encoding/json"
	"strings"
	"time"
)

const frameTypeSensor = "SENSOR"

type telemetryFrame struct {
	Type  string  `json:"type"`
	Temp  float64 `json:"temp"`
	Humid float64 `json:"humid"`
	Light float64 `json:"light"`
	Btn   float64 `json:"btn"`
}

// ParseFrame decodes one telemetry line. It reports ok=false for empty
// lines, malformed JSON and frames that are not tagged SENSOR; all of those
// are expected on the wire and must be discarded quietly.
func ParseFrame(line string, at time.Time) (Snapshot, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Snapshot{}, false
	}
	var f telemetryFrame
	if err := json.Unmarshal([]byte(line), &f); err != nil {
		return Snapshot{}, false
	}
	if f.Type != frameTypeSensor {
		return Snapshot{}, false
	}
	return Snapshot{
		Temp:       f.Temp,
		Humid:      f.Humid,
		Light:      int(f.Light),
		Btn:        int(f.Btn),
		CapturedAt: at,
	}, true
}
