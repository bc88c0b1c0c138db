package link

import (
	"encoding/json"
	"fmt"

	"artie/internal/interpret"
)

// Transmitter serializes commands onto the transport. Chat text stays
// local; the robot only needs the display and actuation fields.
type Transmitter struct {
	tr Transport
}

func NewTransmitter(tr Transport) *Transmitter {
	return &Transmitter{tr: tr}
}

type wireCommand struct {
	Seq  int64  `json:"seq"`
	L1   string `json:"l1"`
	L2   string `json:"l2"`
	Mood string `json:"mood"`
	Act  string `json:"act"`
}

func (t *Transmitter) Send(cmd interpret.RobotCommand) error {
	b, err := json.Marshal(wireCommand{Seq: cmd.Seq, L1: cmd.L1, L2: cmd.L2, Mood: cmd.Mood, Act: cmd.Act})
	if err != nil {
		return err
	}
	if err := t.tr.WriteLine(string(b)); err != nil {
		return fmt.Errorf("link: write command seq=%d: %w", cmd.Seq, err)
	}
	return nil
}
