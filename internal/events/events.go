package events

import (
	"time"

	"artie/internal/sensor"
)

// Type identifies a bus event. The values double as the wire names sent to
// gateway clients.
type Type string

const (
	TypeSnapshot    Type = "snapshot-updated"
	TypeChat        Type = "chat-message"
	TypeSystem      Type = "system-message"
	TypeCommand     Type = "command-ready"
	TypeError       Type = "error"
	TypeTermination Type = "termination-imminent"
	TypeTrigger     Type = "trigger-evaluated"
)

// Event is the single envelope published on the bus; exactly one payload
// field is set, matching Type.
type Event struct {
	Type Type      `json:"event"`
	At   time.Time `json:"at"`

	Snapshot     *SnapshotPayload `json:"snapshot,omitempty"`
	Chat         *ChatPayload     `json:"chat,omitempty"`
	Text         string           `json:"text,omitempty"`
	Command      *CommandPayload  `json:"command,omitempty"`
	Error        *ErrorPayload    `json:"error,omitempty"`
	Trigger      *TriggerPayload  `json:"trigger,omitempty"`
	DelaySeconds int              `json:"delay_seconds,omitempty"`
}

// SnapshotPayload carries a telemetry reading plus its derived statuses so
// display layers need no formula knowledge.
type SnapshotPayload struct {
	Temp        float64   `json:"temp"`
	Humid       float64   `json:"humid"`
	Light       int       `json:"light"`
	Btn         int       `json:"btn"`
	Discomfort  float64   `json:"discomfort"`
	Weather     string    `json:"weather"`
	LightStatus string    `json:"light_status"`
	CapturedAt  time.Time `json:"captured_at"`
}

type ChatPayload struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	IsUser bool   `json:"is_user"`
}

type CommandPayload struct {
	Seq  int64  `json:"seq"`
	L1   string `json:"l1"`
	L2   string `json:"l2"`
	Mood string `json:"mood"`
	Act  string `json:"act"`
	Chat string `json:"chat"`
}

type ErrorPayload struct {
	Message  string `json:"message"`
	Critical bool   `json:"critical"`
}

// TriggerPayload is the audit record of one evaluated light transition.
// InvocationID is set only when the trigger fired.
type TriggerPayload struct {
	InvocationID string `json:"invocation_id,omitempty"`
	From         string `json:"from_status"`
	To           string `json:"to_status"`
	Fired        bool   `json:"fired"`
	Reason       string `json:"reason"`
}

func NewSnapshot(s sensor.Snapshot) Event {
	return Event{
		Type: TypeSnapshot,
		At:   time.Now(),
		Snapshot: &SnapshotPayload{
			Temp:        s.Temp,
			Humid:       s.Humid,
			Light:       s.Light,
			Btn:         s.Btn,
			Discomfort:  s.DiscomfortIndex(),
			Weather:     s.WeatherStatus(),
			LightStatus: s.LightStatus(),
			CapturedAt:  s.CapturedAt,
		},
	}
}

func NewChat(sender, text string, isUser bool) Event {
	return Event{
		Type: TypeChat,
		At:   time.Now(),
		Chat: &ChatPayload{Sender: sender, Text: text, IsUser: isUser},
	}
}

func NewSystem(text string) Event {
	return Event{Type: TypeSystem, At: time.Now(), Text: text}
}

func NewCommand(seq int64, l1, l2, mood, act, chat string) Event {
	return Event{
		Type:    TypeCommand,
		At:      time.Now(),
		Command: &CommandPayload{Seq: seq, L1: l1, L2: l2, Mood: mood, Act: act, Chat: chat},
	}
}

func NewError(message string, critical bool) Event {
	return Event{
		Type:  TypeError,
		At:    time.Now(),
		Error: &ErrorPayload{Message: message, Critical: critical},
	}
}

func NewTermination(delaySeconds int) Event {
	return Event{Type: TypeTermination, At: time.Now(), DelaySeconds: delaySeconds}
}

func NewTrigger(invocationID, from, to string, fired bool, reason string) Event {
	return Event{
		Type: TypeTrigger,
		At:   time.Now(),
		Trigger: &TriggerPayload{
			InvocationID: invocationID,
			From:         from,
			To:           to,
			Fired:        fired,
			Reason:       reason,
		},
	}
}
