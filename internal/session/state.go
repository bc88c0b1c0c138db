package session

import "fmt"

// State is the controller's lifecycle position. It only ever moves
// forward: once Closing is reached the session never accepts new work,
// and Terminated is final.
type State int

const (
	Idle State = iota
	AwaitingReply
	Closing
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingReply:
		return "awaiting-reply"
	case Closing:
		return "closing"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
