package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"artie/internal/events"
	"artie/internal/interpret"
	"artie/internal/llm"
	"artie/internal/sensor"
	"artie/internal/syncx"
	"artie/internal/textutil"
)

const (
	logPrefix = "[artie/session]"

	terminationQuery = "System Termination"
	criticalTag      = "[CRITICAL]"

	noticeFarewell      = "3초 후 시스템이 종료됩니다..."
	noticeCriticalFault = "⛔ 치명적인 서버 오류가 발생했습니다."
	noticeCriticalDelay = "3초 후 프로그램을 자동 종료합니다..."

	farewellDelay     = 3 * time.Second
	closingErrorDelay = 2 * time.Second

	senderUser  = "Me"
	senderRobot = "Artie"
)

var (
	// ErrBusy is returned by Submit while a reply is in flight.
	ErrBusy = errors.New("session: reply in progress")
	// ErrClosed is returned by Submit once the closing sequence has begun.
	ErrClosed = errors.New("session: closing")
)

var quitWords = []string{"quit", "exit", "종료"}

// Interpreter runs one query through the reply pipeline.
// *interpret.Pipeline satisfies it.
type Interpreter interface {
	Run(ctx context.Context, req interpret.Request, seq int64) (interpret.RobotCommand, error)
}

// Transmitter sends one validated command to the robot.
type Transmitter interface {
	Send(cmd interpret.RobotCommand) error
}

type submission struct {
	text string
	auto bool
	resc chan submitResult
}

type submitResult struct {
	id  string
	err error
}

type outcome struct {
	id  string
	cmd interpret.RobotCommand
	err error
}

// Controller is the session state machine. All state lives on the Run
// goroutine; Submit and the termination timers talk to it over channels.
type Controller struct {
	cell   *sensor.Cell
	interp Interpreter
	tx     Transmitter
	bus    *events.Bus
	group  *syncx.Group
	stop   func()

	seq Sequence

	submitCh  chan submission
	outcomeCh chan outcome
	termCh    chan struct{}
	done      chan struct{}

	farewellDelay time.Duration
	closingDelay  time.Duration

	state   State
	closing atomic.Bool
}

// NewController wires the state machine. stop cancels the run context and
// is invoked exactly once, on the transition to Terminated. The group owns
// the per-invocation pipeline goroutines.
func NewController(cell *sensor.Cell, interp Interpreter, tx Transmitter, bus *events.Bus, group *syncx.Group, stop func()) *Controller {
	return &Controller{
		cell:          cell,
		interp:        interp,
		tx:            tx,
		bus:           bus,
		group:         group,
		stop:          stop,
		submitCh:      make(chan submission),
		outcomeCh:     make(chan outcome, 1),
		termCh:        make(chan struct{}, 1),
		done:          make(chan struct{}),
		farewellDelay: farewellDelay,
		closingDelay:  closingErrorDelay,
	}
}

// Submit hands a user query to the controller: the text is published as a
// user chat message, quit keywords start the farewell sequence. Returns
// ErrBusy while a reply is in flight and ErrClosed once closing has begun.
func (c *Controller) Submit(text string) error {
	_, err := c.submit(text, false)
	return err
}

// SubmitAuto hands a synthetic trigger query to the controller: no chat
// message is published and quit detection does not apply. On acceptance it
// returns the invocation ID.
func (c *Controller) SubmitAuto(text string) (string, error) {
	return c.submit(text, true)
}

// Closing reports whether the farewell sequence has begun. Readable from
// any goroutine; the trigger monitor uses it to gate button submissions.
func (c *Controller) Closing() bool {
	return c.closing.Load()
}

func (c *Controller) submit(text string, auto bool) (string, error) {
	sub := submission{text: text, auto: auto, resc: make(chan submitResult, 1)}
	select {
	case c.submitCh <- sub:
	case <-c.done:
		return "", ErrClosed
	}
	select {
	case res := <-sub.resc:
		return res.id, res.err
	case <-c.done:
		return "", ErrClosed
	}
}

// Run drives the state machine until the run context is cancelled. It is
// the only goroutine that touches the state fields.
func (c *Controller) Run(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-c.submitCh:
			id, err := c.handleSubmit(sub)
			sub.resc <- submitResult{id: id, err: err}
		case out := <-c.outcomeCh:
			c.handleOutcome(out)
		case <-c.termCh:
			c.handleTerminate()
		}
	}
}

func (c *Controller) handleSubmit(sub submission) (string, error) {
	if c.state == Terminated || c.closing.Load() {
		return "", ErrClosed
	}
	if c.state == AwaitingReply {
		log.Printf("%s submit dropped: reply in progress", logPrefix)
		return "", ErrBusy
	}

	text := strings.TrimSpace(sub.text)
	if text == "" {
		return "", nil
	}

	query := text
	if !sub.auto {
		if isQuitWord(text) {
			log.Printf("%s shutdown requested, starting farewell", logPrefix)
			c.closing.Store(true)
			query = terminationQuery
		}
		c.bus.Publish(events.NewChat(senderUser, text, true))
	}
	return c.dispatch(query), nil
}

// dispatch starts the single in-flight pipeline invocation.
func (c *Controller) dispatch(query string) string {
	snap := c.cell.Load()
	seq := c.seq.Next()
	id := uuid.NewString()
	c.state = AwaitingReply
	log.Printf("%s invocation %s: seq=%d query=%s", logPrefix, id, seq, textutil.Preview(query, 40))
	c.group.Go(func(ctx context.Context) {
		cmd, err := c.interp.Run(ctx, interpret.Request{Query: query, Snapshot: snap}, seq)
		c.outcomeCh <- outcome{id: id, cmd: cmd, err: err}
	})
	return id
}

func (c *Controller) handleOutcome(out outcome) {
	if c.state == Terminated {
		return
	}
	if out.err != nil {
		c.handleFailure(out)
		return
	}

	cmd := out.cmd
	if err := c.tx.Send(cmd); err != nil {
		log.Printf("%s send seq=%d: %v", logPrefix, cmd.Seq, err)
	}
	log.Printf("%s invocation %s done: seq=%d lcd=[%s][%s] mood=%s act=%s",
		logPrefix, out.id, cmd.Seq, cmd.L1, cmd.L2, cmd.Mood, cmd.Act)
	c.bus.Publish(events.NewCommand(cmd.Seq, cmd.L1, cmd.L2, cmd.Mood, cmd.Act, cmd.Chat))
	c.bus.Publish(events.NewChat(senderRobot, cmd.Chat, false))

	if c.closing.Load() {
		c.state = Closing
		c.bus.Publish(events.NewSystem(noticeFarewell))
		c.bus.Publish(events.NewTermination(int(c.farewellDelay / time.Second)))
		time.AfterFunc(c.farewellDelay, c.requestTerminate)
		return
	}
	c.state = Idle
}

func (c *Controller) handleFailure(out outcome) {
	critical := llm.IsCritical(out.err)
	msg := out.err.Error()
	if critical {
		msg = criticalTag + " " + msg
	}
	log.Printf("%s invocation %s failed: %s", logPrefix, out.id, msg)
	c.bus.Publish(events.NewError(msg, critical))
	c.bus.Publish(events.NewSystem("Error: " + msg))

	switch {
	case critical:
		c.closing.Store(true)
		c.state = Closing
		c.bus.Publish(events.NewSystem(noticeCriticalFault))
		c.bus.Publish(events.NewSystem(noticeCriticalDelay))
		c.bus.Publish(events.NewTermination(int(c.farewellDelay / time.Second)))
		time.AfterFunc(c.farewellDelay, c.requestTerminate)
	case c.closing.Load():
		c.state = Closing
		c.bus.Publish(events.NewTermination(int(c.closingDelay / time.Second)))
		time.AfterFunc(c.closingDelay, c.requestTerminate)
	default:
		c.state = Idle
	}
}

func (c *Controller) handleTerminate() {
	if c.state == Terminated {
		return
	}
	c.state = Terminated
	log.Printf("%s terminated", logPrefix)
	c.stop()
}

func (c *Controller) requestTerminate() {
	select {
	case c.termCh <- struct{}{}:
	default:
	}
}

func isQuitWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range quitWords {
		if lower == w {
			return true
		}
	}
	return false
}
