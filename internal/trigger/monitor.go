package trigger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"artie/internal/events"
	"artie/internal/sensor"
	"artie/internal/session"
	"artie/internal/textutil"
)

const (
	logPrefix = "[artie/trigger]"

	cooldown = 5 * time.Second

	alertQuery = "(System Alert: The light level just changed to %s. React to this sudden change immediately!)"
	changeMsg  = "[환경 변화 감지] 조명 상태가 '%s'로 변경되었습니다."

	btnPreviewRunes = 11
)

// Audit reasons recorded for every evaluated light transition.
const (
	reasonFired    = "fired"
	reasonCooldown = "cooldown"
	reasonClosing  = "closing"
	reasonBusy     = "busy"
	reasonNormal   = "normal-status"
)

// buttonPhrases are the canned queries a hardware button press picks from.
var buttonPhrases = []string{
	"안녕?",
	"와썹!",
	"오늘 기분 어때?",
	"심심해 놀아줘",
	"너는 누구야?",
	"사랑해",
	"노래 한 소절 불러줘",
	"무서운 이야기 해줘",
	"독도는 누구 땅?",
	"2 더하기 2는?",
}

// Rand picks button phrases. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Submitter is the slice of the session controller the monitor drives.
type Submitter interface {
	Submit(text string) error
	SubmitAuto(text string) (string, error)
	Closing() bool
}

// Monitor watches snapshot events for light-status transitions and button
// presses and turns them into session submissions. Light transitions are
// rate-limited by a cooldown; every evaluated transition is published as a
// trigger-evaluated audit event.
type Monitor struct {
	bus *events.Bus
	sub Submitter
	rng Rand
	now func() time.Time

	lastLightStatus string
	lastFiredAt     time.Time
	prevBtn         int
}

// NewMonitor builds a monitor. A nil rng gets a time-seeded source.
func NewMonitor(bus *events.Bus, sub Submitter, rng Rand) *Monitor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Monitor{
		bus:             bus,
		sub:             sub,
		rng:             rng,
		now:             time.Now,
		lastLightStatus: sensor.LightNormal,
	}
}

// Run consumes snapshot events until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	evs, cancel := m.bus.Subscribe(32)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-evs:
			if ev.Type != events.TypeSnapshot || ev.Snapshot == nil {
				continue
			}
			m.evaluateLight(ev.Snapshot.LightStatus)
			m.evaluateButton(ev.Snapshot.Btn)
		}
	}
}

// evaluateLight consumes a status transition. lastLightStatus advances on
// every change, fired or not, so a held status never re-triggers.
func (m *Monitor) evaluateLight(status string) {
	if status == m.lastLightStatus {
		return
	}
	from := m.lastLightStatus
	m.lastLightStatus = status

	switch {
	case status != sensor.LightDark && status != sensor.LightBright:
		m.audit("", from, status, false, reasonNormal)
	case m.sub.Closing():
		m.audit("", from, status, false, reasonClosing)
	case m.now().Sub(m.lastFiredAt) < cooldown:
		m.audit("", from, status, false, reasonCooldown)
	default:
		m.fire(from, status)
	}
}

func (m *Monitor) fire(from, to string) {
	id, err := m.sub.SubmitAuto(fmt.Sprintf(alertQuery, to))
	if err != nil {
		reason := reasonBusy
		if errors.Is(err, session.ErrClosed) {
			reason = reasonClosing
		}
		log.Printf("%s light changed to %s, not reacting: %v", logPrefix, to, err)
		m.audit("", from, to, false, reason)
		return
	}
	m.lastFiredAt = m.now()
	log.Printf("%s light changed to %s, reacting", logPrefix, to)
	m.bus.Publish(events.NewSystem(fmt.Sprintf(changeMsg, to)))
	m.audit(id, from, to, true, reasonFired)
}

func (m *Monitor) evaluateButton(btn int) {
	rising := btn == 1 && m.prevBtn == 0
	m.prevBtn = btn
	if !rising || m.sub.Closing() {
		return
	}
	phrase := buttonPhrases[m.rng.Intn(len(buttonPhrases))]
	m.bus.Publish(events.NewSystem("Btn: " + textutil.FirstRunes(phrase, btnPreviewRunes) + ".."))
	if err := m.sub.Submit(phrase); err != nil {
		log.Printf("%s button press dropped: %v", logPrefix, err)
		return
	}
	log.Printf("%s button pressed: %s", logPrefix, textutil.Preview(phrase, 20))
}

func (m *Monitor) audit(invocationID, from, to string, fired bool, reason string) {
	m.bus.Publish(events.NewTrigger(invocationID, from, to, fired, reason))
}
