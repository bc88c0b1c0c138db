package trigger

import (
	"context"
	"sync"
	"testing"
	"time"

	"artie/internal/events"
	"artie/internal/sensor"
	"artie/internal/session"
	"artie/internal/syncx"
)

type memSubmitter struct {
	mu      sync.Mutex
	user    []string
	auto    []string
	err     error
	closing bool
}

func (s *memSubmitter) Submit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.user = append(s.user, text)
	return nil
}

func (s *memSubmitter) SubmitAuto(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.auto = append(s.auto, text)
	return "inv-1", nil
}

func (s *memSubmitter) Closing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

func (s *memSubmitter) setClosing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closing = v
}

func (s *memSubmitter) autoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.auto)
}

type fixedRand struct{ n int }

func (f fixedRand) Intn(n int) int { return f.n % n }

func drainTriggers(evs <-chan events.Event) []events.TriggerPayload {
	var out []events.TriggerPayload
	for {
		select {
		case ev := <-evs:
			if ev.Type == events.TypeTrigger && ev.Trigger != nil {
				out = append(out, *ev.Trigger)
			}
		default:
			return out
		}
	}
}

func TestLightTransitionFiresOnce(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	evs, unsub := bus.Subscribe(64)
	defer unsub()
	sub := &memSubmitter{}
	m := NewMonitor(bus, sub, fixedRand{})

	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }

	m.evaluateLight(sensor.LightDark)
	if got := sub.autoCount(); got != 1 {
		t.Fatalf("after first Dark: %d submissions", got)
	}
	if sub.auto[0] != "(System Alert: The light level just changed to Dark. React to this sudden change immediately!)" {
		t.Fatalf("query = %q", sub.auto[0])
	}

	// Same status again: already consumed, nothing happens.
	m.evaluateLight(sensor.LightDark)
	if got := sub.autoCount(); got != 1 {
		t.Fatalf("after repeated Dark: %d submissions", got)
	}

	// Bouncing back to Normal never triggers.
	now = now.Add(time.Second)
	m.evaluateLight(sensor.LightNormal)
	if got := sub.autoCount(); got != 1 {
		t.Fatalf("after Normal: %d submissions", got)
	}

	// Dark again inside the cooldown window is suppressed.
	m.evaluateLight(sensor.LightDark)
	if got := sub.autoCount(); got != 1 {
		t.Fatalf("inside cooldown: %d submissions", got)
	}

	// After the cooldown the next transition fires.
	now = now.Add(6 * time.Second)
	m.evaluateLight(sensor.LightBright)
	if got := sub.autoCount(); got != 2 {
		t.Fatalf("after cooldown: %d submissions", got)
	}

	audits := drainTriggers(evs)
	wantReasons := []string{reasonFired, reasonNormal, reasonCooldown, reasonFired}
	if len(audits) != len(wantReasons) {
		t.Fatalf("audits = %d, want %d", len(audits), len(wantReasons))
	}
	for i, want := range wantReasons {
		if audits[i].Reason != want {
			t.Fatalf("audit[%d].Reason = %q, want %q", i, audits[i].Reason, want)
		}
	}
	if !audits[0].Fired || audits[0].InvocationID == "" {
		t.Fatalf("fired audit = %+v", audits[0])
	}
	if audits[2].Fired || audits[2].InvocationID != "" {
		t.Fatalf("suppressed audit = %+v", audits[2])
	}
}

func TestLightSuppressedWhileClosing(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	evs, unsub := bus.Subscribe(64)
	defer unsub()
	sub := &memSubmitter{closing: true}
	m := NewMonitor(bus, sub, fixedRand{})

	m.evaluateLight(sensor.LightDark)
	if got := sub.autoCount(); got != 0 {
		t.Fatalf("submissions while closing = %d", got)
	}
	audits := drainTriggers(evs)
	if len(audits) != 1 || audits[0].Reason != reasonClosing {
		t.Fatalf("audits = %+v", audits)
	}

	// No announcement accompanies a suppressed transition.
	select {
	case ev := <-evs:
		if ev.Type == events.TypeSystem {
			t.Fatalf("unexpected system message %q", ev.Text)
		}
	default:
	}
}

// The controller can begin closing between the monitor's check and the
// submission; the rejection still audits as closing.
func TestLightClosedRaceAuditsClosing(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	evs, unsub := bus.Subscribe(64)
	defer unsub()
	sub := &memSubmitter{err: session.ErrClosed}
	m := NewMonitor(bus, sub, fixedRand{})

	m.evaluateLight(sensor.LightBright)
	if got := sub.autoCount(); got != 0 {
		t.Fatalf("submissions = %d", got)
	}
	audits := drainTriggers(evs)
	if len(audits) != 1 || audits[0].Reason != reasonClosing || audits[0].Fired {
		t.Fatalf("audits = %+v", audits)
	}
}

func TestButtonRisingEdge(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	evs, unsub := bus.Subscribe(64)
	defer unsub()
	sub := &memSubmitter{}
	m := NewMonitor(bus, sub, fixedRand{n: 3})

	m.evaluateButton(1)
	m.evaluateButton(1) // held
	m.evaluateButton(0)
	m.evaluateButton(1)

	sub.mu.Lock()
	if len(sub.user) != 2 {
		t.Fatalf("submissions = %v", sub.user)
	}
	if sub.user[0] != "심심해 놀아줘" {
		t.Fatalf("phrase = %q", sub.user[0])
	}
	sub.mu.Unlock()

	ev := <-evs
	if ev.Type != events.TypeSystem || ev.Text != "Btn: 심심해 놀아줘.." {
		t.Fatalf("preview = %+v", ev)
	}
	<-evs // second preview

	// A press during the farewell publishes nothing at all.
	sub.setClosing(true)
	m.evaluateButton(0)
	m.evaluateButton(1)
	select {
	case ev := <-evs:
		t.Fatalf("unexpected event during closing: %+v", ev)
	default:
	}
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if len(sub.user) != 2 {
		t.Fatalf("submissions after closing = %v", sub.user)
	}
}

func TestRunConsumesSnapshots(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	sub := &memSubmitter{}
	m := NewMonitor(bus, sub, fixedRand{})

	ctx, cancel := context.WithCancel(context.Background())
	group := syncx.NewGroup(ctx)
	group.Go(m.Run)
	defer func() {
		cancel()
		group.Wait()
	}()

	// Give the subscriber a moment to attach before publishing.
	time.Sleep(10 * time.Millisecond)
	bus.Publish(events.NewSnapshot(sensor.Snapshot{Temp: 24, Humid: 40, Light: 700}))

	deadline := time.After(2 * time.Second)
	for sub.autoCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("snapshot event did not trigger a submission")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
