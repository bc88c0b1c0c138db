package interpret

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"artie/internal/llm"
	"artie/internal/prompt"
)

// Pipeline turns one user query plus a sensor snapshot into a validated
// RobotCommand by way of the configured language-model backend.
type Pipeline struct {
	backend llm.Backend
	prompts *prompt.Store
	rng     Rand
}

// NewPipeline builds a pipeline. A nil rng gets a time-seeded source.
func NewPipeline(backend llm.Backend, prompts *prompt.Store, rng Rand) *Pipeline {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pipeline{backend: backend, prompts: prompts, rng: rng}
}

// Run executes one interpretation pass. A *llm.CriticalError means the
// backend transport failed and the caller should begin shutdown; any other
// error is recoverable. No command is produced on error.
func (p *Pipeline) Run(ctx context.Context, req Request, seq int64) (RobotCommand, error) {
	furious := isFurious(req.Query)
	system := p.prompts.Render(req.Snapshot)

	content, err := p.backend.Chat(ctx, system, req.Query)
	if err != nil {
		return RobotCommand{}, err
	}
	return p.assemble(content, furious, seq)
}

func isFurious(query string) bool {
	for _, kw := range angerKeywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

func hasApologyMarker(chat string) bool {
	for _, m := range apologyMarkers {
		if strings.Contains(chat, m) {
			return true
		}
	}
	return false
}

// assemble runs the local steps on the completion content: extraction,
// coercion, the anger override, consistency corrections and display
// sanitization. Faults here must never take the session down, so the whole
// thing runs behind a recover.
func (p *Pipeline) assemble(content string, furious bool, seq int64) (cmd RobotCommand, err error) {
	defer func() {
		if r := recover(); r != nil {
			cmd = RobotCommand{}
			err = fmt.Errorf("interpret: reply processing failed: %v", r)
		}
	}()

	var l1, l2, chat, mood, act string
	if obj, ok := extractObject(content); ok {
		l1 = strings.TrimSpace(stringField(obj, "l1"))
		l2 = strings.TrimSpace(stringField(obj, "l2"))
		chat = stringField(obj, "chat")
		mood = stringFieldOr(obj, "mood", MoodNeutral)
		act = stringFieldOr(obj, "act", ActNone)
	} else {
		l1, l2, chat = fallbackL1Thinking, fallbackL2Thinking, fallbackChatThinking
		mood, act = MoodNeutral, ActScan
	}

	if l1 == "" && chat == "" {
		l1, l2, chat = fallbackL1Unknown, fallbackL2Unknown, fallbackChatRepeat
		act = ActScan
	}

	if furious {
		mood, act = MoodAngry, ActShake
		l1, l2 = angryL1, angryL2
		if !hasApologyMarker(chat) {
			chat = apologyChat
		}
	}

	switch {
	case mood == MoodSad && act == ActNod:
		act = ActNone
	case mood == MoodAngry && act == ActNod:
		act = ActShake
	}

	l1 = sanitizeLine(l1, mood, false, p.rng)
	l2 = sanitizeLine(l2, mood, true, p.rng)

	return RobotCommand{Seq: seq, L1: l1, L2: l2, Chat: chat, Mood: mood, Act: act}, nil
}
