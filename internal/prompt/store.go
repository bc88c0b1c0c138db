package prompt

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"artie/internal/sensor"
)

const embeddedName = "system_prompt.txt"

// FallbackPrompt is the last-resort instruction when no template can be
// read at all. Template problems are never fatal.
const FallbackPrompt = "You are Artie. JSON Output required."

// Environment hints appended to the base template so the model reacts to
// the room, not just the words.
const (
	hintDark   = "[ENV INFO] Dark environment. Act sleepy or scared."
	hintBright = "[ENV INFO] Bright environment. Act energetic."
)

// Store renders the system prompt for one invocation. The template file is
// re-read every time so it can be edited while the driver runs.
type Store struct {
	file string
}

func NewStore(file string) *Store {
	return &Store{file: strings.TrimSpace(file)}
}

// Base returns the raw template: the configured file if readable, else the
// embedded default, else FallbackPrompt.
func (s *Store) Base() string {
	for _, p := range s.candidatePaths() {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		t := strings.TrimSpace(string(b))
		if t == "" {
			continue
		}
		return t
	}
	if t, err := readEmbedded(embeddedName); err == nil {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return FallbackPrompt
}

// Render substitutes the snapshot values into the template and appends the
// light hint for Dark/Bright rooms.
func (s *Store) Render(snap sensor.Snapshot) string {
	p := s.Base()
	p = strings.ReplaceAll(p, "{temp}", formatFloat(snap.Temp))
	p = strings.ReplaceAll(p, "{humid}", formatFloat(snap.Humid))
	p = strings.ReplaceAll(p, "{light}", strconv.Itoa(snap.Light))
	p = strings.ReplaceAll(p, "{light_status}", snap.LightStatus())

	switch snap.LightStatus() {
	case sensor.LightDark:
		p += "\n" + hintDark
	case sensor.LightBright:
		p += "\n" + hintBright
	}
	return p
}

func (s *Store) candidatePaths() []string {
	if s.file == "" {
		return nil
	}
	if filepath.IsAbs(s.file) {
		return []string{s.file}
	}

	var out []string
	if cwd, err := os.Getwd(); err == nil && cwd != "" {
		out = append(out, filepath.Join(cwd, s.file))
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		out = append(out, filepath.Join(filepath.Dir(exe), s.file))
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(out))
	for _, p := range out {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	return uniq
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
