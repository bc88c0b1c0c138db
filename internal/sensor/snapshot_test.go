package sensor

import (
	"testing"
	"time"
)

func TestDiscomfortIndex(t *testing.T) {
	s := Snapshot{Temp: 30, Humid: 50}
	if got := s.DiscomfortIndex(); got != 78.3 {
		t.Fatalf("di=%v", got)
	}
	if got := s.WeatherStatus(); got != WeatherUncomfortable {
		t.Fatalf("weather=%q", got)
	}

	hot := Snapshot{Temp: 35, Humid: 80}
	if got := hot.WeatherStatus(); got != WeatherDangerous {
		t.Fatalf("weather=%q", got)
	}

	cool := Snapshot{Temp: 18, Humid: 40}
	if got := cool.WeatherStatus(); got != WeatherPleasant {
		t.Fatalf("weather=%q", got)
	}
}

func TestLightStatus(t *testing.T) {
	cases := []struct {
		light int
		want  string
	}{
		{700, LightDark},
		{600, LightDark},
		{599, LightNormal},
		{300, LightNormal},
		{151, LightNormal},
		{150, LightBright},
		{100, LightBright},
	}
	for _, c := range cases {
		s := Snapshot{Light: c.light}
		if got := s.LightStatus(); got != c.want {
			t.Fatalf("light=%d got=%q want=%q", c.light, got, c.want)
		}
	}
}

func TestParseFrame(t *testing.T) {
	now := time.Now()

	snap, ok := ParseFrame(`{"type":"SENSOR","temp":23.5,"humid":41,"light":512,"btn":1}`, now)
	if !ok {
		t.Fatalf("ok=false")
	}
	if snap.Temp != 23.5 || snap.Humid != 41 || snap.Light != 512 || snap.Btn != 1 {
		t.Fatalf("snap=%+v", snap)
	}
	if !snap.CapturedAt.Equal(now) {
		t.Fatalf("capturedAt=%v", snap.CapturedAt)
	}

	if _, ok := ParseFrame("", now); ok {
		t.Fatalf("empty line parsed")
	}
	if _, ok := ParseFrame("garbage{{{", now); ok {
		t.Fatalf("malformed line parsed")
	}
	if _, ok := ParseFrame(`{"res":"ACK","seq":3}`, now); ok {
		t.Fatalf("ack parsed as telemetry")
	}
	if _, ok := ParseFrame(`{"type":"OTHER","temp":1}`, now); ok {
		t.Fatalf("non-sensor frame parsed")
	}
}

func TestCellLoadStore(t *testing.T) {
	var c Cell
	if got := c.Load(); got != (Snapshot{}) {
		t.Fatalf("zero cell=%+v", got)
	}
	s := Snapshot{Temp: 21, Light: 400, CapturedAt: time.Now()}
	c.Store(s)
	if got := c.Load(); got != s {
		t.Fatalf("got=%+v", got)
	}
}
