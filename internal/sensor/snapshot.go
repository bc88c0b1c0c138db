package sensor

import (
	"math"
	"time"
)

// Weather status values derived from the discomfort index.
const (
	WeatherPleasant      = "Pleasant"
	WeatherModerate      = "Moderate"
	WeatherUncomfortable = "Uncomfortable"
	WeatherDangerous     = "Dangerous"
)

// Light status values derived from the raw photoresistor reading. The
// boundary values map exactly as the firmware intends: 600 is already Dark,
// 150 is already Bright.
const (
	LightDark   = "Dark"
	LightBright = "Bright"
	LightNormal = "Normal"
)

// Snapshot is the latest telemetry reading, replaced wholesale per frame.
type Snapshot struct {
	Temp       float64
	Humid      float64
	Light      int
	Btn        int
	CapturedAt time.Time
}

// DiscomfortIndex computes the perceived-heat index from temperature and
// humidity, rounded to one decimal. Non-finite results collapse to 0.0.
func (s Snapshot) DiscomfortIndex() float64 {
	rh := s.Humid / 100.0
	di := 1.8*s.Temp - 0.55*(1-rh)*(1.8*s.Temp-26) + 32
	if math.IsNaN(di) || math.IsInf(di, 0) {
		return 0.0
	}
	return math.Round(di*10) / 10
}

func (s Snapshot) WeatherStatus() string {
	di := s.DiscomfortIndex()
	switch {
	case di < 68:
		return WeatherPleasant
	case di < 75:
		return WeatherModerate
	case di < 80:
		return WeatherUncomfortable
	default:
		return WeatherDangerous
	}
}

func (s Snapshot) LightStatus() string {
	switch {
	case s.Light >= 600:
		return LightDark
	case s.Light <= 150:
		return LightBright
	default:
		return LightNormal
	}
}
