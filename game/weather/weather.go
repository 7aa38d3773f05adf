// Package weather derives the current weather from the hour of day and fades
// its overlay intensity between transitions.
package weather

// Kind is a weather condition.
type Kind uint8

const (
	Clear Kind = iota
	Fog
	Rain
	Snow
)

var kindNames = [...]string{"clear", "fog", "rain", "snow"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

const (
	// FadeDuration is how long, in seconds, the overlay takes to reach its
	// new intensity after the weather changes.
	FadeDuration = 10.0
	// MaxIntensity is the overlay intensity of any non-clear weather.
	MaxIntensity = 100.0
)

// ForHour returns the weather scheduled for hour.
func ForHour(hour int) Kind {
	switch hour {
	case 21, 22, 23, 3, 4, 5:
		return Rain
	case 0, 1, 2:
		return Snow
	case 19, 20:
		return Fog
	}
	return Clear
}

// System tracks the active weather and its overlay intensity.
type System struct {
	kind      Kind
	intensity float64
	from      float64
	target    float64
	elapsed   float64
}

// New returns clear weather with no overlay.
func New() *System {
	return &System{elapsed: FadeDuration}
}

// Update applies the weather for hour and advances the fade by dt seconds.
// It reports whether the weather kind changed.
func (s *System) Update(hour int, dt float64) bool {
	changed := false
	if k := ForHour(hour); k != s.kind {
		s.kind = k
		s.from = s.intensity
		s.target = 0
		if k != Clear {
			s.target = MaxIntensity
		}
		s.elapsed = 0
		changed = true
	}
	s.elapsed += dt
	progress := s.elapsed / FadeDuration
	if progress >= 1 {
		s.intensity = s.target
	} else {
		s.intensity = s.from + (s.target-s.from)*progress
	}
	return changed
}

// Kind returns the active weather.
func (s *System) Kind() Kind { return s.kind }

// Intensity returns the overlay intensity in [0, MaxIntensity].
func (s *System) Intensity() float64 { return s.intensity }

// Fading reports whether the overlay is still moving toward its target.
func (s *System) Fading() bool { return s.elapsed < FadeDuration }
