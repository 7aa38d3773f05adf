// Package clock is the in-game calendar. It advances only through Advance,
// converting real elapsed time into whole game minutes and carrying the
// remainder forward exactly.
package clock

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

// Calendar moduli.
const (
	MinutesPerHour = 60
	HoursPerDay    = 24
	DaysPerMonth   = 30
	MonthsPerYear  = 12

	minutesPerDay = MinutesPerHour * HoursPerDay
)

// DefaultDayLength is the real time one game day takes by default.
const DefaultDayLength = 180 * time.Second

// WakeHour is the first daylight hour after the night.
const WakeHour = 6

var nightHours = [HoursPerDay]bool{
	0: true, 1: true, 2: true, 3: true, 4: true, 5: true,
	21: true, 22: true, 23: true,
}

// IsNightHour reports whether hour is one of 21..23 or 0..5.
func IsNightHour(hour int) bool {
	return hour >= 0 && hour < HoursPerDay && nightHours[hour]
}

// ErrInvalidScale is returned for a non-positive day length.
var ErrInvalidScale = errors.New("clock: real time per game day must be positive")

// Time is a calendar reading.
type Time struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats t the way the HUD shows it: "D/M/Y - HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%d/%d/%d - %02d:%02d", t.Day, t.Month, t.Year, t.Hour, t.Minute)
}

// Clock is a game calendar driven by real elapsed time.
//
// One game minute lasts dayLength/1440 of real time. The sub-minute
// remainder is kept as real nanoseconds scaled by 1440, so it is always an
// exact integer below dayLength and splitting an advance into pieces never
// gains or loses a minute.
type Clock struct {
	now       Time
	dayLength time.Duration
	rem       uint64 // real ns × minutesPerDay not yet converted, < dayLength
}

// New returns a clock at year 1, month 1, day 1, 06:00 running one game day
// per dayLength of real time.
func New(dayLength time.Duration) (*Clock, error) {
	if dayLength <= 0 {
		return nil, ErrInvalidScale
	}
	return &Clock{
		now:       Time{Year: 1, Month: 1, Day: 1, Hour: WakeHour},
		dayLength: dayLength,
	}, nil
}

// NewAt returns a clock reading t.
func NewAt(t Time, dayLength time.Duration) (*Clock, error) {
	c, err := New(dayLength)
	if err != nil {
		return nil, err
	}
	c.now = t
	return c, nil
}

// maxStep bounds a single conversion so rem + dt×1440 fits in 128 bits
// with a high word below dayLength.
const maxStep = time.Duration(1 << 50)

// Advance moves the clock forward by dt of real time. Negative dt is
// ignored; the clock never runs backwards.
func (c *Clock) Advance(dt time.Duration) {
	for dt > 0 {
		step := dt
		if step > maxStep {
			step = maxStep
		}
		dt -= step
		c.advance(uint64(step))
	}
}

// AdvanceSeconds is Advance for a real delta in seconds.
func (c *Clock) AdvanceSeconds(dt float64) {
	c.Advance(time.Duration(dt * float64(time.Second)))
}

func (c *Clock) advance(ns uint64) {
	hi, lo := bits.Mul64(ns, minutesPerDay)
	var carry uint64
	lo, carry = bits.Add64(lo, c.rem, 0)
	hi += carry
	day := uint64(c.dayLength)
	if hi >= day {
		// Only reachable with sub-microsecond days; fall back to halving.
		c.advance(ns / 2)
		c.advance(ns - ns/2)
		return
	}
	minutes, rem := bits.Div64(hi, lo, day)
	c.rem = rem
	c.addMinutes(minutes)
}

func (c *Clock) addMinutes(m uint64) {
	t := &c.now
	total := uint64(t.Minute) + m
	t.Minute = int(total % MinutesPerHour)
	total = uint64(t.Hour) + total/MinutesPerHour
	t.Hour = int(total % HoursPerDay)
	total = uint64(t.Day-1) + total/HoursPerDay
	t.Day = int(total%DaysPerMonth) + 1
	total = uint64(t.Month-1) + total/DaysPerMonth
	t.Month = int(total%MonthsPerYear) + 1
	t.Year += int(total / MonthsPerYear)
}

// SetScale changes how much real time one game day takes. The progress
// through the current game minute is preserved.
func (c *Clock) SetScale(realPerGameDay time.Duration) error {
	if realPerGameDay <= 0 {
		return ErrInvalidScale
	}
	hi, lo := bits.Mul64(c.rem, uint64(realPerGameDay))
	c.rem, _ = bits.Div64(hi, lo, uint64(c.dayLength))
	c.dayLength = realPerGameDay
	return nil
}

// SetScaleSeconds is SetScale for a day length in seconds.
func (c *Clock) SetScaleSeconds(realSecondsPerGameDay float64) error {
	return c.SetScale(time.Duration(realSecondsPerGameDay * float64(time.Second)))
}

// DayLength returns the real time one game day takes.
func (c *Clock) DayLength() time.Duration { return c.dayLength }

// Now returns the current calendar reading.
func (c *Clock) Now() Time { return c.now }

func (c *Clock) Year() int { return c.now.Year }
func (c *Clock) Month() int { return c.now.Month }
func (c *Clock) Day() int { return c.now.Day }
func (c *Clock) Hour() int { return c.now.Hour }
func (c *Clock) Minute() int { return c.now.Minute }

// Ordinal returns the number of whole days since the epoch, increasing by
// one at every midnight regardless of month and year rollover.
func (c *Clock) Ordinal() int {
	return ((c.now.Year-1)*MonthsPerYear+(c.now.Month-1))*DaysPerMonth + c.now.Day - 1
}

// Phase returns the continuous hour of day in [0, 24).
func (c *Clock) Phase() float64 {
	return float64(c.now.Hour) + float64(c.now.Minute)/MinutesPerHour
}

// IsNight reports whether the current hour is a night hour.
func (c *Clock) IsNight() bool { return IsNightHour(c.now.Hour) }

func (c *Clock) String() string { return c.now.String() }
