package clock

// keyframe pins the darkness overlay alpha at a phase of the day.
type keyframe struct {
	phase float64
	alpha float64
}

// Night deepens toward dawn, drops to full daylight at 06:00 and dims again
// in steps through the afternoon and evening.
var lighting = []keyframe{
	{0, 200},
	{5, 230},
	{6, 0},
	{12, 0},
	{13, 50},
	{18, 50},
	{19, 100},
	{21, 100},
	{22, 150},
	{24, 200},
}

// LightingAlpha returns the darkness overlay alpha (0 = full daylight) for a
// continuous phase in hours, linearly interpolated between keyframes.
func LightingAlpha(phase float64) float64 {
	if phase <= lighting[0].phase {
		return lighting[0].alpha
	}
	for i := 1; i < len(lighting); i++ {
		a, b := lighting[i-1], lighting[i]
		if phase < b.phase {
			return a.alpha + (b.alpha-a.alpha)*(phase-a.phase)/(b.phase-a.phase)
		}
	}
	return lighting[len(lighting)-1].alpha
}

// Lighting returns the overlay alpha for the clock's current phase.
func (c *Clock) Lighting() float64 { return LightingAlpha(c.Phase()) }
