package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForHour(t *testing.T) {
	want := map[Kind][]int{
		Rain:  {21, 22, 23, 3, 4, 5},
		Snow:  {0, 1, 2},
		Fog:   {19, 20},
		Clear: {6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18},
	}
	for kind, hours := range want {
		for _, h := range hours {
			assert.Equal(t, kind, ForHour(h), "hour %d", h)
		}
	}
}

func TestUpdate_FadesIn(t *testing.T) {
	s := New()
	assert.False(t, s.Update(12, 1))
	assert.Equal(t, Clear, s.Kind())
	assert.Zero(t, s.Intensity())

	assert.True(t, s.Update(21, 0))
	assert.Equal(t, Rain, s.Kind())
	assert.True(t, s.Fading())

	s.Update(21, FadeDuration/2)
	assert.InDelta(t, MaxIntensity/2, s.Intensity(), 1e-9)

	s.Update(21, FadeDuration)
	assert.Equal(t, MaxIntensity, s.Intensity())
	assert.False(t, s.Fading())
}

func TestUpdate_FadesOutFromCurrentIntensity(t *testing.T) {
	s := New()
	s.Update(19, FadeDuration)
	assert.Equal(t, MaxIntensity, s.Intensity())

	assert.True(t, s.Update(6, 2.5))
	assert.Equal(t, Clear, s.Kind())
	assert.InDelta(t, 75, s.Intensity(), 1e-9)

	s.Update(6, 7.5)
	assert.Zero(t, s.Intensity())
}

func TestUpdate_InterruptedFadeStartsWhereItLeftOff(t *testing.T) {
	s := New()
	s.Update(20, FadeDuration/4)
	assert.InDelta(t, 25, s.Intensity(), 1e-9)

	s.Update(6, FadeDuration/2)
	assert.InDelta(t, 12.5, s.Intensity(), 1e-9)
}

func TestUpdate_RainToSnowKeepsFullIntensity(t *testing.T) {
	s := New()
	s.Update(23, FadeDuration)
	assert.True(t, s.Update(0, 1))
	assert.Equal(t, Snow, s.Kind())
	assert.Equal(t, MaxIntensity, s.Intensity())
}
