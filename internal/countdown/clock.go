package countdown

import (
	"time"

	"github.com/existflow/daymark/internal/model"
)

// DefaultCutoffHour is the local hour at which the workday is considered
// over and the countdown rolls to the next calendar day.
const DefaultCutoffHour = 17

// Clock decides the current day boundary for countdown purposes. Once the
// local time reaches the cutoff hour the effective today becomes tomorrow.
type Clock struct {
	CutoffHour int
	Now        func() time.Time
}

// NewClock returns a clock with the given cutoff hour, using wall-clock time.
// Out-of-range hours fall back to the default.
func NewClock(cutoffHour int) *Clock {
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = DefaultCutoffHour
	}
	return &Clock{CutoffHour: cutoffHour, Now: time.Now}
}

// EffectiveToday returns today's date, or tomorrow's once the current local
// hour has reached the cutoff. The hour of the cutoff itself counts as past.
func (c *Clock) EffectiveToday() time.Time {
	now := c.Now()
	day := model.DateOnly(now)
	if now.Hour() >= c.CutoffHour {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// NextCutoff returns the next instant at which EffectiveToday will advance
func (c *Clock) NextCutoff() time.Time {
	now := c.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), c.CutoffHour, 0, 0, 0, now.Location())
	if !now.Before(cutoff) {
		cutoff = cutoff.AddDate(0, 0, 1)
	}
	return cutoff
}
