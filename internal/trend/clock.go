package trend

import (
	"time"

	"IssueRadar/internal/domain"
)

// WindowWidth is the fixed aggregation bucket size.
const WindowWidth = 30 * time.Minute

// Clock computes half-hour window boundaries in the reference timezone.
type Clock struct {
	loc *time.Location
}

// NewClock pins the reference timezone all boundaries are expressed in.
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

// Location returns the reference timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// CurrentWindow returns the half-hour-aligned window for now. An instant off
// a boundary gets the window containing it (10:47 -> [10:30, 11:00)); an
// instant exactly on a boundary belongs to the window it closes
// (10:00 -> [09:30, 10:00)).
func (c *Clock) CurrentWindow(now time.Time) domain.Window {
	local := now.In(c.loc)
	floored := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute()/30*30, 0, 0, c.loc)

	end := floored
	if local.After(floored) {
		end = floored.Add(WindowWidth)
	}
	return domain.Window{Start: end.Add(-WindowWidth), End: end}
}
