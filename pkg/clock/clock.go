// Package clock supplies the current instant in the event's civil timezone.
// Components take a Clock instead of calling time.Now so tests can pin time.
package clock

import "time"

// Timezone is the hackathon's civil timezone. All slot times are epoch
// seconds, so this only affects how instants are rendered.
const Timezone = "Asia/Jakarta"

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func System() Clock {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
