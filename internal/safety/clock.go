package safety

import "time"

// Clock supplies the current date to systems that stamp statuses.
type Clock interface {
	Today() time.Time
}

// LocalClock reads the wall clock in a fixed location.
type LocalClock struct {
	Location *time.Location
}

func (c LocalClock) Today() time.Time {
	return Midnight(time.Now().In(c.Location))
}

// FixedClock always returns the same date.
type FixedClock time.Time

func (c FixedClock) Today() time.Time {
	return Midnight(time.Time(c))
}
