package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Used in tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
