// ABOUTME: Clock abstraction for the birthday engine
// ABOUTME: Lets tests pin "today" to a fixed date
package birthday

import "time"

// Clock abstracts time.Now() so queries can be tested against fixed dates.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
