package countdown

import (
	"fmt"
	"time"
)

// Remaining is the time left until a due instant, broken into display
// units. Once the instant passes only Overdue is meaningful.
type Remaining struct {
	Overdue bool
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Until computes what remains between now and due. Anything at or past
// the due instant is overdue; there is no zero-remaining display state.
func Until(due, now time.Time) Remaining {
	d := due.Sub(now)
	if d <= 0 {
		return Remaining{Overdue: true}
	}
	secs := int(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   secs / 3600 % 24,
		Minutes: secs / 60 % 60,
		Seconds: secs % 60,
	}
}

// String renders the largest nonzero unit downward, so a countdown never
// shows an empty leading field.
func (r Remaining) String() string {
	switch {
	case r.Overdue:
		return "overdue"
	case r.Days > 0:
		return fmt.Sprintf("%dd %dh %02dm %02ds", r.Days, r.Hours, r.Minutes, r.Seconds)
	case r.Hours > 0:
		return fmt.Sprintf("%dh %02dm %02ds", r.Hours, r.Minutes, r.Seconds)
	default:
		return fmt.Sprintf("%02dm %02ds", r.Minutes, r.Seconds)
	}
}
