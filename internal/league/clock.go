package league

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time authority. Every stored stamp is interpreted in the
// league's home zone, and all day arithmetic runs on local calendar dates
// rather than raw timestamp subtraction.
type Clock struct {
	loc   *time.Location
	clock clockwork.Clock
}

// NewClock pins the clock to the league timezone. A nil clockwork.Clock
// gets the real one; tests pass a fake.
func NewClock(timezone string, c clockwork.Clock) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading league timezone: %w", err)
	}
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Clock{loc: loc, clock: c}, nil
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today is the current local calendar date at midnight.
func (c *Clock) Today() time.Time {
	return dateOf(c.Now())
}

// ParseStamp converts a stored stamp to league-local time. RFC3339 stamps
// carry their own zone, bare datetime stamps are UTC (the exports write them
// that way), and bare dates become local midnight.
func (c *Clock) ParseStamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(c.loc), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.In(c.loc), nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, c.loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// LocalDate is ParseStamp truncated to the local calendar date.
func (c *Clock) LocalDate(s string) (time.Time, bool) {
	t, err := c.ParseStamp(s)
	if err != nil {
		return time.Time{}, false
	}
	return dateOf(t), true
}

// ReportingDay is the date the current round reports against: today when
// today is a Sunday, otherwise the most recent past Sunday.
func (c *Clock) ReportingDay() time.Time {
	today := c.Today()
	return today.AddDate(0, 0, -int(today.Weekday()))
}

// PreviousReportingSunday is the Sunday strictly before ReportingDay.
func (c *Clock) PreviousReportingSunday() time.Time {
	return c.ReportingDay().AddDate(0, 0, -7)
}

// DaysBetween counts whole calendar days from a to b, positive when b is
// later. Comparing dates in UTC keeps DST transitions from shaving a day.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders a short dd-Mmm date, the form used in listings.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan")
}

// FormatDateFull renders dd-Mmm-yyyy.
func FormatDateFull(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// FormatKickoff renders a local kickoff time, e.g. "08-Feb 03:30 PM".
func FormatKickoff(t time.Time) string {
	return t.Format("02-Jan 03:04 PM")
}
