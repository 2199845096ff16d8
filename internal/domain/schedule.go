package domain

import "time"

// AdBreak is added after the film when a session end time is derived.
const AdBreak = 15 * time.Minute

func DefaultSessionEnd(start time.Time, durationMin int) time.Time {
	return start.Add(time.Duration(durationMin)*time.Minute + AdBreak)
}

// Overlaps treats both sessions as half-open intervals, so a session ending
// at 18:00 and one starting at 18:00 do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Period is an inclusive range of calendar days. A zero bound is open.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) Contains(t time.Time) bool {
	day := DayOf(t)
	if !p.From.IsZero() && day.Before(DayOf(p.From)) {
		return false
	}
	if !p.To.IsZero() && day.After(DayOf(p.To)) {
		return false
	}
	return true
}

func (p Period) Validate() error {
	if !p.From.IsZero() && !p.To.IsZero() && DayOf(p.To).Before(DayOf(p.From)) {
		return Validationf("period end %s is before start %s",
			p.To.Format(time.DateOnly), p.From.Format(time.DateOnly))
	}
	return nil
}
