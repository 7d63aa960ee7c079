package domain

import "time"

type PeriodMode string

const (
	ModeMonthly PeriodMode = "monthly"
	ModeWeekly  PeriodMode = "weekly"
)

// DaySlot is one calendar day within a period. Index is zero-based and
// fixed for the lifetime of the period's sheet.
type DaySlot struct {
	Index int
	Label string
	Date  time.Time
}

// Period is a contiguous calendar span owning one sheet. Key doubles as
// the sheet name in the persistence layer.
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
	Slots []DaySlot
}

// SlotOf returns the day-slot containing t, matched by calendar date.
func (p Period) SlotOf(t time.Time) (DaySlot, bool) {
	for _, s := range p.Slots {
		if sameDay(s.Date, t) {
			return s, true
		}
	}
	return DaySlot{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
