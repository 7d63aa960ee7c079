package period

import (
	"strconv"
	"time"

	"github.com/hr-tools/punchbook/pkg/models/domain"
)

// Resolver maps a timestamp to the period that owns it, together with
// the ordered day-slots the period spans. Resolution is pure and
// stable: the same timestamp always yields the same key and slots.
type Resolver interface {
	Resolve(at time.Time) domain.Period
}

func NewResolver(mode domain.PeriodMode) Resolver {
	if mode == domain.ModeWeekly {
		return &weeklyResolver{}
	}
	return &monthlyResolver{}
}

type monthlyResolver struct{}

func (m *monthlyResolver) Resolve(at time.Time) domain.Period {
	year, month, _ := at.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, at.Location())
	// Day 0 of the next month is the last day of this one.
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, at.Location())

	days := end.Day()
	slots := make([]domain.DaySlot, 0, days)
	for d := 1; d <= days; d++ {
		slots = append(slots, domain.DaySlot{
			Index: d - 1,
			Label: strconv.Itoa(d),
			Date:  time.Date(year, month, d, 0, 0, 0, 0, at.Location()),
		})
	}

	return domain.Period{
		Key:   at.Format("01-2006"),
		Start: start,
		End:   end,
		Slots: slots,
	}
}

type weeklyResolver struct{}

func (w *weeklyResolver) Resolve(at time.Time) domain.Period {
	year, month, day := at.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, at.Location())

	// Monday-anchored: Sunday counts as the last day of the week.
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	slots := make([]domain.DaySlot, 0, 7)
	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		slots = append(slots, domain.DaySlot{
			Index: i,
			Label: d.Format("Mon 02.01"),
			Date:  d,
		})
	}

	return domain.Period{
		Key:   monday.Format("02.01") + "-" + sunday.Format("02.01.2006"),
		Start: monday,
		End:   sunday,
		Slots: slots,
	}
}
