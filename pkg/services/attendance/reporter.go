package attendance

import (
	"context"
	"strings"
	"time"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	"github.com/hr-tools/punchbook/pkg/services/layout"
	"github.com/hr-tools/punchbook/pkg/services/period"
	"github.com/hr-tools/punchbook/pkg/store"
)

// Reporter reads the ledger back: per-user day records and bucket
// totals for the period containing a given date. Totals are always
// derived by summing day durations engine-side, so the result is the
// same regardless of the backend's formula policy.
type Reporter interface {
	Report(ctx context.Context, at time.Time) (domain.PeriodReport, error)
}

type reporter struct {
	store    store.Store
	resolver period.Resolver
	cfg      domain.LedgerConfig
}

func NewReporter(st store.Store, resolver period.Resolver, cfg domain.LedgerConfig) Reporter {
	return &reporter{store: st, resolver: resolver, cfg: cfg}
}

func (r *reporter) Report(ctx context.Context, at time.Time) (domain.PeriodReport, error) {
	p := r.resolver.Resolve(at)
	report := domain.PeriodReport{Period: p}

	opCtx, cancel := context.WithTimeout(ctx, r.cfg.OpTimeout)
	defer cancel()

	found, err := r.store.FindSheet(opCtx, p.Key)
	if err != nil {
		return domain.PeriodReport{}, err
	}
	if !found {
		return report, nil
	}

	buckets := layout.Buckets(r.cfg.Layout, len(p.Slots))
	m := layout.NewMapper(r.cfg.Layout, len(buckets))

	users, err := r.store.ColumnValues(opCtx, p.Key, m.IdentityColumn())
	if err != nil {
		return domain.PeriodReport{}, err
	}

	for i, userID := range users {
		row := i + 1
		if row < m.DataStartRow() || strings.TrimSpace(userID) == "" {
			continue
		}
		user, err := r.userReport(opCtx, m, p, buckets, userID, row)
		if err != nil {
			return domain.PeriodReport{}, err
		}
		report.Users = append(report.Users, user)
	}
	return report, nil
}

func (r *reporter) userReport(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	buckets []layout.Bucket,
	userID string,
	row int,
) (domain.UserReport, error) {
	user := domain.UserReport{UserID: userID, Row: row}
	durations := make([]string, len(p.Slots))

	for _, slot := range p.Slots {
		checkIn, err := r.store.ReadCell(ctx, p.Key, row, m.Column(slot.Index, layout.FieldCheckIn))
		if err != nil {
			return domain.UserReport{}, err
		}
		checkOut, err := r.store.ReadCell(ctx, p.Key, row, m.Column(slot.Index, layout.FieldCheckOut))
		if err != nil {
			return domain.UserReport{}, err
		}
		if checkIn == "" && checkOut == "" {
			continue
		}

		rec := domain.DayRecord{Slot: slot, CheckIn: checkIn, CheckOut: checkOut}
		if checkIn != "" && checkOut != "" {
			if d, err := layout.DurationBetween(checkIn, checkOut); err == nil {
				rec.Duration = d
				durations[slot.Index] = d
			}
		}
		user.Days = append(user.Days, rec)
	}

	for _, b := range buckets {
		total, err := layout.SumDurations(durations[b.From : b.To+1])
		if err != nil {
			return domain.UserReport{}, err
		}
		user.Totals = append(user.Totals, domain.BucketTotal{Label: b.Label, Value: total})
	}
	return user, nil
}
