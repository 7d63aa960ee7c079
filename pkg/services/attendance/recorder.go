package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/services/layout"
	"github.com/hr-tools/punchbook/pkg/services/period"
	"github.com/hr-tools/punchbook/pkg/store"
)

const (
	msgCheckedIn         = "✅ %s, checked in at %s"
	msgAlreadyCheckedIn  = "⚠️ %s, you already checked in today at %s"
	msgNoCheckIn         = "⚠️ %s, you have not checked in today yet"
	msgCheckedOut        = "❌ %s, checked out at %s, worked %s"
	msgAlreadyCheckedOut = "⚠️ %s, you already checked out today at %s"
)

// Recorder applies a check-in or check-out event to the period ledger
// and returns the user-facing reply. Business-rule conditions (already
// checked in/out, missing check-in) are successful warning replies;
// only store failures make the call itself fail.
type Recorder interface {
	Record(ctx context.Context, action domain.Action, userID string, at time.Time) (string, error)
}

type recorder struct {
	store    store.Store
	resolver period.Resolver
	cfg      domain.LedgerConfig
	locks    *sheetLocks
}

func NewRecorder(st store.Store, resolver period.Resolver, cfg domain.LedgerConfig) Recorder {
	return &recorder{
		store:    st,
		resolver: resolver,
		cfg:      cfg,
		locks:    newSheetLocks(),
	}
}

func (r *recorder) Record(ctx context.Context, action domain.Action, userID string, at time.Time) (string, error) {
	if _, err := domain.ParseAction(string(action)); err != nil {
		return "", err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.ErrEmptyUser
	}

	p := r.resolver.Resolve(at)
	slot, ok := p.SlotOf(at)
	if !ok {
		return "", fmt.Errorf("timestamp %s outside period %s", at.Format(time.RFC3339), p.Key)
	}

	unlock := r.locks.Lock(p.Key)
	defer unlock()

	opCtx, cancel := context.WithTimeout(ctx, r.cfg.OpTimeout)
	defer cancel()

	buckets := layout.Buckets(r.cfg.Layout, len(p.Slots))
	m := layout.NewMapper(r.cfg.Layout, len(buckets))

	if err := r.ensureSheet(opCtx, p); err != nil {
		return "", err
	}
	row, err := r.ensureUserRow(opCtx, m, p, buckets, userID)
	if err != nil {
		return "", err
	}

	if action == domain.ActionCheckIn {
		return r.applyCheckIn(opCtx, m, p, slot, userID, row, at)
	}
	return r.applyCheckOut(opCtx, m, p, buckets, slot, userID, row, at)
}

func (r *recorder) applyCheckIn(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	slot domain.DaySlot,
	userID string,
	row int,
	at time.Time,
) (string, error) {
	col := m.Column(slot.Index, layout.FieldCheckIn)
	existing, err := r.store.ReadCell(ctx, p.Key, row, col)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return fmt.Sprintf(msgAlreadyCheckedIn, userID, existing), nil
	}

	now := at.Format(layout.Clock)
	if err := r.store.WriteCell(ctx, p.Key, row, col, now); err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Info().
		Str("sheet", p.Key).
		Str("user", userID).
		Str("time", now).
		Msg("check-in recorded")
	return fmt.Sprintf(msgCheckedIn, userID, now), nil
}

func (r *recorder) applyCheckOut(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	buckets []layout.Bucket,
	slot domain.DaySlot,
	userID string,
	row int,
	at time.Time,
) (string, error) {
	checkIn, err := r.store.ReadCell(ctx, p.Key, row, m.Column(slot.Index, layout.FieldCheckIn))
	if err != nil {
		return "", err
	}
	if checkIn == "" {
		return fmt.Sprintf(msgNoCheckIn, userID), nil
	}

	outCol := m.Column(slot.Index, layout.FieldCheckOut)
	existing, err := r.store.ReadCell(ctx, p.Key, row, outCol)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return fmt.Sprintf(msgAlreadyCheckedOut, userID, existing), nil
	}

	now := at.Format(layout.Clock)
	duration, err := layout.DurationBetween(checkIn, now)
	if err != nil {
		return "", fmt.Errorf("derive duration: %w", err)
	}

	if err := r.store.WriteCell(ctx, p.Key, row, outCol, now); err != nil {
		return "", err
	}

	durCol := m.Column(slot.Index, layout.FieldDuration)
	if r.store.Policy() == model.PolicyFormula {
		if err := r.store.SetFormula(ctx, p.Key, row, durCol, m.DurationFormula(row, slot.Index)); err != nil {
			return "", err
		}
	} else {
		if err := r.store.WriteCell(ctx, p.Key, row, durCol, duration); err != nil {
			return "", err
		}
		if err := r.refreshTotal(ctx, m, p, buckets, slot.Index, row); err != nil {
			return "", err
		}
	}

	zerolog.Ctx(ctx).Info().
		Str("sheet", p.Key).
		Str("user", userID).
		Str("time", now).
		Str("duration", duration).
		Msg("check-out recorded")
	return fmt.Sprintf(msgCheckedOut, userID, now, duration), nil
}

// refreshTotal re-evaluates the bucket containing the given slot and
// writes the summed value into the bucket's aggregate column. Only
// used under the value policy; formula backends keep totals live
// themselves.
func (r *recorder) refreshTotal(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	buckets []layout.Bucket,
	slot int,
	row int,
) error {
	i, b := layout.BucketOf(buckets, slot)

	values := make([]string, 0, b.To-b.From+1)
	for s := b.From; s <= b.To; s++ {
		v, err := r.store.ReadCell(ctx, p.Key, row, m.Column(s, layout.FieldDuration))
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	total, err := layout.SumDurations(values)
	if err != nil {
		return fmt.Errorf("evaluate %q total: %w", b.Label, err)
	}
	return r.store.WriteCell(ctx, p.Key, row, m.TotalColumn(i), total)
}
