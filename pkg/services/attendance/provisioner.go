package attendance

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	model "github.com/hr-tools/punchbook/pkg/models/store"
	"github.com/hr-tools/punchbook/pkg/services/layout"
)

// ensureSheet provisions the period's sheet on first use. An existing
// sheet is returned untouched: the header layout is written exactly
// once and never reshaped.
func (r *recorder) ensureSheet(ctx context.Context, p domain.Period) error {
	found, err := r.store.FindSheet(ctx, p.Key)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	zerolog.Ctx(ctx).Info().
		Str("sheet", p.Key).
		Int("slots", len(p.Slots)).
		Msg("provisioning period sheet")
	return r.store.CreateSheet(ctx, p.Key, layout.BuildSheetLayout(p, r.cfg.Layout))
}

// ensureUserRow finds the user's row by scanning the identity column
// in insertion order, appending a new row on first event. Row indices
// are assigned once and never reused. Callers must hold the sheet
// lock.
func (r *recorder) ensureUserRow(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	buckets []layout.Bucket,
	userID string,
) (int, error) {
	values, err := r.store.ColumnValues(ctx, p.Key, m.IdentityColumn())
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		if v == userID {
			return i + 1, nil
		}
	}

	row, err := r.store.AppendRow(ctx, p.Key)
	if err != nil {
		return 0, err
	}
	if row < m.DataStartRow() {
		row = m.DataStartRow()
	}

	if err := r.store.WriteCell(ctx, p.Key, row, m.IdentityColumn(), userID); err != nil {
		return 0, err
	}
	for _, s := range layout.UserRowStyles(m, p, row) {
		if err := r.store.SetStyle(ctx, p.Key, s); err != nil {
			return 0, err
		}
	}
	if err := r.installTotals(ctx, m, p, buckets, row); err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().
		Str("sheet", p.Key).
		Str("user", userID).
		Int("row", row).
		Msg("provisioned user row")
	return row, nil
}

// installTotals wires the row's aggregate cells: live sum expressions
// under the formula policy, zero values the engine keeps current under
// the value policy.
func (r *recorder) installTotals(
	ctx context.Context,
	m layout.Mapper,
	p domain.Period,
	buckets []layout.Bucket,
	row int,
) error {
	for i, b := range buckets {
		col := m.TotalColumn(i)
		if r.store.Policy() == model.PolicyFormula {
			if err := r.store.SetFormula(ctx, p.Key, row, col, m.TotalFormula(b, row)); err != nil {
				return err
			}
			continue
		}
		if err := r.store.WriteCell(ctx, p.Key, row, col, layout.FormatDuration(0)); err != nil {
			return err
		}
	}
	return nil
}
