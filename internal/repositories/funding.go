package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alimgiray/charityfund/internal/models"
)

// fundingColumns are selected, in this order, by every fundable query.
const fundingColumns = `id, full_amount, invested_amount, fully_invested, create_date, close_date, version`

// fundingScanTargets returns the scan destinations matching fundingColumns.
// The close date lands in closeDate and must be copied back with timeFromNull.
func fundingScanTargets(f *models.Funding, closeDate *sql.NullTime) []any {
	return []any{
		&f.ID,
		&f.FullAmount,
		&f.InvestedAmount,
		&f.FullyInvested,
		&f.CreateDate,
		closeDate,
		&f.Version,
	}
}

func finishFundingScan(f *models.Funding, closeDate sql.NullTime) {
	f.CreateDate = f.CreateDate.UTC()
	f.CloseDate = timeFromNull(closeDate)
}

// updateFunding writes the investment state of a fundable using
// compare-and-swap on its version. A stale version yields models.ErrConflict;
// a state breaking the funding rules is refused before it reaches the table.
func updateFunding(ctx context.Context, q Querier, table string, f *models.Funding) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%s %d: %w", table, f.ID, err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET full_amount = ?, invested_amount = ?, fully_invested = ?, close_date = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, table)

	result, err := q.ExecContext(ctx, query,
		f.FullAmount,
		f.InvestedAmount,
		f.FullyInvested,
		utcPtr(f.CloseDate),
		f.ID,
		f.Version,
	)
	if err != nil {
		return classifyError(err)
	}

	if err := checkAffected(result); err != nil {
		return fmt.Errorf("%s %d: %w", table, f.ID, err)
	}

	f.Version++
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
