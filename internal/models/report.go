package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CompletionReportRow describes how long a closed project took to get funded.
type CompletionReportRow struct {
	ProjectID   int64           `json:"project_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	FullAmount  decimal.Decimal `json:"full_amount"`
	Duration    time.Duration   `json:"-"`
	// CollectionTime is Duration rendered for humans, e.g. "3 days, 4:05:06".
	CollectionTime string `json:"collection_time"`
}

// NewCompletionReportRow builds a row for a fully invested project.
func NewCompletionReportRow(p *CharityProject) CompletionReportRow {
	var d time.Duration
	if p.CloseDate != nil {
		d = p.CloseDate.Sub(p.CreateDate)
	}
	return CompletionReportRow{
		ProjectID:      p.ID,
		Name:           p.Name,
		Description:    p.Description,
		FullAmount:     p.FullAmount,
		Duration:       d,
		CollectionTime: FormatCollectionTime(d),
	}
}

// FormatCollectionTime renders d as "N days, H:MM:SS" (or "H:MM:SS" below a day).
func FormatCollectionTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	h := int64(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int64(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int64(d / time.Second)

	clock := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}
