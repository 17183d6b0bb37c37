package services

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Completion"

var reportHeader = []interface{}{"Project", "Collection time", "Description", "Full amount"}

type ReportService struct {
	ledger      *repositories.Ledger
	projectRepo *repositories.CharityProjectRepository
	now         func() string
}

func NewReportService(ledger *repositories.Ledger, projectRepo *repositories.CharityProjectRepository, investing *InvestingService) *ReportService {
	return &ReportService{
		ledger:      ledger,
		projectRepo: projectRepo,
		now:         func() string { return investing.Now().Format("2006-01-02 15:04:05") },
	}
}

// CompletionReport lists closed projects, fastest funded first
func (s *ReportService) CompletionReport(ctx context.Context) ([]models.CompletionReportRow, error) {
	projects, err := s.projectRepo.GetClosed(ctx, s.ledger.DB())
	if err != nil {
		return nil, err
	}

	rows := make([]models.CompletionReportRow, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, models.NewCompletionReportRow(p))
	}

	slices.SortStableFunc(rows, func(a, b models.CompletionReportRow) int {
		switch {
		case a.Duration < b.Duration:
			return -1
		case a.Duration > b.Duration:
			return 1
		default:
			return 0
		}
	})

	return rows, nil
}

// ExportCompletionReport writes the completion report as an xlsx workbook
func (s *ReportService) ExportCompletionReport(ctx context.Context, w io.Writer) error {
	rows, err := s.CompletionReport(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(reportSheet, "A1", &[]interface{}{"Report generated at", s.now()}); err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheet, "A2", &reportHeader); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		values := []interface{}{row.Name, row.CollectionTime, row.Description, row.FullAmount.String()}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("write report row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "C", 30); err != nil {
		return err
	}

	return f.Write(w)
}
