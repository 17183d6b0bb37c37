package handlers

import (
	"bytes"
	"net/http"

	"github.com/alimgiray/charityfund/internal/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CompletionReport returns closed projects ordered by how fast they were funded
func (h *ReportHandler) CompletionReport(c *gin.Context) {
	rows, err := h.reportService.CompletionReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportCompletionReport downloads the completion report as a workbook
func (h *ReportHandler) ExportCompletionReport(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.ExportCompletionReport(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="completion_report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
