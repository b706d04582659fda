package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzhanc/extpipe/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	unitService   *services.UnitService
	authorService *services.AuthorService
}

func NewReportHandler(
	reportService *services.ReportService,
	unitService *services.UnitService,
	authorService *services.AuthorService,
) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		unitService:   unitService,
		authorService: authorService,
	}
}

// Index handles the report page
func (h *ReportHandler) Index(c *gin.Context) {
	report, err := h.reportService.BuildReport()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "report.html", gin.H{
			"Title": "Build Report",
			"Error": "Could not load the build report",
		})
		return
	}

	c.HTML(http.StatusOK, "report.html", gin.H{
		"Title":  "Build Report",
		"Report": report,
	})
}

// GetReport handles the JSON report endpoint
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.BuildReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load the build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetUnitAuthors resolves a unit's author list on demand
func (h *ReportHandler) GetUnitAuthors(c *gin.Context) {
	unitPath := c.Param("lang") + "/" + c.Param("name")

	unit, err := h.unitService.UnitFromPath(unitPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit path"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unit":    unit.Path,
		"authors": h.authorService.ResolveAuthors(unit),
	})
}

// ExportReport streams the report as a spreadsheet
func (h *ReportHandler) ExportReport(c *gin.Context) {
	report, err := h.reportService.BuildReport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load the build report"})
		return
	}

	file, err := h.reportService.ExportXLSX(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export the build report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="build-report.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
