package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appreport "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/export"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/middleware"
)

// Response headers of an export download
const (
	HeaderExportID    = "X-Export-ID"
	HeaderDownloadURL = "X-Download-URL"
)

const defaultHistoryLimit = 20

// ReportHandler handles report building, export and export history
type ReportHandler struct {
	BaseHandler
	reports *appreport.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *appreport.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// FormatsResponse lists the export formats of the server
type FormatsResponse struct {
	Formats []export.Format `json:"formats"`
}

// Build godoc
// @Summary      Build a filtered order report
// @Tags         reports
// @Accept       json
// @Param        request body report.FilterSet false "Filters; an empty body selects every order"
// @Success      200 {object} dto.Response{data=appreport.Report}
// @Router       /reports [post]
func (h *ReportHandler) Build(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}
	rep, err := h.reports.Build(c.Request.Context(), sess, filters)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// Export godoc
// @Summary      Export a filtered order report as a file
// @Tags         reports
// @Accept       json
// @Produce      text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/html,application/pdf
// @Param        format  query string false "csv (default), xlsx, html or pdf"
// @Param        request body report.FilterSet false "Filters"
// @Router       /reports/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	result, err := h.reports.Export(c.Request.Context(), sess, filters, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Record != nil {
		c.Header(HeaderExportID, result.Record.ID)
	}
	if result.DownloadURL != "" {
		c.Header(HeaderDownloadURL, result.DownloadURL)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.File.Name))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.File.ContentType, result.File.Data)
}

// History godoc
// @Summary      Exports of the current user, newest first
// @Tags         reports
// @Param        limit query int false "1 to 200, default 20"
// @Success      200 {object} dto.Response{data=[]appreport.HistoryEntry}
// @Router       /reports/exports [get]
func (h *ReportHandler) History(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be a number")
			return
		}
		limit = max(n, 1)
	}

	entries, err := h.reports.History(c.Request.Context(), sess.User.ID.String(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Formats godoc
// @Summary      Export formats available on this server
// @Tags         reports
// @Router       /reports/formats [get]
func (h *ReportHandler) Formats(c *gin.Context) {
	h.Success(c, FormatsResponse{Formats: h.reports.Formats()})
}

// bindFilters reads an optional filter set from the body
func (h *ReportHandler) bindFilters(c *gin.Context) (report.FilterSet, bool) {
	var filters report.FilterSet
	err := c.ShouldBindJSON(&filters)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return filters, true
	case middleware.ValidationDetails(err) != nil:
		h.ValidationError(c, middleware.ValidationDetails(err))
	default:
		h.BadRequest(c, "Invalid filter body")
	}
	return report.FilterSet{}, false
}
