package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"dating-admin-console/internal/audit"
	"dating-admin-console/internal/client"
	"dating-admin-console/internal/derive"
	"dating-admin-console/internal/models"
	"dating-admin-console/internal/state"
)

type ReportHandler struct {
	api     *client.Client
	audit   audit.Recorder
	reports *state.Latest[[]derive.ReportView]
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ReportListResponse struct {
	Reports []derive.ReportView `json:"reports"`
	Total   int                 `json:"total"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
	Stale   bool                `json:"stale,omitempty"`
	Error   string              `json:"error,omitempty"`
}

func NewReportHandler(api *client.Client, recorder audit.Recorder) *ReportHandler {
	return &ReportHandler{
		api:     api,
		audit:   recorder,
		reports: &state.Latest[[]derive.ReportView]{},
	}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	page, limit := pageParams(c)

	var reports []models.Report
	var users []models.User

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		reports, err = h.api.ListReports(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.ListUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		stale, ok := h.reports.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, reportListResponse(stale, page, limit, err))
		return
	}

	views := derive.BuildReportViews(reports, derive.NewUserIndex(users))
	h.reports.Store(views)

	c.JSON(http.StatusOK, reportListResponse(views, page, limit, nil))
}

func reportListResponse(views []derive.ReportView, page, limit int, staleErr error) ReportListResponse {
	resp := ReportListResponse{
		Reports: derive.Page(views, page, limit),
		Total:   len(views),
		Page:    page,
		Limit:   limit,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}

// UpdateReportStatus validates the status against the enumeration before any
// network call, then forwards the change. The response is the backend's
// updated report; nothing is patched locally, callers re-fetch the list.
func (h *ReportHandler) UpdateReportStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := derive.ValidateStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.api.SetReportStatus(c.Request.Context(), id, status)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		Operator:   operator(c),
		Action:     "report_status",
		TargetType: "report",
		TargetID:   id,
		Detail:     string(status),
	})

	c.JSON(http.StatusOK, gin.H{"report": report})
}
