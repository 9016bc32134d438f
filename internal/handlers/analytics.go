package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dating-admin-console/internal/client"
	"dating-admin-console/internal/derive"
	"dating-admin-console/internal/models"
	"dating-admin-console/internal/state"
)

type AnalyticsHandler struct {
	api      *client.Client
	snapshot *state.Latest[models.AnalyticsSnapshot]
}

type AnalyticsResponse struct {
	Stats    models.AnalyticsSnapshot `json:"stats"`
	Activity []derive.ActivityPoint   `json:"activitySeries"`
	Gender   []derive.GenderSlice     `json:"genderSeries"`
	Stale    bool                     `json:"stale,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

func NewAnalyticsHandler(api *client.Client) *AnalyticsHandler {
	return &AnalyticsHandler{
		api:      api,
		snapshot: &state.Latest[models.AnalyticsSnapshot]{},
	}
}

// GetAnalytics serves the counters plus the derived chart series. The series
// are recomputed from the snapshot on every request, never cached on their
// own.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	snapshot, err := h.api.GetAnalytics(c.Request.Context())
	if err != nil {
		stale, ok := h.snapshot.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, analyticsResponse(stale, err))
		return
	}

	h.snapshot.Store(snapshot)
	c.JSON(http.StatusOK, analyticsResponse(snapshot, nil))
}

func analyticsResponse(snapshot models.AnalyticsSnapshot, staleErr error) AnalyticsResponse {
	series := derive.ToSeries(snapshot)
	resp := AnalyticsResponse{
		Stats:    snapshot,
		Activity: series.Activity,
		Gender:   series.Gender,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}

// Refresh re-fetches the snapshot outside a request, keeping a recent
// fallback warm for the dashboard. Used by the periodic refresh job.
func (h *AnalyticsHandler) Refresh(ctx context.Context) error {
	snapshot, err := h.api.GetAnalytics(ctx)
	if err != nil {
		h.snapshot.Fail(err)
		return err
	}
	h.snapshot.Store(snapshot)
	return nil
}
