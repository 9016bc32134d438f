package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dating-admin-console/internal/client"
)

// pageParams reads the 0-based page index and the page size from the query.
// Sizes outside {10,25,50} fall back to 10 and negative indexes to 0;
// derive.Page itself does not clamp, so an index past the last page still
// yields an empty slice.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	switch limit {
	case 10, 25, 50:
	default:
		limit = 10
	}
	return page, limit
}

// apiStatus maps a Fetch Client error to a response status: the backend's
// own status when it answered, 502 when it did not.
func apiStatus(err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode > 0 {
		return apiErr.StatusCode
	}
	return http.StatusBadGateway
}

// operator returns the authenticated operator name for audit entries.
func operator(c *gin.Context) string {
	if name, ok := c.Get("operator"); ok {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}
