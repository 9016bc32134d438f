package derive

import (
	"errors"
	"fmt"

	"dating-admin-console/internal/models"
)

// ErrInvalidStatus marks an operator-supplied status outside the enumerated
// set. It is raised before any network call is made.
var ErrInvalidStatus = errors.New("invalid report status")

// ValidateStatus checks enumeration membership only. The backend accepts any
// status regardless of the report's current one, so no transition graph is
// enforced here.
func ValidateStatus(status string) (models.ReportStatus, error) {
	s := models.ReportStatus(status)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}

// ReportView is a report with both participant ids resolved to display
// names. Every other field passes through unchanged; the underlying report
// is not mutated.
type ReportView struct {
	ID               uint                `json:"id"`
	ReporterID       uint                `json:"reporterId"`
	ReporterName     string              `json:"reporterName"`
	ReportedUserID   uint                `json:"reportedUserId"`
	ReportedUserName string              `json:"reportedUserName"`
	Reason           string              `json:"reason"`
	Description      string              `json:"description,omitempty"`
	Status           models.ReportStatus `json:"status"`
	CreatedAt        string              `json:"createdAt"`
}

func BuildReportView(report models.Report, users *UserIndex) ReportView {
	return ReportView{
		ID:               report.ID,
		ReporterID:       report.ReporterID,
		ReporterName:     users.DisplayName(report.ReporterID),
		ReportedUserID:   report.ReportedUserID,
		ReportedUserName: users.DisplayName(report.ReportedUserID),
		Reason:           report.Reason,
		Description:      report.Description,
		Status:           report.Status,
		CreatedAt:        report.CreatedAt,
	}
}

func BuildReportViews(reports []models.Report, users *UserIndex) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, BuildReportView(report, users))
	}
	return views
}
