package models

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ReportStatuses lists every status the backend accepts, in review order.
var ReportStatuses = []ReportStatus{ReportPending, ReportReviewed, ReportResolved, ReportDismissed}

// Valid reports whether s is a member of the enumeration. The backend
// imposes no transition ordering between statuses, so membership is the
// whole check.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// Report is a user-against-user complaint. Status is the only field that
// changes after creation, and only through an explicit operator action.
type Report struct {
	ID             uint         `json:"id"`
	ReporterID     uint         `json:"reporterId"`
	ReportedUserID uint         `json:"reportedUserId"`
	Reason         string       `json:"reason"`
	Description    string       `json:"description,omitempty"`
	Status         ReportStatus `json:"status"`
	CreatedAt      string       `json:"createdAt"`
}
