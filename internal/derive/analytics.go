package derive

import (
	"math"

	"dating-admin-console/internal/models"
)

// ActivityPoint is one bar of the activity chart.
type ActivityPoint struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// GenderSlice is one slice of the gender pie, with its share of the pair's
// sum rounded to the nearest whole percent.
type GenderSlice struct {
	Name    string `json:"name"`
	Value   int64  `json:"value"`
	Percent int    `json:"percent"`
}

type Series struct {
	Activity []ActivityPoint `json:"activitySeries"`
	Gender   []GenderSlice   `json:"genderSeries"`
}

// ToSeries reshapes the backend counters into chart-ready series. The
// activity series order is fixed; when both gender counts are zero the
// percentage is zero for both entries.
func ToSeries(snapshot models.AnalyticsSnapshot) Series {
	activity := []ActivityPoint{
		{Name: "Users", Count: snapshot.TotalUsers},
		{Name: "Matches", Count: snapshot.TotalMatches},
		{Name: "Messages", Count: snapshot.TotalMessages},
		{Name: "Swipes", Count: snapshot.TotalSwipes},
	}

	total := snapshot.MaleUsers + snapshot.FemaleUsers
	percent := func(value int64) int {
		if total == 0 {
			return 0
		}
		return int(math.Round(float64(value) / float64(total) * 100))
	}

	gender := []GenderSlice{
		{Name: models.GenderMale, Value: snapshot.MaleUsers, Percent: percent(snapshot.MaleUsers)},
		{Name: models.GenderFemale, Value: snapshot.FemaleUsers, Percent: percent(snapshot.FemaleUsers)},
	}

	return Series{Activity: activity, Gender: gender}
}
