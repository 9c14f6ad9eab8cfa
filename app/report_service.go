package app

import (
	"sort"
	"time"

	"zencat/domain/bulkimport"
	"zencat/models"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// BatchSummary is the audit-view digest of one accepted session batch.
type BatchSummary struct {
	Rows                int     `json:"rows"`
	Dates               int     `json:"dates"`
	MeanCapacity        float64 `json:"mean_capacity"`
	MedianCapacity      float64 `json:"median_capacity"`
	MeanDurationMinutes float64 `json:"mean_duration_minutes"`
	P90DurationMinutes  float64 `json:"p90_duration_minutes"`
	// DailyTrendSlope is the least-squares slope of sessions-per-day across
	// the batch's date range; positive means the schedule ramps up.
	DailyTrendSlope float64 `json:"daily_trend_slope"`
}

// SummarizeSessions computes the digest over an accepted batch.
func SummarizeSessions(sessions []models.Session) BatchSummary {
	summary := BatchSummary{Rows: len(sessions)}
	if len(sessions) == 0 {
		return summary
	}

	capacities := make([]float64, 0, len(sessions))
	durations := make([]float64, 0, len(sessions))
	perDate := make(map[string]float64)
	for _, s := range sessions {
		capacities = append(capacities, float64(s.Capacity))
		start, okS := bulkimport.MinutesOfDay(s.StartTime)
		end, okE := bulkimport.MinutesOfDay(s.EndTime)
		if okS && okE && end > start {
			durations = append(durations, float64(end-start))
		}
		perDate[s.Date]++
	}
	summary.Dates = len(perDate)

	summary.MeanCapacity, _ = stats.Mean(capacities)
	summary.MedianCapacity, _ = stats.Median(capacities)
	if len(durations) > 0 {
		summary.MeanDurationMinutes, _ = stats.Mean(durations)
		summary.P90DurationMinutes, _ = stats.Percentile(durations, 90)
	}
	summary.DailyTrendSlope = dailyTrend(perDate)
	return summary
}

// dailyTrend regresses session count on day offset. Fewer than two distinct
// dates has no trend.
func dailyTrend(perDate map[string]float64) float64 {
	if len(perDate) < 2 {
		return 0
	}
	dates := make([]string, 0, len(perDate))
	for d := range perDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	origin, err := time.Parse("2006-01-02", dates[0])
	if err != nil {
		return 0
	}
	xs := make([]float64, 0, len(dates))
	ys := make([]float64, 0, len(dates))
	for _, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		xs = append(xs, day.Sub(origin).Hours()/24)
		ys = append(ys, perDate[d])
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}
