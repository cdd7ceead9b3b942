package services

import (
	"fmt"
	"strings"
	"time"

	"altailand-backend/models"
	"altailand-backend/utils"

	"gorm.io/gorm"
)

// DashboardStats backs the admin panel landing page.
type DashboardStats struct {
	TotalRequests     int64 `json:"total_requests"`
	NewRequests       int64 `json:"new_requests"`
	CompletedRequests int64 `json:"completed_requests"`
	TotalPlots        int64 `json:"total_plots"`
	AvailablePlots    int64 `json:"available_plots"`
	QuizQuestions     int64 `json:"quiz_questions"`
	QuizCompletions   int64 `json:"quiz_completions"`
	CurrentOnline     int64 `json:"current_online"`
}

// VisitorBucket is one point of a traffic chart. Hourly buckets carry
// Time ("15:00"), daily and monthly ones carry Date ("02.01").
type VisitorBucket struct {
	Time     string `json:"time,omitempty"`
	Date     string `json:"date,omitempty"`
	Visitors int64  `json:"visitors"`
}

type VisitorStats struct {
	Hourly  []VisitorBucket `json:"hourly"`
	Daily   []VisitorBucket `json:"daily"`
	Monthly []VisitorBucket `json:"monthly"`
}

// StatsService is the read-side: dashboard counters and visitor rollups.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

func (s *StatsService) Dashboard() (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalRequests, s.DB.Model(&models.Request{})},
		{&stats.NewRequests, s.DB.Model(&models.Request{}).Where("status = ?", "new")},
		{&stats.CompletedRequests, s.DB.Model(&models.Request{}).Where("status = ?", "completed")},
		{&stats.TotalPlots, s.DB.Model(&models.LandPlot{})},
		{&stats.AvailablePlots, s.DB.Model(&models.LandPlot{}).Where("status = ?", models.PlotStatusAvailable)},
		{&stats.QuizQuestions, s.DB.Model(&models.QuizQuestion{})},
		{&stats.QuizCompletions, s.DB.Model(&models.Request{}).Where("type = ?", models.RequestTypeQuiz)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("dashboard counters: %w", err)
		}
	}

	online, err := s.distinctSessions(time.Now().UTC().Add(-5*time.Minute), time.Now().UTC().Add(time.Minute))
	if err != nil {
		return nil, err
	}
	stats.CurrentOnline = online

	return &stats, nil
}

// TrackVisit records one page view. Admin panel traffic is not counted.
func (s *StatsService) TrackVisit(v *models.Visitor) error {
	if strings.Contains(v.Path, "/admin/") {
		return nil
	}
	if v.SessionID == "" {
		v.SessionID = "unknown"
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	if err := s.DB.Create(v).Error; err != nil {
		return fmt.Errorf("track visit: %w", err)
	}
	return nil
}

func (s *StatsService) distinctSessions(from, to time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Visitor{}).
		Where("timestamp >= ? AND timestamp < ?", from, to).
		Distinct("session_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count visitors: %w", err)
	}
	return count, nil
}

// Visitors builds the traffic charts: unique sessions per hour over the
// last 24 hours, per day over the last 7 and the last 30 days. Bucket
// boundaries follow Moscow time, matching what the dashboard displays.
func (s *StatsService) Visitors() (*VisitorStats, error) {
	now := utils.MSKNow()
	stats := &VisitorStats{}

	for i := 0; i < 24; i++ {
		start := now.Add(-time.Duration(23-i) * time.Hour).Truncate(time.Hour)
		count, err := s.distinctSessions(start.UTC(), start.Add(time.Hour).UTC())
		if err != nil {
			return nil, err
		}
		stats.Hourly = append(stats.Hourly, VisitorBucket{
			Time:     start.In(utils.MSK).Format("15:04"),
			Visitors: count,
		})
	}

	daily := func(days int) ([]VisitorBucket, error) {
		buckets := make([]VisitorBucket, 0, days)
		for i := 0; i < days; i++ {
			start := utils.StartOfDayMSK(now.AddDate(0, 0, -(days - 1 - i)))
			count, err := s.distinctSessions(start.UTC(), start.AddDate(0, 0, 1).UTC())
			if err != nil {
				return nil, err
			}
			buckets = append(buckets, VisitorBucket{
				Date:     start.Format("02.01"),
				Visitors: count,
			})
		}
		return buckets, nil
	}

	var err error
	if stats.Daily, err = daily(7); err != nil {
		return nil, err
	}
	if stats.Monthly, err = daily(30); err != nil {
		return nil, err
	}
	return stats, nil
}
