package services

import (
	"testing"
	"time"

	"altailand-backend/models"
)

func trackVisit(t *testing.T, svc *StatsService, sessionID, path string) {
	t.Helper()
	if err := svc.TrackVisit(&models.Visitor{SessionID: sessionID, Path: path}); err != nil {
		t.Fatalf("TrackVisit: %v", err)
	}
}

func TestTrackVisit(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	trackVisit(t, svc, "s1", "/plots")
	trackVisit(t, svc, "s1", "/admin/stats") // not counted
	trackVisit(t, svc, "", "/contacts")      // anonymous

	var visits []models.Visitor
	if err := db.Find(&visits).Error; err != nil {
		t.Fatalf("load visits: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("stored %d visits, want 2 (admin traffic skipped)", len(visits))
	}
	for _, v := range visits {
		if v.SessionID == "" {
			t.Error("empty session id not defaulted")
		}
		if v.Timestamp.IsZero() {
			t.Error("timestamp not stamped")
		}
	}
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)
	requests := NewRequestService(db)

	mustCreatePlot(t, db, "plot")

	quiz := models.Request{Type: models.RequestTypeQuiz, Name: "n", Phone: "p", Email: "e"}
	if err := requests.Create(&quiz); err != nil {
		t.Fatalf("create request: %v", err)
	}
	callback := models.Request{Type: models.RequestTypeCallback, Name: "n", Phone: "p", Email: "e"}
	if err := requests.Create(&callback); err != nil {
		t.Fatalf("create request: %v", err)
	}
	if _, err := requests.UpdateStatus(callback.ID, "completed", nil); err != nil {
		t.Fatalf("update status: %v", err)
	}

	trackVisit(t, svc, "s1", "/plots")
	trackVisit(t, svc, "s1", "/contacts")
	trackVisit(t, svc, "s2", "/plots")

	stats, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", stats.TotalRequests)
	}
	if stats.NewRequests != 1 {
		t.Errorf("NewRequests = %d, want 1", stats.NewRequests)
	}
	if stats.CompletedRequests != 1 {
		t.Errorf("CompletedRequests = %d, want 1", stats.CompletedRequests)
	}
	if stats.TotalPlots != 1 || stats.AvailablePlots != 1 {
		t.Errorf("plots = %d/%d, want 1/1", stats.TotalPlots, stats.AvailablePlots)
	}
	if stats.QuizCompletions != 1 {
		t.Errorf("QuizCompletions = %d, want 1", stats.QuizCompletions)
	}
	// Two distinct sessions within the last five minutes.
	if stats.CurrentOnline != 2 {
		t.Errorf("CurrentOnline = %d, want 2", stats.CurrentOnline)
	}
}

func TestVisitorsBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db)

	trackVisit(t, svc, "s1", "/plots")
	trackVisit(t, svc, "s2", "/plots")

	// One visit well outside every chart window.
	old := models.Visitor{SessionID: "ancient", Path: "/plots", Timestamp: time.Now().UTC().AddDate(0, -3, 0)}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("create old visit: %v", err)
	}

	stats, err := svc.Visitors()
	if err != nil {
		t.Fatalf("Visitors: %v", err)
	}
	if len(stats.Hourly) != 24 || len(stats.Daily) != 7 || len(stats.Monthly) != 30 {
		t.Fatalf("bucket counts = %d/%d/%d, want 24/7/30",
			len(stats.Hourly), len(stats.Daily), len(stats.Monthly))
	}

	var hourlyTotal, dailyTotal int64
	for _, b := range stats.Hourly {
		hourlyTotal += b.Visitors
	}
	for _, b := range stats.Daily {
		dailyTotal += b.Visitors
	}
	if hourlyTotal != 2 {
		t.Errorf("hourly total = %d, want 2", hourlyTotal)
	}
	if dailyTotal != 2 {
		t.Errorf("daily total = %d, want 2 (old visit excluded)", dailyTotal)
	}
	// Today's visits land in the last bucket of each chart.
	if stats.Hourly[23].Visitors != 2 {
		t.Errorf("last hourly bucket = %d, want 2", stats.Hourly[23].Visitors)
	}
	if stats.Daily[6].Visitors != 2 {
		t.Errorf("last daily bucket = %d, want 2", stats.Daily[6].Visitors)
	}
}
