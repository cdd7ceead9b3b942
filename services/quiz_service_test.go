package services

import (
	"encoding/json"
	"errors"
	"testing"

	"altailand-backend/models"
)

func mustCreateQuestion(t *testing.T, svc *QuizService, text string, order int) *models.QuizQuestion {
	t.Helper()

	options, _ := json.Marshal([]string{"Да", "Нет"})
	q := models.QuizQuestion{Question: text, Options: options, SortOrder: order, IsActive: true}
	if err := svc.CreateQuestion(&q); err != nil {
		t.Fatalf("create question: %v", err)
	}
	return &q
}

func TestQuestionsOrdering(t *testing.T) {
	svc := NewQuizService(newTestDB(t))

	second := mustCreateQuestion(t, svc, "second", 2)
	first := mustCreateQuestion(t, svc, "first", 1)

	questions, err := svc.Questions(0, 0)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].ID != first.ID || questions[1].ID != second.ID {
		t.Errorf("questions not sorted by position: %v", questions)
	}
}

func TestUpdateQuestion(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	q := mustCreateQuestion(t, svc, "original", 1)

	updated, err := svc.UpdateQuestion(q.ID, map[string]interface{}{
		"question":   "rephrased",
		"id":         999, // immutable, must be ignored
		"created_at": "2001-01-01",
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Question != "rephrased" {
		t.Errorf("question = %q, want rephrased", updated.Question)
	}
	if updated.ID != q.ID {
		t.Errorf("id changed to %d", updated.ID)
	}

	if _, err := svc.UpdateQuestion(9999, map[string]interface{}{"question": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	svc := NewQuizService(newTestDB(t))
	q := mustCreateQuestion(t, svc, "doomed", 1)

	deleted, err := svc.DeleteQuestion(q.ID)
	if err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if !deleted {
		t.Fatal("existing question reported as missing")
	}

	deleted, err = svc.DeleteQuestion(q.ID)
	if err != nil {
		t.Fatalf("second DeleteQuestion: %v", err)
	}
	if deleted {
		t.Error("missing question reported as deleted")
	}
}

func TestContactInfoUpsert(t *testing.T) {
	svc := NewContactService(newTestDB(t))

	if _, err := svc.Get(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound on empty table, got %v", err)
	}

	created, err := svc.Upsert(models.ContactInfo{
		Phone:   "+7 999 000-00-00",
		Email:   "info@example.com",
		Address: "Горно-Алтайск",
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	updated, err := svc.Upsert(models.ContactInfo{
		Phone:   "+7 999 111-11-11",
		Email:   "sales@example.com",
		Address: "Чемал",
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert created a second row: %d vs %d", updated.ID, created.ID)
	}
	if updated.Phone != "+7 999 111-11-11" {
		t.Errorf("phone = %q", updated.Phone)
	}

	var count int64
	if err := svc.DB.Model(&models.ContactInfo{}).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("%d contact rows, want 1", count)
	}
}
