package services

import (
	"context"
	"errors"
	"testing"

	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/pkg/apperrors"
)

func newTestQuestionService() (QuestionService, *fakeQuestionStore) {
	questions := newFakeQuestionStore()
	svc := NewQuestionService(questions, newFakeExamStore(testExam()))
	return svc, questions
}

func sampleQuestionRequest(correct string) *dto.CreateQuestionRequest {
	return &dto.CreateQuestionRequest{
		QuestionText:  "Which layer does TCP live on?",
		OptionA:       "Application",
		OptionB:       "Transport",
		OptionC:       "Network",
		OptionD:       "Link",
		CorrectAnswer: correct,
		Marks:         10,
	}
}

func TestQuestionService_AddQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the correct answer", func(t *testing.T) {
		svc, store := newTestQuestionService()

		resp, err := svc.AddQuestion(ctx, 10, 1, sampleQuestionRequest("b"))
		if err != nil {
			t.Fatalf("AddQuestion() error = %v", err)
		}
		if resp.CorrectAnswer != "B" {
			t.Errorf("CorrectAnswer = %q, want B", resp.CorrectAnswer)
		}

		stored, err := store.GetByID(ctx, resp.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if stored.CorrectAnswer != "B" {
			t.Errorf("stored CorrectAnswer = %q, want B", stored.CorrectAnswer)
		}
	})

	t.Run("invalid option rejected", func(t *testing.T) {
		svc, _ := newTestQuestionService()

		_, err := svc.AddQuestion(ctx, 10, 1, sampleQuestionRequest("E"))
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("AddQuestion() error = %v, want ErrBadRequest", err)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		svc, _ := newTestQuestionService()

		_, err := svc.AddQuestion(ctx, 11, 1, sampleQuestionRequest("A"))
		if !errors.Is(err, apperrors.ErrNotExamOwner) {
			t.Errorf("AddQuestion() error = %v, want ErrNotExamOwner", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		svc, _ := newTestQuestionService()

		_, err := svc.AddQuestion(ctx, 10, 99, sampleQuestionRequest("A"))
		if !errors.Is(err, apperrors.ErrExamNotFound) {
			t.Errorf("AddQuestion() error = %v, want ErrExamNotFound", err)
		}
	})
}

func TestQuestionService_GetExamQuestions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuestionService()

	if _, err := svc.AddQuestion(ctx, 10, 1, sampleQuestionRequest("B")); err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}

	t.Run("owner sees answers", func(t *testing.T) {
		resp, err := svc.GetExamQuestions(ctx, 10, 1)
		if err != nil {
			t.Fatalf("GetExamQuestions() error = %v", err)
		}
		if len(resp.Questions) != 1 {
			t.Fatalf("Questions = %d, want 1", len(resp.Questions))
		}
		if resp.Questions[0].CorrectAnswer != "B" {
			t.Errorf("owner's CorrectAnswer = %q, want B", resp.Questions[0].CorrectAnswer)
		}
	})

	t.Run("students get stripped answers", func(t *testing.T) {
		resp, err := svc.GetExamQuestions(ctx, 5, 1)
		if err != nil {
			t.Fatalf("GetExamQuestions() error = %v", err)
		}
		if resp.Questions[0].CorrectAnswer != "" {
			t.Errorf("student's CorrectAnswer = %q, want empty", resp.Questions[0].CorrectAnswer)
		}
		if resp.Questions[0].OptionB != "Transport" {
			t.Errorf("OptionB = %q, want Transport", resp.Questions[0].OptionB)
		}
	})
}

func TestQuestionService_UpdateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestQuestionService()

	created, err := svc.AddQuestion(ctx, 10, 1, sampleQuestionRequest("B"))
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}

	t.Run("owner updates and normalizes", func(t *testing.T) {
		req := &dto.UpdateQuestionRequest{
			QuestionText:  "Updated text",
			OptionA:       "A",
			OptionB:       "B",
			OptionC:       "C",
			OptionD:       "D",
			CorrectAnswer: "c",
			Marks:         15,
		}
		resp, err := svc.UpdateQuestion(ctx, 10, created.ID, req)
		if err != nil {
			t.Fatalf("UpdateQuestion() error = %v", err)
		}
		if resp.CorrectAnswer != "C" || resp.Marks != 15 {
			t.Errorf("updated question = %q/%d, want C/15", resp.CorrectAnswer, resp.Marks)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := svc.UpdateQuestion(ctx, 11, created.ID, &dto.UpdateQuestionRequest{
			QuestionText:  "x",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "A",
			Marks:         1,
		})
		if !errors.Is(err, apperrors.ErrNotExamOwner) {
			t.Errorf("UpdateQuestion() error = %v, want ErrNotExamOwner", err)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := svc.UpdateQuestion(ctx, 10, 999, &dto.UpdateQuestionRequest{
			QuestionText:  "x",
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "A",
			Marks:         1,
		})
		if !errors.Is(err, apperrors.ErrQuestionNotFound) {
			t.Errorf("UpdateQuestion() error = %v, want ErrQuestionNotFound", err)
		}
	})
}

func TestQuestionService_DeleteQuestion(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuestionService()

	created, err := svc.AddQuestion(ctx, 10, 1, sampleQuestionRequest("A"))
	if err != nil {
		t.Fatalf("AddQuestion() error = %v", err)
	}

	if err := svc.DeleteQuestion(ctx, 11, created.ID); !errors.Is(err, apperrors.ErrNotExamOwner) {
		t.Errorf("DeleteQuestion() by non-owner error = %v, want ErrNotExamOwner", err)
	}

	if err := svc.DeleteQuestion(ctx, 10, created.ID); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, apperrors.ErrQuestionNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrQuestionNotFound", err)
	}
}
