package scoring

import (
	"math"
	"testing"

	"github.com/deniz/examhub/internal/app/models"
)

func twoQuestionExam() []models.Question {
	return []models.Question{
		{ID: 1, ExamID: 1, CorrectAnswer: "A", Marks: 10},
		{ID: 2, ExamID: 1, CorrectAnswer: "B", Marks: 20},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name           string
		questions      []models.Question
		submitted      map[int64]string
		totalMarks     int
		passPercentage float64
		score          int
		percentage     float64
		status         models.AttemptStatus
	}{
		{
			name:           "all correct full marks",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{1: "A", 2: "B"},
			totalMarks:     30,
			passPercentage: 50,
			score:          30, percentage: 100, status: models.AttemptPass,
		},
		{
			name:           "case-insensitive match on first question only",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{1: "a", 2: "C"},
			totalMarks:     30,
			passPercentage: 50,
			score:          10, percentage: 100.0 / 3.0, status: models.AttemptFail,
		},
		{
			name:           "empty submission fails",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{},
			totalMarks:     30,
			passPercentage: 50,
			score:          0, percentage: 0, status: models.AttemptFail,
		},
		{
			name:           "empty submission passes when threshold is zero",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{},
			totalMarks:     30,
			passPercentage: 0,
			score:          0, percentage: 0, status: models.AttemptPass,
		},
		{
			name:           "percentage exactly at threshold passes",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{2: "b"},
			totalMarks:     30,
			passPercentage: 200.0 / 3.0,
			score:          20, percentage: 200.0 / 3.0, status: models.AttemptPass,
		},
		{
			name:           "zero total marks guards division",
			questions:      []models.Question{{ID: 1, CorrectAnswer: "A", Marks: 0}},
			submitted:      map[int64]string{1: "A"},
			totalMarks:     0,
			passPercentage: 50,
			score:          0, percentage: 0, status: models.AttemptFail,
		},
		{
			name:           "unknown question ids are ignored",
			questions:      twoQuestionExam(),
			submitted:      map[int64]string{1: "A", 99: "B"},
			totalMarks:     30,
			passPercentage: 50,
			score:          10, percentage: 100.0 / 3.0, status: models.AttemptFail,
		},
		{
			name:           "no questions",
			questions:      nil,
			submitted:      map[int64]string{1: "A"},
			totalMarks:     0,
			passPercentage: 50,
			score:          0, percentage: 0, status: models.AttemptFail,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Grade(Input{
				Questions:      tc.questions,
				Submitted:      tc.submitted,
				TotalMarks:     tc.totalMarks,
				PassPercentage: tc.passPercentage,
			})

			if got.Score != tc.score {
				t.Fatalf("expected score=%d, got=%d", tc.score, got.Score)
			}
			if math.Abs(got.Percentage-tc.percentage) > 1e-9 {
				t.Fatalf("expected percentage=%v, got=%v", tc.percentage, got.Percentage)
			}
			if got.Status != tc.status {
				t.Fatalf("expected status=%s, got=%s", tc.status, got.Status)
			}
			if len(got.Answers) != len(tc.questions) {
				t.Fatalf("expected %d answer rows, got %d", len(tc.questions), len(got.Answers))
			}
		})
	}
}

func TestGrade_AnswerSetCompleteness(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: "A", Marks: 10},
		{ID: 2, CorrectAnswer: "B", Marks: 20},
		{ID: 3, CorrectAnswer: "D", Marks: 5},
	}

	got := Grade(Input{
		Questions:      questions,
		Submitted:      map[int64]string{2: "c"},
		TotalMarks:     35,
		PassPercentage: 40,
	})

	if len(got.Answers) != 3 {
		t.Fatalf("expected one answer per question, got %d", len(got.Answers))
	}

	// Answer rows follow question order; unanswered questions are recorded
	// with a nil selection.
	for i, q := range questions {
		if got.Answers[i].QuestionID != q.ID {
			t.Fatalf("answer %d: expected question id %d, got %d", i, q.ID, got.Answers[i].QuestionID)
		}
	}
	if got.Answers[0].SelectedOption != nil {
		t.Fatalf("expected nil selection for unanswered question, got %q", *got.Answers[0].SelectedOption)
	}
	if got.Answers[1].SelectedOption == nil || *got.Answers[1].SelectedOption != "c" {
		t.Fatalf("expected recorded selection \"c\", got %v", got.Answers[1].SelectedOption)
	}
	if got.Answers[2].SelectedOption != nil {
		t.Fatalf("expected nil selection for unanswered question")
	}
	if got.Score != 0 {
		t.Fatalf("wrong answers must not score, got %d", got.Score)
	}
}
