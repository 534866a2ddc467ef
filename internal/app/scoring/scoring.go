package scoring

import (
	"strings"

	"github.com/deniz/examhub/internal/app/models"
)

// Input carries everything grading needs: the exam's question set as it exists
// at submission time, the student's submitted selections keyed by question id,
// and the exam's grading parameters.
type Input struct {
	Questions      []models.Question
	Submitted      map[int64]string
	TotalMarks     int
	PassPercentage float64
}

// Result is the graded outcome of one submission. Answers contains exactly one
// entry per question in Input.Questions, in question order, with a nil
// SelectedOption for questions left unanswered; the denominator of the exam is
// thereby fixed to the question set at submission time.
type Result struct {
	Score      int
	Percentage float64
	Status     models.AttemptStatus
	Answers    []models.Answer
}

// Grade scores a submission against the authoritative answer key. For each
// question the submitted option, if any, is compared case-insensitively to the
// correct option; a match earns the question's full marks. There is no partial
// credit and no penalty for wrong answers. Submitted options for question ids
// not in the question set are ignored.
func Grade(in Input) Result {
	score := 0
	answers := make([]models.Answer, 0, len(in.Questions))

	for _, q := range in.Questions {
		var selected *string
		if raw, ok := in.Submitted[q.ID]; ok {
			v := raw
			selected = &v
		}
		answers = append(answers, models.Answer{
			QuestionID:     q.ID,
			SelectedOption: selected,
		})

		if selected != nil && strings.EqualFold(*selected, q.CorrectAnswer) {
			score += q.Marks
		}
	}

	percentage := 0.0
	if in.TotalMarks > 0 {
		percentage = float64(score) / float64(in.TotalMarks) * 100
	}

	status := models.AttemptFail
	if percentage >= in.PassPercentage {
		status = models.AttemptPass
	}

	return Result{
		Score:      score,
		Percentage: percentage,
		Status:     status,
		Answers:    answers,
	}
}
