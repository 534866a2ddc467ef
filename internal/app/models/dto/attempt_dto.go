package dto

import (
	"strings"
	"time"

	"github.com/deniz/examhub/internal/app/models"
)

// SubmitAttemptRequest carries the student's selected options keyed by
// question ID. Unanswered questions are simply absent from the map.
type SubmitAttemptRequest struct {
	Answers map[int64]string `json:"answers" binding:"required"`
}

// AttemptResponse represents an in-progress attempt
type AttemptResponse struct {
	ID        int64     `json:"id"`
	ExamID    int64     `json:"examId"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
}

// ResultResponse represents a graded attempt
type ResultResponse struct {
	AttemptID   int64      `json:"attemptId"`
	ExamID      int64      `json:"examId"`
	ExamTitle   string     `json:"examTitle,omitempty"`
	StudentID   int64      `json:"studentId"`
	StudentName string     `json:"studentName,omitempty"`
	Score       int        `json:"score"`
	TotalMarks  int        `json:"totalMarks"`
	Percentage  float64    `json:"percentage"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

// ResultListResponse represents a page of graded attempts
type ResultListResponse struct {
	Results []ResultResponse `json:"results"`
	PaginationInfo
}

// AnswerResponse is one recorded answer in a result detail
type AnswerResponse struct {
	QuestionID     int64   `json:"questionId"`
	QuestionText   string  `json:"questionText,omitempty"`
	SelectedOption *string `json:"selectedOption,omitempty"`
	CorrectAnswer  string  `json:"correctAnswer,omitempty"`
	Correct        bool    `json:"correct"`
}

// ResultDetailResponse is a graded attempt with its answer breakdown
type ResultDetailResponse struct {
	ResultResponse
	Answers []AnswerResponse `json:"answers"`
}

// FromAttempt converts an in-progress attempt to its response form
func FromAttempt(attempt *models.Attempt) AttemptResponse {
	if attempt == nil {
		return AttemptResponse{}
	}
	return AttemptResponse{
		ID:        attempt.ID,
		ExamID:    attempt.ExamID,
		Status:    string(attempt.Status),
		StartedAt: attempt.CreatedAt,
	}
}

// FromAttemptResult converts a completed attempt to its result projection.
// Score and percentage are zero-valued if the attempt is still open.
func FromAttemptResult(attempt *models.Attempt) ResultResponse {
	if attempt == nil {
		return ResultResponse{}
	}

	resp := ResultResponse{
		AttemptID:   attempt.ID,
		ExamID:      attempt.ExamID,
		StudentID:   attempt.StudentID,
		Status:      string(attempt.Status),
		SubmittedAt: attempt.SubmittedAt,
	}
	if attempt.Score != nil {
		resp.Score = *attempt.Score
	}
	if attempt.Percentage != nil {
		resp.Percentage = *attempt.Percentage
	}
	if attempt.Exam != nil {
		resp.ExamTitle = attempt.Exam.Title
		resp.TotalMarks = attempt.Exam.TotalMarks
	}
	if attempt.Student != nil {
		resp.StudentName = attempt.Student.Name
	}
	return resp
}

// FromAttemptResultDetail joins a completed attempt's answers with the exam's
// current questions. Answers whose question has since been removed keep the
// recorded selection without question context.
func FromAttemptResultDetail(attempt *models.Attempt, answers []models.Answer, questions []models.Question) ResultDetailResponse {
	byID := make(map[int64]models.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}

	detail := ResultDetailResponse{
		ResultResponse: FromAttemptResult(attempt),
		Answers:        make([]AnswerResponse, 0, len(answers)),
	}
	for _, answer := range answers {
		resp := AnswerResponse{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
		}
		if question, ok := byID[answer.QuestionID]; ok {
			resp.QuestionText = question.QuestionText
			resp.CorrectAnswer = question.CorrectAnswer
			resp.Correct = answer.SelectedOption != nil &&
				strings.EqualFold(*answer.SelectedOption, question.CorrectAnswer)
		}
		detail.Answers = append(detail.Answers, resp)
	}
	return detail
}

// FromAttemptResults converts a slice of completed attempts to result projections
func FromAttemptResults(attempts []*models.Attempt) []ResultResponse {
	responses := make([]ResultResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, FromAttemptResult(attempt))
	}
	return responses
}
