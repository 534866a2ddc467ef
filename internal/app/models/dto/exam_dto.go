package dto

import (
	"time"

	"github.com/deniz/examhub/internal/app/models"
)

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Duration       int        `json:"duration" binding:"required,gt=0"`
	TotalMarks     int        `json:"totalMarks" binding:"required,gt=0"`
	PassPercentage float64    `json:"passPercentage" binding:"min=0,max=100"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
}

// UpdateExamRequest represents exam update data
type UpdateExamRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Duration       int        `json:"duration" binding:"required,gt=0"`
	TotalMarks     int        `json:"totalMarks" binding:"required,gt=0"`
	PassPercentage float64    `json:"passPercentage" binding:"min=0,max=100"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
}

// ExamResponse represents basic exam information
type ExamResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Duration       int        `json:"duration"`
	TotalMarks     int        `json:"totalMarks"`
	PassPercentage float64    `json:"passPercentage"`
	StartTime      *time.Time `json:"startTime,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	FacultyID      int64      `json:"facultyId"`
	FacultyName    string     `json:"facultyName,omitempty"`
	QuestionCount  int        `json:"questionCount,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ExamListResponse represents a list of exams
type ExamListResponse struct {
	Exams []ExamResponse `json:"exams"`
}

// FromExam converts a models.Exam to an ExamResponse
func FromExam(exam *models.Exam) ExamResponse {
	if exam == nil {
		return ExamResponse{}
	}

	resp := ExamResponse{
		ID:             exam.ID,
		Title:          exam.Title,
		Description:    exam.Description,
		Duration:       exam.Duration,
		TotalMarks:     exam.TotalMarks,
		PassPercentage: exam.PassPercentage,
		StartTime:      exam.StartTime,
		EndTime:        exam.EndTime,
		FacultyID:      exam.FacultyID,
		CreatedAt:      exam.CreatedAt,
		UpdatedAt:      exam.UpdatedAt,
	}
	if exam.Faculty != nil {
		resp.FacultyName = exam.Faculty.Name
	}
	return resp
}

// FromExams converts a slice of exams to responses
func FromExams(exams []*models.Exam) []ExamResponse {
	responses := make([]ExamResponse, 0, len(exams))
	for _, exam := range exams {
		responses = append(responses, FromExam(exam))
	}
	return responses
}
