package dto

import "github.com/deniz/examhub/internal/app/models"

// CreateQuestionRequest represents question creation data
type CreateQuestionRequest struct {
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,oneof=A B C D a b c d"`
	Marks         int    `json:"marks" binding:"required,gt=0"`
}

// UpdateQuestionRequest represents question update data
type UpdateQuestionRequest struct {
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,oneof=A B C D a b c d"`
	Marks         int    `json:"marks" binding:"required,gt=0"`
}

// QuestionResponse represents question information. CorrectAnswer is only
// populated for faculty callers.
type QuestionResponse struct {
	ID            int64  `json:"id"`
	ExamID        int64  `json:"examId"`
	QuestionText  string `json:"questionText"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Marks         int    `json:"marks"`
}

// QuestionListResponse represents the questions of an exam
type QuestionListResponse struct {
	ExamID    int64              `json:"examId"`
	Questions []QuestionResponse `json:"questions"`
}

// FromQuestion converts a models.Question to a QuestionResponse, stripping
// the correct answer unless includeAnswer is set
func FromQuestion(question *models.Question, includeAnswer bool) QuestionResponse {
	if question == nil {
		return QuestionResponse{}
	}

	resp := QuestionResponse{
		ID:           question.ID,
		ExamID:       question.ExamID,
		QuestionText: question.QuestionText,
		OptionA:      question.OptionA,
		OptionB:      question.OptionB,
		OptionC:      question.OptionC,
		OptionD:      question.OptionD,
		Marks:        question.Marks,
	}
	if includeAnswer {
		resp.CorrectAnswer = question.CorrectAnswer
	}
	return resp
}

// FromQuestions converts a slice of questions to responses
func FromQuestions(questions []models.Question, includeAnswer bool) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, FromQuestion(&questions[i], includeAnswer))
	}
	return responses
}
