package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/deniz/examhub/internal/app/auth"
	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/pkg/apperrors"
	"github.com/deniz/examhub/internal/pkg/validation"
)

// QuestionStore is the persistence surface for questions
type QuestionStore interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	GetByExamID(ctx context.Context, examID int64) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int64) error
}

// QuestionService defines the interface for question operations
type QuestionService interface {
	AddQuestion(ctx context.Context, facultyID, examID int64, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetExamQuestions(ctx context.Context, callerID, examID int64) (*dto.QuestionListResponse, error)
	UpdateQuestion(ctx context.Context, facultyID, questionID int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, facultyID, questionID int64) error
}

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	questionStore QuestionStore
	examStore     ExamStore
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionStore QuestionStore, examStore ExamStore) QuestionService {
	return &questionServiceImpl{
		questionStore: questionStore,
		examStore:     examStore,
	}
}

// AddQuestion adds a question to an exam owned by the calling faculty member.
// The correct answer is stored uppercase so grading can compare options
// without caring about the case the author typed.
func (s *questionServiceImpl) AddQuestion(ctx context.Context, facultyID, examID int64, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return nil, err
	}

	correctAnswer := strings.ToUpper(req.CorrectAnswer)
	if !validation.IsValidOption(correctAnswer) {
		return nil, apperrors.NewBadRequestError("correct answer must be one of A, B, C or D")
	}

	question := &models.Question{
		ExamID:        examID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: correctAnswer,
		Marks:         req.Marks,
	}

	if err := s.questionStore.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	resp := dto.FromQuestion(question, true)
	return &resp, nil
}

// GetExamQuestions retrieves an exam's questions. Correct answers are only
// included when the caller owns the exam.
func (s *questionServiceImpl) GetExamQuestions(ctx context.Context, callerID, examID int64) (*dto.QuestionListResponse, error) {
	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionStore.GetByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error listing exam questions: %w", err)
	}

	includeAnswer := exam.FacultyID == callerID
	return &dto.QuestionListResponse{
		ExamID:    examID,
		Questions: dto.FromQuestions(questions, includeAnswer),
	}, nil
}

// UpdateQuestion updates a question after checking exam ownership
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, facultyID, questionID int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionStore.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	exam, err := s.examStore.GetByID(ctx, question.ExamID)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return nil, err
	}

	correctAnswer := strings.ToUpper(req.CorrectAnswer)
	if !validation.IsValidOption(correctAnswer) {
		return nil, apperrors.NewBadRequestError("correct answer must be one of A, B, C or D")
	}

	question.QuestionText = req.QuestionText
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectAnswer = correctAnswer
	question.Marks = req.Marks

	if err := s.questionStore.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("error updating question: %w", err)
	}

	resp := dto.FromQuestion(question, true)
	return &resp, nil
}

// DeleteQuestion removes a question after checking exam ownership
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, facultyID, questionID int64) error {
	question, err := s.questionStore.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	exam, err := s.examStore.GetByID(ctx, question.ExamID)
	if err != nil {
		return err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return err
	}

	return s.questionStore.Delete(ctx, questionID)
}
