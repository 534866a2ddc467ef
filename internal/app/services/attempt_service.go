package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/auth"
	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/app/scoring"
	"github.com/deniz/examhub/internal/pkg/apperrors"
	"github.com/deniz/examhub/internal/pkg/helpers"
	"github.com/deniz/examhub/internal/pkg/validation"
)

// AttemptStore is the persistence surface for attempts and answers
type AttemptStore interface {
	FindByStudentAndExam(ctx context.Context, studentID, examID int64, completed bool) (*models.Attempt, error)
	GetByID(ctx context.Context, id int64) (*models.Attempt, error)
	Create(ctx context.Context, attempt *models.Attempt) error
	Complete(ctx context.Context, attempt *models.Attempt, answers []models.Answer) error
	GetAnswers(ctx context.Context, attemptID int64) ([]models.Answer, error)
	ListCompletedByStudent(ctx context.Context, studentID int64, offset uint64, limit int) ([]*models.Attempt, int64, error)
	ListCompletedByExam(ctx context.Context, examID int64, offset uint64, limit int) ([]*models.Attempt, int64, error)
}

// AttemptService defines the interface for the attempt lifecycle
type AttemptService interface {
	StartAttempt(ctx context.Context, studentID, examID int64) (*dto.AttemptResponse, error)
	SubmitAttempt(ctx context.Context, studentID, examID int64, req *dto.SubmitAttemptRequest) (*dto.ResultResponse, error)
	GetStudentResults(ctx context.Context, studentID int64, page, size int) (*dto.ResultListResponse, error)
	GetResultDetail(ctx context.Context, studentID, attemptID int64) (*dto.ResultDetailResponse, error)
	GetExamResults(ctx context.Context, facultyID, examID int64, page, size int) (*dto.ResultListResponse, error)
}

// attemptServiceImpl implements AttemptService
type attemptServiceImpl struct {
	attemptStore  AttemptStore
	examStore     ExamStore
	questionStore QuestionStore
	userStore     UserStore
	logger        zerolog.Logger
}

// NewAttemptService creates a new AttemptService
func NewAttemptService(attemptStore AttemptStore, examStore ExamStore, questionStore QuestionStore, userStore UserStore, logger zerolog.Logger) AttemptService {
	return &attemptServiceImpl{
		attemptStore:  attemptStore,
		examStore:     examStore,
		questionStore: questionStore,
		userStore:     userStore,
		logger:        logger,
	}
}

// normalizeSubmittedOptions uppercases the submitted selections and rejects
// anything outside A-D before it can reach grading or the answers table.
func normalizeSubmittedOptions(submitted map[int64]string) (map[int64]string, error) {
	normalized := make(map[int64]string, len(submitted))
	for questionID, option := range submitted {
		upper := strings.ToUpper(option)
		if !validation.IsValidOption(upper) {
			return nil, apperrors.NewBadRequestError(
				fmt.Sprintf("selected option for question %d must be one of A, B, C or D", questionID))
		}
		normalized[questionID] = upper
	}
	return normalized, nil
}

// StartAttempt opens an attempt for the student on the exam. A student can
// hold at most one open attempt per exam and cannot restart an exam they
// already completed. The checks here give precise errors; the database's
// partial unique indexes enforce the same rules against concurrent requests.
func (s *attemptServiceImpl) StartAttempt(ctx context.Context, studentID, examID int64) (*dto.AttemptResponse, error) {
	if _, err := s.userStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.examStore.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	completed, err := s.attemptStore.FindByStudentAndExam(ctx, studentID, examID, true)
	if err != nil {
		return nil, fmt.Errorf("error checking completed attempt: %w", err)
	}
	if completed != nil {
		return nil, apperrors.ErrAttemptAlreadyCompleted
	}

	active, err := s.attemptStore.FindByStudentAndExam(ctx, studentID, examID, false)
	if err != nil {
		return nil, fmt.Errorf("error checking active attempt: %w", err)
	}
	if active != nil {
		return nil, apperrors.ErrAttemptInProgress
	}

	attempt := &models.Attempt{
		StudentID:   studentID,
		ExamID:      examID,
		Status:      models.AttemptInProgress,
		IsCompleted: false,
	}

	if err := s.attemptStore.Create(ctx, attempt); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("attemptID", attempt.ID).
		Int64("studentID", studentID).
		Int64("examID", examID).
		Msg("Attempt started")

	resp := dto.FromAttempt(attempt)
	return &resp, nil
}

// SubmitAttempt grades the student's active attempt and completes it. Every
// question of the exam gets an answer row, with a null selection for
// questions the student left blank. Submission is final.
func (s *attemptServiceImpl) SubmitAttempt(ctx context.Context, studentID, examID int64, req *dto.SubmitAttemptRequest) (*dto.ResultResponse, error) {
	if _, err := s.userStore.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptStore.FindByStudentAndExam(ctx, studentID, examID, false)
	if err != nil {
		return nil, fmt.Errorf("error retrieving active attempt: %w", err)
	}
	if attempt == nil {
		// Also the path a repeat submit takes: once completed, no
		// in-progress attempt matches, so regrading is impossible.
		return nil, apperrors.ErrNoActiveAttempt
	}

	answers, err := normalizeSubmittedOptions(req.Answers)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionStore.GetByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error loading exam questions: %w", err)
	}

	result := scoring.Grade(scoring.Input{
		Questions:      questions,
		Submitted:      answers,
		TotalMarks:     exam.TotalMarks,
		PassPercentage: exam.PassPercentage,
	})

	now := time.Now()
	attempt.Score = &result.Score
	attempt.Percentage = &result.Percentage
	attempt.Status = result.Status
	attempt.SubmittedAt = &now
	attempt.IsCompleted = true

	// The reads above run outside the completion transaction. That is safe:
	// Complete only matches the still-open row, so of two racing submits
	// exactly one commits and the other reports no active attempt.
	if err := s.attemptStore.Complete(ctx, attempt, result.Answers); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("attemptID", attempt.ID).
		Int64("studentID", studentID).
		Int64("examID", examID).
		Int("score", result.Score).
		Str("status", string(result.Status)).
		Msg("Attempt submitted")

	attempt.Exam = exam
	resp := dto.FromAttemptResult(attempt)
	return &resp, nil
}

// GetStudentResults retrieves the student's completed attempts, newest first
func (s *attemptServiceImpl) GetStudentResults(ctx context.Context, studentID int64, page, size int) (*dto.ResultListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	attempts, total, err := s.attemptStore.ListCompletedByStudent(ctx, studentID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing student results: %w", err)
	}

	return &dto.ResultListResponse{
		Results:        dto.FromAttemptResults(attempts),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetResultDetail retrieves one of the student's completed attempts together
// with its recorded answers. Attempts of other students and attempts still in
// progress are reported as missing rather than forbidden.
func (s *attemptServiceImpl) GetResultDetail(ctx context.Context, studentID, attemptID int64) (*dto.ResultDetailResponse, error) {
	attempt, err := s.attemptStore.GetByID(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attempt: %w", err)
	}
	if attempt == nil || attempt.StudentID != studentID || !attempt.IsCompleted {
		return nil, apperrors.NewResourceNotFoundError("result not found")
	}

	exam, err := s.examStore.GetByID(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionStore.GetByExamID(ctx, attempt.ExamID)
	if err != nil {
		return nil, fmt.Errorf("error loading exam questions: %w", err)
	}

	answers, err := s.attemptStore.GetAnswers(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("error loading attempt answers: %w", err)
	}

	attempt.Exam = exam
	resp := dto.FromAttemptResultDetail(attempt, answers, questions)
	return &resp, nil
}

// GetExamResults retrieves all completed attempts for an exam the caller owns
func (s *attemptServiceImpl) GetExamResults(ctx context.Context, facultyID, examID int64, page, size int) (*dto.ResultListResponse, error) {
	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)

	attempts, total, err := s.attemptStore.ListCompletedByExam(ctx, examID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing exam results: %w", err)
	}

	return &dto.ResultListResponse{
		Results:        dto.FromAttemptResults(attempts),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
