package services

import (
	"context"
	"fmt"

	"github.com/deniz/examhub/internal/app/auth"
	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/pkg/apperrors"
)

// ExamStore is the persistence surface for exams
type ExamStore interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	GetAll(ctx context.Context) ([]*models.Exam, error)
	GetByFacultyID(ctx context.Context, facultyID int64) ([]*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id int64) error
	CountQuestions(ctx context.Context, examID int64) (int, error)
}

// ExamService defines the interface for exam catalog operations
type ExamService interface {
	CreateExam(ctx context.Context, facultyID int64, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	GetExamByID(ctx context.Context, id int64) (*dto.ExamResponse, error)
	GetAllExams(ctx context.Context) (*dto.ExamListResponse, error)
	GetFacultyExams(ctx context.Context, facultyID int64) (*dto.ExamListResponse, error)
	UpdateExam(ctx context.Context, facultyID, id int64, req *dto.UpdateExamRequest) (*dto.ExamResponse, error)
	DeleteExam(ctx context.Context, facultyID, id int64) error
}

// examServiceImpl implements ExamService
type examServiceImpl struct {
	examStore ExamStore
}

// NewExamService creates a new ExamService
func NewExamService(examStore ExamStore) ExamService {
	return &examServiceImpl{examStore: examStore}
}

func validateExamWindow(req *dto.CreateExamRequest) error {
	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return apperrors.NewBadRequestError("end time must be after start time")
	}
	return nil
}

// CreateExam creates a new exam owned by the calling faculty member
func (s *examServiceImpl) CreateExam(ctx context.Context, facultyID int64, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if err := validateExamWindow(req); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		Title:          req.Title,
		Description:    req.Description,
		Duration:       req.Duration,
		TotalMarks:     req.TotalMarks,
		PassPercentage: req.PassPercentage,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		FacultyID:      facultyID,
	}

	if err := s.examStore.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("error creating exam: %w", err)
	}

	resp := dto.FromExam(exam)
	return &resp, nil
}

// GetExamByID retrieves an exam by ID with its current question count
func (s *examServiceImpl) GetExamByID(ctx context.Context, id int64) (*dto.ExamResponse, error) {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.examStore.CountQuestions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error counting exam questions: %w", err)
	}

	resp := dto.FromExam(exam)
	resp.QuestionCount = count
	return &resp, nil
}

// GetAllExams retrieves every exam in the catalog
func (s *examServiceImpl) GetAllExams(ctx context.Context) (*dto.ExamListResponse, error) {
	exams, err := s.examStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}

	return &dto.ExamListResponse{Exams: dto.FromExams(exams)}, nil
}

// GetFacultyExams retrieves the exams created by one faculty member
func (s *examServiceImpl) GetFacultyExams(ctx context.Context, facultyID int64) (*dto.ExamListResponse, error) {
	exams, err := s.examStore.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty exams: %w", err)
	}

	return &dto.ExamListResponse{Exams: dto.FromExams(exams)}, nil
}

// UpdateExam updates an exam after checking ownership
func (s *examServiceImpl) UpdateExam(ctx context.Context, facultyID, id int64, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return nil, err
	}

	if req.StartTime != nil && req.EndTime != nil && !req.EndTime.After(*req.StartTime) {
		return nil, apperrors.NewBadRequestError("end time must be after start time")
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.Duration = req.Duration
	exam.TotalMarks = req.TotalMarks
	exam.PassPercentage = req.PassPercentage
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime

	if err := s.examStore.Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("error updating exam: %w", err)
	}

	resp := dto.FromExam(exam)
	return &resp, nil
}

// DeleteExam removes an exam and, through the schema, its questions and attempts
func (s *examServiceImpl) DeleteExam(ctx context.Context, facultyID, id int64) error {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AssertExamOwner(exam, facultyID); err != nil {
		return err
	}

	if err := s.examStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}

	return nil
}
