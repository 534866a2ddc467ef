package auth

import (
	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/pkg/apperrors"
)

// AssertExamOwner checks that the caller created the exam. Faculty members
// can only manage their own exams and results.
func AssertExamOwner(exam *models.Exam, userID int64) error {
	if exam == nil {
		return apperrors.ErrExamNotFound
	}
	if exam.FacultyID != userID {
		return apperrors.ErrNotExamOwner
	}
	return nil
}
