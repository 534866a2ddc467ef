// Package seed creates default records for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/repositories"
	"github.com/deniz/examhub/internal/pkg/apperrors"
	"github.com/deniz/examhub/internal/pkg/auth"
)

const (
	defaultFacultyEmail = "faculty@examhub.local"
	defaultStudentEmail = "student@examhub.local"
	defaultPassword     = "examhub123"

	sampleExamTitle = "Introduction to Go"
)

// CreateDefaultData seeds a demo faculty user, a demo student and a sample
// exam with a few questions. Safe to run on every startup; existing records
// are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	var errs error

	faculty, err := ensureUser(ctx, repos.UserRepository, "Demo Faculty", defaultFacultyEmail, models.RoleFaculty, lgr)
	if err != nil {
		errs = errors.Join(errs, err)
	}

	if _, err := ensureUser(ctx, repos.UserRepository, "Demo Student", defaultStudentEmail, models.RoleStudent, lgr); err != nil {
		errs = errors.Join(errs, err)
	}

	if faculty != nil {
		if err := ensureSampleExam(ctx, repos, faculty.ID, lgr); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if errs != nil {
		lgr.Warn().Err(errs).Msg("Seeding finished with errors")
	}
	return errs
}

func ensureUser(ctx context.Context, userRepo *repositories.UserRepository, name, email string, role models.RoleType, lgr zerolog.Logger) (*models.User, error) {
	existing, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up seed user %s: %w", email, err)
	}

	hashed, err := auth.HashPassword(defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		RoleType: role,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return userRepo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create seed user %s: %w", email, err)
	}

	lgr.Info().Str("email", email).Str("role", string(role)).Msg("Seeded default user")
	return user, nil
}

func ensureSampleExam(ctx context.Context, repos *repositories.Repositories, facultyID int64, lgr zerolog.Logger) error {
	existing, err := repos.ExamRepository.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return fmt.Errorf("failed to list seed faculty exams: %w", err)
	}
	for _, e := range existing {
		if e.Title == sampleExamTitle {
			return nil
		}
	}

	exam := &models.Exam{
		Title:          sampleExamTitle,
		Description:    "A short quiz covering Go basics.",
		Duration:       30,
		TotalMarks:     30,
		PassPercentage: 50,
		FacultyID:      facultyID,
	}
	if err := repos.ExamRepository.Create(ctx, exam); err != nil {
		return fmt.Errorf("failed to create sample exam: %w", err)
	}

	questions := []*models.Question{
		{
			ExamID:        exam.ID,
			QuestionText:  "Which keyword declares a new variable with inferred type?",
			OptionA:       ":=",
			OptionB:       "var only",
			OptionC:       "let",
			OptionD:       "def",
			CorrectAnswer: "A",
			Marks:         10,
		},
		{
			ExamID:        exam.ID,
			QuestionText:  "What does a nil map lookup return?",
			OptionA:       "A runtime panic",
			OptionB:       "The zero value",
			OptionC:       "An error",
			OptionD:       "Undefined behaviour",
			CorrectAnswer: "B",
			Marks:         10,
		},
		{
			ExamID:        exam.ID,
			QuestionText:  "Which builtin starts a new goroutine?",
			OptionA:       "spawn",
			OptionB:       "thread",
			OptionC:       "go",
			OptionD:       "async",
			CorrectAnswer: "C",
			Marks:         10,
		},
	}
	for _, q := range questions {
		if err := repos.QuestionRepository.Create(ctx, q); err != nil {
			return fmt.Errorf("failed to create sample question: %w", err)
		}
	}

	lgr.Info().Int64("examId", exam.ID).Msg("Seeded sample exam")
	return nil
}
