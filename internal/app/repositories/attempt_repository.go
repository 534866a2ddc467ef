package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/db"
	"github.com/deniz/examhub/internal/pkg/apperrors"
	"github.com/deniz/examhub/internal/pkg/dberrors"
	"github.com/deniz/examhub/internal/pkg/logger"
)

// Partial unique index names from the migrations. Inserts racing past the
// service-level existence checks violate one of these and are translated to
// the matching domain error instead of leaking a storage error.
const (
	activeAttemptConstraint    = "uq_attempts_active"
	completedAttemptConstraint = "uq_attempts_completed"
)

// AttemptRepository handles database operations for attempts and their answers
type AttemptRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttemptRepository creates a new AttemptRepository
func NewAttemptRepository(db *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FindByStudentAndExam retrieves the attempt for a (student, exam) pair
// partitioned by the completion flag. Returns nil without error when no such
// attempt exists. The partial unique indexes guarantee at most one row matches.
func (r *AttemptRepository) FindByStudentAndExam(ctx context.Context, studentID, examID int64, completed bool) (*models.Attempt, error) {
	query := `
		SELECT id, student_id, exam_id, score, percentage, status, submitted_at, is_completed, created_at
		FROM attempts
		WHERE student_id = $1 AND exam_id = $2 AND is_completed = $3
	`

	var attempt models.Attempt
	err := r.db.QueryRow(ctx, query, studentID, examID, completed).Scan(
		&attempt.ID,
		&attempt.StudentID,
		&attempt.ExamID,
		&attempt.Score,
		&attempt.Percentage,
		&attempt.Status,
		&attempt.SubmittedAt,
		&attempt.IsCompleted,
		&attempt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attempt: %w", err)
	}

	return &attempt, nil
}

// GetByID retrieves a single attempt by its primary key. Returns nil without
// error when no such attempt exists.
func (r *AttemptRepository) GetByID(ctx context.Context, id int64) (*models.Attempt, error) {
	query := `
		SELECT id, student_id, exam_id, score, percentage, status, submitted_at, is_completed, created_at
		FROM attempts
		WHERE id = $1
	`

	var attempt models.Attempt
	err := r.db.QueryRow(ctx, query, id).Scan(
		&attempt.ID,
		&attempt.StudentID,
		&attempt.ExamID,
		&attempt.Score,
		&attempt.Percentage,
		&attempt.Status,
		&attempt.SubmittedAt,
		&attempt.IsCompleted,
		&attempt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attempt: %w", err)
	}

	return &attempt, nil
}

// Create inserts a new in-progress attempt and sets its generated ID.
// A concurrent Start that lost the race against this insert is reported as
// the attempt-in-progress conflict rather than a raw unique violation.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	query := `
		INSERT INTO attempts (student_id, exam_id, status, is_completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		attempt.StudentID, attempt.ExamID, attempt.Status, attempt.IsCompleted,
	).Scan(&attempt.ID, &attempt.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, activeAttemptConstraint) {
			logger.Warn().
				Int64("studentID", attempt.StudentID).
				Int64("examID", attempt.ExamID).
				Msg("Concurrent start detected, rejecting duplicate attempt")
			return apperrors.ErrAttemptInProgress
		}
		if dberrors.IsDuplicateConstraintError(err, completedAttemptConstraint) {
			return apperrors.ErrAttemptAlreadyCompleted
		}
		return fmt.Errorf("error creating attempt: %w", err)
	}

	return nil
}

// Complete writes the graded attempt and its full answer set in one
// transaction; the grade and the answers commit together or not at all.
// The update only matches the still-open attempt row, so a submission that
// raced a concurrent completion reports no active attempt.
func (r *AttemptRepository) Complete(ctx context.Context, attempt *models.Attempt, answers []models.Answer) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE attempts
			SET score = $1, percentage = $2, status = $3, submitted_at = $4, is_completed = TRUE
			WHERE id = $5 AND is_completed = FALSE
		`

		cmdTag, err := tx.Exec(ctx, query,
			attempt.Score, attempt.Percentage, attempt.Status, attempt.SubmittedAt, attempt.ID,
		)
		if err != nil {
			return fmt.Errorf("error completing attempt: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNoActiveAttempt
		}

		batch := &pgx.Batch{}
		for _, answer := range answers {
			batch.Queue(
				`INSERT INTO answers (attempt_id, question_id, selected_option) VALUES ($1, $2, $3)`,
				attempt.ID, answer.QuestionID, answer.SelectedOption,
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range answers {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("error saving answer: %w", err)
			}
		}

		return results.Close()
	})
}

// GetAnswers retrieves the recorded answers for an attempt in question order
func (r *AttemptRepository) GetAnswers(ctx context.Context, attemptID int64) ([]models.Answer, error) {
	query := `
		SELECT id, attempt_id, question_id, selected_option
		FROM answers
		WHERE attempt_id = $1
		ORDER BY question_id
	`

	rows, err := r.db.Query(ctx, query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("error listing attempt answers: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var answer models.Answer
		if err := rows.Scan(&answer.ID, &answer.AttemptID, &answer.QuestionID, &answer.SelectedOption); err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		answers = append(answers, answer)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return answers, nil
}

// ListCompletedByStudent retrieves a student's completed attempts joined with
// their exams, newest submission first, with the total completed count.
func (r *AttemptRepository) ListCompletedByStudent(ctx context.Context, studentID int64, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	return r.listCompleted(ctx, squirrel.Eq{"a.student_id": studentID}, offset, limit)
}

// ListCompletedByExam retrieves all completed attempts for one exam joined
// with their students, newest submission first, with the total completed count.
func (r *AttemptRepository) ListCompletedByExam(ctx context.Context, examID int64, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	return r.listCompleted(ctx, squirrel.Eq{"a.exam_id": examID}, offset, limit)
}

// listCompleted is shared by the result listings. In-progress attempts never
// appear here; the is_completed filter is part of the base query.
func (r *AttemptRepository) listCompleted(ctx context.Context, filter squirrel.Sqlizer, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	query := r.sb.Select(
		"a.id", "a.student_id", "a.exam_id", "a.score", "a.percentage",
		"a.status", "a.submitted_at", "a.is_completed", "a.created_at",
		"e.title", "e.total_marks",
		"u.name",
		"COUNT(*) OVER()",
	).
		From("attempts a").
		Join("exams e ON e.id = a.exam_id").
		Join("users u ON u.id = a.student_id").
		Where(squirrel.Eq{"a.is_completed": true}).
		Where(filter).
		OrderBy("a.submitted_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build completed attempts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing completed attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.Attempt
	var total int64

	for rows.Next() {
		var attempt models.Attempt
		var exam models.Exam
		var student models.User
		if err := rows.Scan(
			&attempt.ID,
			&attempt.StudentID,
			&attempt.ExamID,
			&attempt.Score,
			&attempt.Percentage,
			&attempt.Status,
			&attempt.SubmittedAt,
			&attempt.IsCompleted,
			&attempt.CreatedAt,
			&exam.Title,
			&exam.TotalMarks,
			&student.Name,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning completed attempt row: %w", err)
		}

		exam.ID = attempt.ExamID
		student.ID = attempt.StudentID
		attempt.Exam = &exam
		attempt.Student = &student
		attempts = append(attempts, &attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attempts, total, nil
}

// DeleteWithAnswers removes an attempt and its answers in one transaction.
// The schema also cascades answers on attempt delete; the explicit ordering
// here keeps the operation correct even without the cascade.
func (r *AttemptRepository) DeleteWithAnswers(ctx context.Context, attemptID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM answers WHERE attempt_id = $1`, attemptID); err != nil {
			return fmt.Errorf("error deleting attempt answers: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM attempts WHERE id = $1`, attemptID)
		if err != nil {
			return fmt.Errorf("error deleting attempt: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrResourceNotFound
		}

		return nil
	})
}
