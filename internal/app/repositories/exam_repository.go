package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/pkg/apperrors"
)

// ExamRepository handles database operations for exams
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

const examColumns = `id, title, description, duration, total_marks, pass_percentage, start_time, end_time, faculty_id, created_at, updated_at`

func scanExam(row pgx.Row, exam *models.Exam) error {
	return row.Scan(
		&exam.ID,
		&exam.Title,
		&exam.Description,
		&exam.Duration,
		&exam.TotalMarks,
		&exam.PassPercentage,
		&exam.StartTime,
		&exam.EndTime,
		&exam.FacultyID,
		&exam.CreatedAt,
		&exam.UpdatedAt,
	)
}

// Create inserts a new exam and sets its generated ID
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	query := `
		INSERT INTO exams (title, description, duration, total_marks, pass_percentage, start_time, end_time, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		exam.Title, exam.Description, exam.Duration, exam.TotalMarks,
		exam.PassPercentage, exam.StartTime, exam.EndTime, exam.FacultyID,
	).Scan(&exam.ID, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating exam: %w", err)
	}

	return nil
}

// GetByID retrieves an exam by ID, including the owning faculty user
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	query := `
		SELECT e.id, e.title, e.description, e.duration, e.total_marks, e.pass_percentage,
		       e.start_time, e.end_time, e.faculty_id, e.created_at, e.updated_at,
		       u.id, u.name, u.email, u.role_type
		FROM exams e
		JOIN users u ON u.id = e.faculty_id
		WHERE e.id = $1
	`

	var exam models.Exam
	var faculty models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&exam.ID,
		&exam.Title,
		&exam.Description,
		&exam.Duration,
		&exam.TotalMarks,
		&exam.PassPercentage,
		&exam.StartTime,
		&exam.EndTime,
		&exam.FacultyID,
		&exam.CreatedAt,
		&exam.UpdatedAt,
		&faculty.ID,
		&faculty.Name,
		&faculty.Email,
		&faculty.RoleType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	exam.Faculty = &faculty
	return &exam, nil
}

// GetAll retrieves all exams
func (r *ExamRepository) GetAll(ctx context.Context) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		var exam models.Exam
		if err := scanExam(rows, &exam); err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, &exam)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exams, nil
}

// GetByFacultyID retrieves all exams created by one faculty user
func (r *ExamRepository) GetByFacultyID(ctx context.Context, facultyID int64) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE faculty_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error listing faculty exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		var exam models.Exam
		if err := scanExam(rows, &exam); err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, &exam)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exams, nil
}

// Update updates an existing exam's metadata
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	query := `
		UPDATE exams
		SET title = $1, description = $2, duration = $3, total_marks = $4,
		    pass_percentage = $5, start_time = $6, end_time = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		exam.Title, exam.Description, exam.Duration, exam.TotalMarks,
		exam.PassPercentage, exam.StartTime, exam.EndTime, exam.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating exam: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}

	return nil
}

// Delete deletes an exam by ID. Questions, attempts and answers hanging off
// the exam are removed by the cascading foreign keys in the schema.
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}

	return nil
}

// CountQuestions returns the number of questions currently in an exam
func (r *ExamRepository) CountQuestions(ctx context.Context, examID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE exam_id = $1`, examID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting exam questions: %w", err)
	}

	return count, nil
}
