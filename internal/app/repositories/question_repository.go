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

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, exam_id, question_text, option_a, option_b, option_c, option_d, correct_answer, marks`

func scanQuestion(row pgx.Row, q *models.Question) error {
	return row.Scan(
		&q.ID,
		&q.ExamID,
		&q.QuestionText,
		&q.OptionA,
		&q.OptionB,
		&q.OptionC,
		&q.OptionD,
		&q.CorrectAnswer,
		&q.Marks,
	)
}

// Create inserts a new question and sets its generated ID
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (exam_id, question_text, option_a, option_b, option_c, option_d, correct_answer, marks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		question.ExamID, question.QuestionText,
		question.OptionA, question.OptionB, question.OptionC, question.OptionD,
		question.CorrectAnswer, question.Marks,
	).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// GetByID retrieves a question by ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var question models.Question
	err := scanQuestion(r.db.QueryRow(ctx, query, id), &question)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	return &question, nil
}

// GetByExamID retrieves the exam's question set in stable (insertion) order
func (r *QuestionRepository) GetByExamID(ctx context.Context, examID int64) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE exam_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("error listing exam questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		if err := scanQuestion(rows, &question); err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}

// Update updates an existing question
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	query := `
		UPDATE questions
		SET question_text = $1, option_a = $2, option_b = $3, option_c = $4, option_d = $5,
		    correct_answer = $6, marks = $7
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		question.QuestionText,
		question.OptionA, question.OptionB, question.OptionC, question.OptionD,
		question.CorrectAnswer, question.Marks, question.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// Delete deletes a question by ID
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}
