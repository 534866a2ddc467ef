package models

import "time"

// AttemptStatus represents the lifecycle state of an attempt
type AttemptStatus string

// Attempt status constants. An attempt is created IN_PROGRESS and moves to
// exactly one of PASS or FAIL when it is submitted; there is no transition
// out of a completed state.
const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptPass       AttemptStatus = "PASS"
	AttemptFail       AttemptStatus = "FAIL"
)

// Attempt represents one student's single attempt at one exam.
// Score, Percentage and SubmittedAt stay NULL until the attempt is graded.
type Attempt struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	ExamID      int64         `json:"examId" db:"exam_id"`
	Score       *int          `json:"score,omitempty" db:"score"`
	Percentage  *float64      `json:"percentage,omitempty" db:"percentage"`
	Status      AttemptStatus `json:"status" db:"status"`
	SubmittedAt *time.Time    `json:"submittedAt,omitempty" db:"submitted_at"`
	IsCompleted bool          `json:"isCompleted" db:"is_completed"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`

	// Relations
	Student *User `json:"student,omitempty"`
	Exam    *Exam `json:"exam,omitempty"`
}

// Answer records the option a student selected for one question at submission
// time. SelectedOption is nil when the question was left unanswered; one row
// exists per question in the exam's question set as of submission.
type Answer struct {
	ID             int64   `json:"id" db:"id"`
	AttemptID      int64   `json:"attemptId" db:"attempt_id"`
	QuestionID     int64   `json:"questionId" db:"question_id"`
	SelectedOption *string `json:"selectedOption,omitempty" db:"selected_option"`
}
