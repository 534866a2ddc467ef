package models

import "time"

// Exam represents a timed multiple-choice examination owned by a faculty user.
// StartTime/EndTime describe an optional availability window; enforcement of
// the window is left to clients.
type Exam struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	Duration       int        `json:"duration" db:"duration"` // minutes
	TotalMarks     int        `json:"totalMarks" db:"total_marks"`
	PassPercentage float64    `json:"passPercentage" db:"pass_percentage"` // 0-100
	StartTime      *time.Time `json:"startTime,omitempty" db:"start_time"`
	EndTime        *time.Time `json:"endTime,omitempty" db:"end_time"`
	FacultyID      int64      `json:"facultyId" db:"faculty_id"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations
	Faculty *User `json:"faculty,omitempty"`
}
