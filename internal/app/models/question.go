package models

// Question represents one multiple-choice question belonging to an exam.
// CorrectAnswer holds the option key (A, B, C or D); it is stored uppercase
// and compared case-insensitively at grading time.
type Question struct {
	ID            int64  `json:"id" db:"id"`
	ExamID        int64  `json:"examId" db:"exam_id"`
	QuestionText  string `json:"questionText" db:"question_text"`
	OptionA       string `json:"optionA" db:"option_a"`
	OptionB       string `json:"optionB" db:"option_b"`
	OptionC       string `json:"optionC" db:"option_c"`
	OptionD       string `json:"optionD" db:"option_d"`
	CorrectAnswer string `json:"correctAnswer,omitempty" db:"correct_answer"`
	Marks         int    `json:"marks" db:"marks"`
}
