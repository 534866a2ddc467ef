package services

// Services defined in this package:
// - AuthService: registration, login and token rotation
// - ExamService: exam catalog management for faculty
// - QuestionService: question management within an exam
// - AttemptService: attempt lifecycle, grading and result projections
