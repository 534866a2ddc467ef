package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/deniz/examhub/internal/app/models"
	"github.com/deniz/examhub/internal/app/models/dto"
	"github.com/deniz/examhub/internal/pkg/apperrors"
)

// fakeExamStore is an in-memory ExamStore
type fakeExamStore struct {
	mu             sync.Mutex
	exams          map[int64]*models.Exam
	questionCounts map[int64]int
}

func newFakeExamStore(exams ...*models.Exam) *fakeExamStore {
	s := &fakeExamStore{
		exams:          make(map[int64]*models.Exam),
		questionCounts: make(map[int64]int),
	}
	for _, e := range exams {
		s.exams[e.ID] = e
	}
	return s
}

func (s *fakeExamStore) Create(ctx context.Context, exam *models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exam.ID = int64(len(s.exams) + 1)
	s.exams[exam.ID] = exam
	return nil
}

func (s *fakeExamStore) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exam, ok := s.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	copied := *exam
	return &copied, nil
}

func (s *fakeExamStore) GetAll(ctx context.Context) ([]*models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeExamStore) GetByFacultyID(ctx context.Context, facultyID int64) ([]*models.Exam, error) {
	all, _ := s.GetAll(ctx)
	var out []*models.Exam
	for _, e := range all {
		if e.FacultyID == facultyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeExamStore) Update(ctx context.Context, exam *models.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[exam.ID]; !ok {
		return apperrors.ErrExamNotFound
	}
	copied := *exam
	s.exams[exam.ID] = &copied
	return nil
}

func (s *fakeExamStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.exams[id]; !ok {
		return apperrors.ErrExamNotFound
	}
	delete(s.exams, id)
	return nil
}

func (s *fakeExamStore) CountQuestions(ctx context.Context, examID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionCounts[examID], nil
}

// fakeQuestionStore is an in-memory QuestionStore
type fakeQuestionStore struct {
	mu        sync.Mutex
	questions map[int64]models.Question
	nextID    int64
}

func newFakeQuestionStore(questions ...models.Question) *fakeQuestionStore {
	s := &fakeQuestionStore{questions: make(map[int64]models.Question)}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID > s.nextID {
			s.nextID = q.ID
		}
	}
	return s
}

func (s *fakeQuestionStore) Create(ctx context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	question.ID = s.nextID
	s.questions[question.ID] = *question
	return nil
}

func (s *fakeQuestionStore) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, apperrors.ErrQuestionNotFound
	}
	return &q, nil
}

func (s *fakeQuestionStore) GetByExamID(ctx context.Context, examID int64) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, q := range s.questions {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeQuestionStore) Update(ctx context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	s.questions[question.ID] = *question
	return nil
}

func (s *fakeQuestionStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

// fakeAttemptStore is an in-memory AttemptStore. Create and Complete enforce
// the same per-(student, exam) uniqueness the database's partial unique
// indexes do, under a single mutex, so races surface the same conflicts.
type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts map[int64]*models.Attempt
	answers  map[int64][]models.Answer
	nextID   int64
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts: make(map[int64]*models.Attempt),
		answers:  make(map[int64][]models.Answer),
	}
}

func (s *fakeAttemptStore) FindByStudentAndExam(ctx context.Context, studentID, examID int64, completed bool) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.StudentID == studentID && a.ExamID == examID && a.IsCompleted == completed {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeAttemptStore) GetByID(ctx context.Context, id int64) (*models.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (s *fakeAttemptStore) GetAnswers(ctx context.Context, attemptID int64) ([]models.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers[attemptID], nil
}

func (s *fakeAttemptStore) Create(ctx context.Context, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.StudentID == attempt.StudentID && a.ExamID == attempt.ExamID {
			if a.IsCompleted {
				return apperrors.ErrAttemptAlreadyCompleted
			}
			return apperrors.ErrAttemptInProgress
		}
	}
	s.nextID++
	attempt.ID = s.nextID
	attempt.CreatedAt = time.Now()
	copied := *attempt
	s.attempts[attempt.ID] = &copied
	return nil
}

func (s *fakeAttemptStore) Complete(ctx context.Context, attempt *models.Attempt, answers []models.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.attempts[attempt.ID]
	if !ok || stored.IsCompleted {
		return apperrors.ErrNoActiveAttempt
	}
	copied := *attempt
	copied.IsCompleted = true
	s.attempts[attempt.ID] = &copied
	s.answers[attempt.ID] = answers
	return nil
}

func (s *fakeAttemptStore) listCompleted(match func(*models.Attempt) bool, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.Attempt
	for _, a := range s.attempts {
		if a.IsCompleted && match(a) {
			copied := *a
			all = append(all, &copied)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *fakeAttemptStore) ListCompletedByStudent(ctx context.Context, studentID int64, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	return s.listCompleted(func(a *models.Attempt) bool { return a.StudentID == studentID }, offset, limit)
}

func (s *fakeAttemptStore) ListCompletedByExam(ctx context.Context, examID int64, offset uint64, limit int) ([]*models.Attempt, int64, error) {
	return s.listCompleted(func(a *models.Attempt) bool { return a.ExamID == examID }, offset, limit)
}

func testExam() *models.Exam {
	return &models.Exam{
		ID:             1,
		Title:          "Networks Midterm",
		Duration:       60,
		TotalMarks:     30,
		PassPercentage: 50,
		FacultyID:      10,
	}
}

func testQuestions() []models.Question {
	return []models.Question{
		{ID: 1, ExamID: 1, QuestionText: "q1", CorrectAnswer: "A", Marks: 10},
		{ID: 2, ExamID: 1, QuestionText: "q2", CorrectAnswer: "B", Marks: 10},
		{ID: 3, ExamID: 1, QuestionText: "q3", CorrectAnswer: "C", Marks: 10},
	}
}

func testStudents() *fakeUserStore {
	users := newFakeUserStore()
	users.users[5] = &models.User{ID: 5, Name: "Selin", Email: "selin@school.edu", RoleType: models.RoleStudent}
	users.users[6] = &models.User{ID: 6, Name: "Mert", Email: "mert@school.edu", RoleType: models.RoleStudent}
	return users
}

func newTestAttemptService(exam *models.Exam, questions []models.Question) (AttemptService, *fakeAttemptStore) {
	attempts := newFakeAttemptStore()
	svc := NewAttemptService(attempts, newFakeExamStore(exam), newFakeQuestionStore(questions...), testStudents(), zerolog.Nop())
	return svc, attempts
}

func TestStartAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("opens an attempt", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		resp, err := svc.StartAttempt(ctx, 5, 1)
		if err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}
		if resp.ID == 0 {
			t.Error("expected attempt ID to be assigned")
		}
		if resp.Status != string(models.AttemptInProgress) {
			t.Errorf("Status = %q, want %q", resp.Status, models.AttemptInProgress)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		_, err := svc.StartAttempt(ctx, 5, 99)
		if !errors.Is(err, apperrors.ErrExamNotFound) {
			t.Errorf("StartAttempt() error = %v, want ErrExamNotFound", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, attempts := newTestAttemptService(testExam(), testQuestions())

		_, err := svc.StartAttempt(ctx, 424242, 1)
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("StartAttempt() error = %v, want ErrUserNotFound", err)
		}
		if open, _ := attempts.FindByStudentAndExam(ctx, 424242, 1, false); open != nil {
			t.Error("no attempt should be created for an unknown student")
		}
	})

	t.Run("second start conflicts", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("first StartAttempt() error = %v", err)
		}
		_, err := svc.StartAttempt(ctx, 5, 1)
		if !errors.Is(err, apperrors.ErrAttemptInProgress) {
			t.Errorf("StartAttempt() error = %v, want ErrAttemptInProgress", err)
		}
	})

	t.Run("start after completion", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}
		if _, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{}}); err != nil {
			t.Fatalf("SubmitAttempt() error = %v", err)
		}

		_, err := svc.StartAttempt(ctx, 5, 1)
		if !errors.Is(err, apperrors.ErrAttemptAlreadyCompleted) {
			t.Errorf("StartAttempt() error = %v, want ErrAttemptAlreadyCompleted", err)
		}
	})

	t.Run("different students do not conflict", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}
		if _, err := svc.StartAttempt(ctx, 6, 1); err != nil {
			t.Errorf("StartAttempt() for second student error = %v", err)
		}
	})

}

// Racing starts must produce exactly one open attempt; the store rejects the
// rest the way the partial unique index does.
func TestStartAttempt_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, attempts := newTestAttemptService(testExam(), testQuestions())

	const racers = 16
	var wg sync.WaitGroup
	errs := make(chan error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.StartAttempt(ctx, 5, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, apperrors.ErrAttemptInProgress) {
			t.Errorf("unexpected error from racing start: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}

	open, err := attempts.FindByStudentAndExam(ctx, 5, 1, false)
	if err != nil || open == nil {
		t.Fatalf("expected one open attempt, got %v (err %v)", open, err)
	}
}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("grades and completes", func(t *testing.T) {
		svc, attempts := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}

		resp, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{
			Answers: map[int64]string{1: "a", 2: "B", 3: "D"},
		})
		if err != nil {
			t.Fatalf("SubmitAttempt() error = %v", err)
		}

		if resp.Score != 20 {
			t.Errorf("Score = %d, want 20", resp.Score)
		}
		if resp.Percentage < 66.6 || resp.Percentage > 66.7 {
			t.Errorf("Percentage = %v, want ~66.67", resp.Percentage)
		}
		if resp.Status != string(models.AttemptPass) {
			t.Errorf("Status = %q, want PASS", resp.Status)
		}
		if resp.SubmittedAt == nil {
			t.Error("expected SubmittedAt to be set")
		}
		if resp.ExamTitle != "Networks Midterm" || resp.TotalMarks != 30 {
			t.Errorf("exam projection = %q/%d, want Networks Midterm/30", resp.ExamTitle, resp.TotalMarks)
		}

		stored := attempts.answers[resp.AttemptID]
		if len(stored) != 3 {
			t.Fatalf("stored answers = %d, want one per question", len(stored))
		}
		if stored[2].SelectedOption == nil || *stored[2].SelectedOption != "D" {
			t.Errorf("third answer = %v, want D", stored[2].SelectedOption)
		}
	})

	t.Run("records blank answers", func(t *testing.T) {
		svc, attempts := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}

		resp, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{
			Answers: map[int64]string{1: "A"},
		})
		if err != nil {
			t.Fatalf("SubmitAttempt() error = %v", err)
		}

		stored := attempts.answers[resp.AttemptID]
		if len(stored) != 3 {
			t.Fatalf("stored answers = %d, want 3", len(stored))
		}
		if stored[1].SelectedOption != nil {
			t.Errorf("unanswered question should store nil, got %q", *stored[1].SelectedOption)
		}
		if resp.Score != 10 {
			t.Errorf("Score = %d, want 10", resp.Score)
		}
		if resp.Status != string(models.AttemptFail) {
			t.Errorf("Status = %q, want FAIL", resp.Status)
		}
	})

	t.Run("ignores unknown question ids", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}

		resp, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{
			Answers: map[int64]string{1: "A", 999: "A"},
		})
		if err != nil {
			t.Fatalf("SubmitAttempt() error = %v", err)
		}
		if resp.Score != 10 {
			t.Errorf("Score = %d, want 10", resp.Score)
		}
	})

	t.Run("submit without start", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		_, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{}})
		if !errors.Is(err, apperrors.ErrNoActiveAttempt) {
			t.Errorf("SubmitAttempt() error = %v, want ErrNoActiveAttempt", err)
		}
	})

	t.Run("second submit does not regrade", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}
		if _, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{1: "A"}}); err != nil {
			t.Fatalf("first SubmitAttempt() error = %v", err)
		}

		_, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{1: "A"}})
		if !errors.Is(err, apperrors.ErrNoActiveAttempt) {
			t.Errorf("SubmitAttempt() error = %v, want ErrNoActiveAttempt", err)
		}
	})

	t.Run("unknown exam", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		_, err := svc.SubmitAttempt(ctx, 5, 99, &dto.SubmitAttemptRequest{Answers: map[int64]string{}})
		if !errors.Is(err, apperrors.ErrExamNotFound) {
			t.Errorf("SubmitAttempt() error = %v, want ErrExamNotFound", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, _ := newTestAttemptService(testExam(), testQuestions())

		_, err := svc.SubmitAttempt(ctx, 424242, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{}})
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("SubmitAttempt() error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("malformed option rejected", func(t *testing.T) {
		svc, attempts := newTestAttemptService(testExam(), testQuestions())

		if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}

		_, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{
			Answers: map[int64]string{1: "AB"},
		})
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("SubmitAttempt() error = %v, want ErrBadRequest", err)
		}

		// The attempt must survive the rejected submission
		open, err := attempts.FindByStudentAndExam(ctx, 5, 1, false)
		if err != nil || open == nil {
			t.Fatalf("expected the attempt to stay open, got %v (err %v)", open, err)
		}
	})
}

// Racing submits must grade exactly once; the completion update only matches
// the still-open row, so every loser reports no active attempt.
func TestSubmitAttempt_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAttemptService(testExam(), testQuestions())

	if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}

	const racers = 16
	var wg sync.WaitGroup
	errs := make(chan error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{
				Answers: map[int64]string{1: "A"},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, apperrors.ErrNoActiveAttempt) {
			t.Errorf("unexpected error from racing submit: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
}

func TestGetStudentResults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAttemptService(testExam(), testQuestions())

	if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}
	if _, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{1: "A"}}); err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	resp, err := svc.GetStudentResults(ctx, 5, 1, 10)
	if err != nil {
		t.Fatalf("GetStudentResults() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("Results = %d, want 1", len(resp.Results))
	}
	if resp.Results[0].Status != string(models.AttemptFail) {
		t.Errorf("Status = %q, want FAIL", resp.Results[0].Status)
	}
	if resp.TotalItems != 1 || resp.CurrentPage != 1 {
		t.Errorf("pagination = %+v, want 1 item on page 1", resp.PaginationInfo)
	}

	other, err := svc.GetStudentResults(ctx, 6, 1, 10)
	if err != nil {
		t.Fatalf("GetStudentResults() error = %v", err)
	}
	if len(other.Results) != 0 {
		t.Errorf("other student's Results = %d, want 0", len(other.Results))
	}
}

func TestGetResultDetail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAttemptService(testExam(), testQuestions())

	started, err := svc.StartAttempt(ctx, 5, 1)
	if err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}
	if _, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{1: "A", 2: "D"}}); err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	t.Run("returns the answer breakdown", func(t *testing.T) {
		resp, err := svc.GetResultDetail(ctx, 5, started.ID)
		if err != nil {
			t.Fatalf("GetResultDetail() error = %v", err)
		}
		if resp.Score != 10 || resp.ExamTitle != "Networks Midterm" {
			t.Errorf("result = %d/%q, want 10/Networks Midterm", resp.Score, resp.ExamTitle)
		}
		if len(resp.Answers) != 3 {
			t.Fatalf("Answers = %d, want one per question", len(resp.Answers))
		}
		if !resp.Answers[0].Correct || resp.Answers[0].CorrectAnswer != "A" {
			t.Errorf("first answer = %+v, want correct A", resp.Answers[0])
		}
		if resp.Answers[1].Correct {
			t.Errorf("second answer = %+v, want incorrect", resp.Answers[1])
		}
		if resp.Answers[2].SelectedOption != nil {
			t.Errorf("unanswered question should have nil selection, got %q", *resp.Answers[2].SelectedOption)
		}
		if resp.Answers[0].QuestionText != "q1" {
			t.Errorf("QuestionText = %q, want q1", resp.Answers[0].QuestionText)
		}
	})

	t.Run("other student's attempt is hidden", func(t *testing.T) {
		_, err := svc.GetResultDetail(ctx, 6, started.ID)
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("GetResultDetail() error = %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("unknown attempt", func(t *testing.T) {
		_, err := svc.GetResultDetail(ctx, 5, 999)
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("GetResultDetail() error = %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("in-progress attempt is hidden", func(t *testing.T) {
		open, err := svc.StartAttempt(ctx, 6, 1)
		if err != nil {
			t.Fatalf("StartAttempt() error = %v", err)
		}
		_, err = svc.GetResultDetail(ctx, 6, open.ID)
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			t.Errorf("GetResultDetail() error = %v, want ErrResourceNotFound", err)
		}
	})
}

func TestGetExamResults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAttemptService(testExam(), testQuestions())

	if _, err := svc.StartAttempt(ctx, 5, 1); err != nil {
		t.Fatalf("StartAttempt() error = %v", err)
	}
	if _, err := svc.SubmitAttempt(ctx, 5, 1, &dto.SubmitAttemptRequest{Answers: map[int64]string{1: "A", 2: "B"}}); err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	t.Run("owner sees results", func(t *testing.T) {
		resp, err := svc.GetExamResults(ctx, 10, 1, 1, 10)
		if err != nil {
			t.Fatalf("GetExamResults() error = %v", err)
		}
		if len(resp.Results) != 1 {
			t.Fatalf("Results = %d, want 1", len(resp.Results))
		}
		if resp.Results[0].Score != 20 {
			t.Errorf("Score = %d, want 20", resp.Results[0].Score)
		}
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := svc.GetExamResults(ctx, 11, 1, 1, 10)
		if !errors.Is(err, apperrors.ErrNotExamOwner) {
			t.Errorf("GetExamResults() error = %v, want ErrNotExamOwner", err)
		}
	})
}
