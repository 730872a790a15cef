package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/pkg/idx"
)

// DefaultLeaderboardLimit caps how many rows a leaderboard returns.
const DefaultLeaderboardLimit = 10

// QuestionInput is one authored question. CorrectIndex points into Options.
type QuestionInput struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// QuizInput is the authored quiz payload for create and update.
type QuizInput struct {
	Title       string
	Description string
	Questions   []QuestionInput
}

// QuizService covers authoring, taking and ranking quizzes.
type QuizService struct {
	Store            store.Store
	LeaderboardLimit int

	Now func() time.Time
}

func (s *QuizService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *QuizService) leaderboardLimit() int {
	if s.LeaderboardLimit > 0 {
		return s.LeaderboardLimit
	}
	return DefaultLeaderboardLimit
}

func buildQuestions(quizID string, inputs []QuestionInput) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(inputs))
	for i, in := range inputs {
		if len(in.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d needs at least two options", ErrInvalidQuestion, i+1)
		}
		if in.CorrectIndex < 0 || in.CorrectIndex >= len(in.Options) {
			return nil, fmt.Errorf("%w: question %d correct index out of range", ErrInvalidQuestion, i+1)
		}
		questions = append(questions, domain.Question{
			ID:           idx.New().String(),
			QuizID:       quizID,
			Position:     i,
			Text:         strings.TrimSpace(in.Text),
			Options:      in.Options,
			CorrectIndex: in.CorrectIndex,
			Explanation:  strings.TrimSpace(in.Explanation),
		})
	}
	return questions, nil
}

// Create authors a new quiz owned by ownerID.
func (s *QuizService) Create(ctx context.Context, ownerID string, in QuizInput) (domain.Quiz, error) {
	now := s.now()

	quiz := domain.Quiz{
		ID:          idx.New().String(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	questions, err := buildQuestions(quiz.ID, in.Questions)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Questions = questions

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Quizzes().CreateQuiz(ctx, quiz)
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// Get returns the quiz for taking; any signed-in user may fetch it. The
// handler strips answer keys before responding to non-owners.
func (s *QuizService) Get(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.Store.Quizzes().GetQuizByID(ctx, quizID)
}

// GetForEdit returns the quiz with answer keys, owner only.
func (s *QuizService) GetForEdit(ctx context.Context, quizID, requesterID string) (domain.Quiz, error) {
	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if quiz.OwnerID != requesterID {
		return domain.Quiz{}, ErrForbidden
	}
	return quiz, nil
}

// ListByOwner returns the caller's quizzes, metadata only.
func (s *QuizService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	return s.Store.Quizzes().ListQuizzesByOwner(ctx, ownerID)
}

// Update replaces the quiz's metadata and full question set, owner only.
// Question ids are reissued; old attempts keep their recorded answers.
func (s *QuizService) Update(ctx context.Context, quizID, requesterID string, in QuizInput) (domain.Quiz, error) {
	existing, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if existing.OwnerID != requesterID {
		return domain.Quiz{}, ErrForbidden
	}

	quiz := domain.Quiz{
		ID:          quizID,
		OwnerID:     existing.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   s.now(),
	}

	questions, err := buildQuestions(quizID, in.Questions)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz.Questions = questions

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Quizzes().UpdateQuiz(ctx, quiz)
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// Delete removes the quiz and, via FK cascade, its questions and attempts.
// Owner only.
func (s *QuizService) Delete(ctx context.Context, quizID, requesterID string) error {
	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.OwnerID != requesterID {
		return ErrForbidden
	}
	return s.Store.Quizzes().DeleteQuiz(ctx, quizID)
}

// SubmitAttempt scores a taker's answers against the quiz and records the
// attempt. Score is the count of questions whose selected option matches the
// answer key; unanswered questions score zero. Answers referencing unknown
// questions are rejected.
func (s *QuizService) SubmitAttempt(ctx context.Context, quizID, userID string, answers []domain.Answer) (domain.Attempt, error) {
	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return domain.Attempt{}, err
	}

	keyByID := make(map[string]domain.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		keyByID[q.ID] = q
	}

	score := 0
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, ok := keyByID[a.QuestionID]
		if !ok {
			return domain.Attempt{}, fmt.Errorf("%w: unknown question %s", ErrInvalidAnswer, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return domain.Attempt{}, fmt.Errorf("%w: duplicate answer for question %s", ErrInvalidAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		if a.SelectedIndex == q.CorrectIndex {
			score++
		}
	}

	attempt := domain.Attempt{
		ID:        idx.New().String(),
		QuizID:    quizID,
		UserID:    userID,
		Answers:   answers,
		Score:     score,
		Total:     len(quiz.Questions),
		CreatedAt: s.now(),
		QuizTitle: quiz.Title,
	}

	if err := s.Store.Attempts().CreateAttempt(ctx, attempt); err != nil {
		return domain.Attempt{}, err
	}
	return attempt, nil
}

// AttemptResults returns the per-question breakdown of an attempt. Only the
// taker or the quiz owner may view it.
func (s *QuizService) AttemptResults(ctx context.Context, attemptID, requesterID string) (domain.Attempt, []domain.QuestionResult, error) {
	attempt, err := s.Store.Attempts().GetAttemptByID(ctx, attemptID)
	if err != nil {
		return domain.Attempt{}, nil, err
	}

	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, attempt.QuizID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Quiz deleted out from under the attempt; nothing to show.
			return domain.Attempt{}, nil, store.ErrNotFound
		}
		return domain.Attempt{}, nil, err
	}

	if attempt.UserID != requesterID && quiz.OwnerID != requesterID {
		return domain.Attempt{}, nil, ErrForbidden
	}

	selectedByID := make(map[string]int, len(attempt.Answers))
	for _, a := range attempt.Answers {
		selectedByID[a.QuestionID] = a.SelectedIndex
	}

	results := make([]domain.QuestionResult, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		selected, answered := selectedByID[q.ID]
		if !answered {
			selected = -1
		}
		results = append(results, domain.QuestionResult{
			QuestionID:    q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectIndex:  q.CorrectIndex,
			SelectedIndex: selected,
			Correct:       answered && selected == q.CorrectIndex,
			Explanation:   q.Explanation,
		})
	}

	attempt.QuizTitle = quiz.Title
	return attempt, results, nil
}

// Leaderboard ranks takers by best score. The quiz must exist.
func (s *QuizService) Leaderboard(ctx context.Context, quizID string) ([]domain.LeaderboardEntry, error) {
	if _, err := s.Store.Quizzes().GetQuizByID(ctx, quizID); err != nil {
		return nil, err
	}

	entries, err := s.Store.Attempts().Leaderboard(ctx, quizID, s.leaderboardLimit())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

// History returns the user's attempts across all quizzes, newest first.
func (s *QuizService) History(ctx context.Context, userID string) ([]domain.Attempt, error) {
	attempts, err := s.Store.Attempts().ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []domain.Attempt{}
	}
	return attempts, nil
}
