package service

import (
	"context"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/internal/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func quizFixture(t *testing.T) (*QuizService, *sqlite.Store) {
	t.Helper()

	st := newTestStore(t)
	return &QuizService{Store: st}, st
}

func sampleQuizInput() QuizInput {
	return QuizInput{
		Title:       "Capitals of Europe",
		Description: "How well do you know them?",
		Questions: []QuestionInput{
			{
				Text:         "Capital of France?",
				Options:      []string{"Paris", "Lyon", "Marseille", "Nice"},
				CorrectIndex: 0,
				Explanation:  "Paris has been the capital since 987.",
			},
			{
				Text:         "Capital of Spain?",
				Options:      []string{"Barcelona", "Madrid", "Seville", "Valencia"},
				CorrectIndex: 1,
			},
			{
				Text:         "Capital of Italy?",
				Options:      []string{"Milan", "Naples", "Rome", "Turin"},
				CorrectIndex: 2,
			},
		},
	}
}

// answersFor builds a full answer sheet with the given number of correct
// selections; the rest pick a deliberately wrong option.
func answersFor(quiz domain.Quiz, correct int) []domain.Answer {
	answers := make([]domain.Answer, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		selected := q.CorrectIndex
		if i >= correct {
			selected = (q.CorrectIndex + 1) % len(q.Options)
		}
		answers = append(answers, domain.Answer{QuestionID: q.ID, SelectedIndex: selected})
	}
	return answers
}

func TestQuizCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 3)

	got, err := svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.Equal(t, quiz.Title, got.Title)
	require.Len(t, got.Questions, 3)

	// Questions come back in authored order.
	for i, q := range got.Questions {
		require.Equal(t, i, q.Position)
		require.Equal(t, quiz.Questions[i].Text, q.Text)
	}
}

func TestQuizCreateRejectsBadQuestions(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")

	t.Run("correct index out of range", func(t *testing.T) {
		in := sampleQuizInput()
		in.Questions[1].CorrectIndex = 4

		_, err := svc.Create(ctx, owner.ID, in)
		require.ErrorIs(t, err, ErrInvalidQuestion)
	})

	t.Run("too few options", func(t *testing.T) {
		in := sampleQuizInput()
		in.Questions[0].Options = []string{"Paris"}

		_, err := svc.Create(ctx, owner.ID, in)
		require.ErrorIs(t, err, ErrInvalidQuestion)
	})
}

func TestQuizOwnershipChecks(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")
	other := seedUser(t, st, "bob@example.com", "bob", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	t.Run("edit", func(t *testing.T) {
		_, err := svc.GetForEdit(ctx, quiz.ID, other.ID)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = svc.GetForEdit(ctx, quiz.ID, owner.ID)
		require.NoError(t, err)
	})

	t.Run("update", func(t *testing.T) {
		_, err := svc.Update(ctx, quiz.ID, other.ID, sampleQuizInput())
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.Delete(ctx, quiz.ID, other.ID)
		require.ErrorIs(t, err, ErrForbidden)

		require.NoError(t, svc.Delete(ctx, quiz.ID, owner.ID))

		_, err = svc.Get(ctx, quiz.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestQuizUpdateReplacesQuestions(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	updated := QuizInput{
		Title: "Capitals, revised",
		Questions: []QuestionInput{
			{
				Text:         "Capital of Germany?",
				Options:      []string{"Munich", "Berlin"},
				CorrectIndex: 1,
			},
		},
	}

	got, err := svc.Update(ctx, quiz.ID, owner.ID, updated)
	require.NoError(t, err)
	require.Equal(t, "Capitals, revised", got.Title)
	require.Len(t, got.Questions, 1)

	reloaded, err := svc.Get(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Questions, 1)
	require.Equal(t, "Capital of Germany?", reloaded.Questions[0].Text)
}

func TestSubmitAttemptScoring(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")
	taker := seedUser(t, st, "bob@example.com", "bob", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	t.Run("all correct", func(t *testing.T) {
		attempt, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, answersFor(quiz, 3))
		require.NoError(t, err)
		require.Equal(t, 3, attempt.Score)
		require.Equal(t, 3, attempt.Total)
	})

	t.Run("partially correct", func(t *testing.T) {
		attempt, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, answersFor(quiz, 1))
		require.NoError(t, err)
		require.Equal(t, 1, attempt.Score)
		require.Equal(t, 3, attempt.Total)
	})

	t.Run("unanswered questions score zero", func(t *testing.T) {
		answers := answersFor(quiz, 3)[:1] // only the first question answered
		attempt, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, answers)
		require.NoError(t, err)
		require.Equal(t, 1, attempt.Score)
		require.Equal(t, 3, attempt.Total)
	})

	t.Run("unknown question rejected", func(t *testing.T) {
		_, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, []domain.Answer{
			{QuestionID: "no-such-question", SelectedIndex: 0},
		})
		require.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("duplicate answers rejected", func(t *testing.T) {
		q := quiz.Questions[0]
		_, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, []domain.Answer{
			{QuestionID: q.ID, SelectedIndex: q.CorrectIndex},
			{QuestionID: q.ID, SelectedIndex: q.CorrectIndex},
		})
		require.ErrorIs(t, err, ErrInvalidAnswer)
	})
}

func TestAttemptResultsAccessControl(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")
	taker := seedUser(t, st, "bob@example.com", "bob", "password123")
	stranger := seedUser(t, st, "carol@example.com", "carol", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	attempt, err := svc.SubmitAttempt(ctx, quiz.ID, taker.ID, answersFor(quiz, 2))
	require.NoError(t, err)

	t.Run("taker sees breakdown", func(t *testing.T) {
		got, results, err := svc.AttemptResults(ctx, attempt.ID, taker.ID)
		require.NoError(t, err)
		require.Equal(t, attempt.ID, got.ID)
		require.Len(t, results, 3)

		require.True(t, results[0].Correct)
		require.True(t, results[1].Correct)
		require.False(t, results[2].Correct)
		require.Equal(t, "Paris has been the capital since 987.", results[0].Explanation)
	})

	t.Run("quiz owner sees breakdown", func(t *testing.T) {
		_, _, err := svc.AttemptResults(ctx, attempt.ID, owner.ID)
		require.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, _, err := svc.AttemptResults(ctx, attempt.ID, stranger.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestLeaderboardRanksBestScores(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")
	bob := seedUser(t, st, "bob@example.com", "bob", "password123")
	carol := seedUser(t, st, "carol@example.com", "carol", "password123")

	quiz, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	// Bob: best of 1 and 3. Carol: 2. Distinct timestamps keep tie-breaks
	// deterministic.
	base := time.Now().Add(-time.Hour)
	clockAt := func(offset time.Duration) func() time.Time {
		return func() time.Time { return base.Add(offset) }
	}

	svc.Now = clockAt(0)
	_, err = svc.SubmitAttempt(ctx, quiz.ID, bob.ID, answersFor(quiz, 1))
	require.NoError(t, err)

	svc.Now = clockAt(time.Minute)
	_, err = svc.SubmitAttempt(ctx, quiz.ID, carol.ID, answersFor(quiz, 2))
	require.NoError(t, err)

	svc.Now = clockAt(2 * time.Minute)
	_, err = svc.SubmitAttempt(ctx, quiz.ID, bob.ID, answersFor(quiz, 3))
	require.NoError(t, err)

	entries, err := svc.Leaderboard(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "bob", entries[0].Username)
	require.Equal(t, 3, entries[0].Score)
	require.Equal(t, "carol", entries[1].Username)
	require.Equal(t, 2, entries[1].Score)
}

func TestLeaderboardUnknownQuiz(t *testing.T) {
	svc, _ := quizFixture(t)

	_, err := svc.Leaderboard(context.Background(), "no-such-quiz")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHistoryListsAttemptsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, st := quizFixture(t)

	owner := seedUser(t, st, "alice@example.com", "alice", "password123")
	taker := seedUser(t, st, "bob@example.com", "bob", "password123")

	first, err := svc.Create(ctx, owner.ID, sampleQuizInput())
	require.NoError(t, err)

	secondInput := sampleQuizInput()
	secondInput.Title = "Capitals of Asia"
	second, err := svc.Create(ctx, owner.ID, secondInput)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	svc.Now = func() time.Time { return base }
	_, err = svc.SubmitAttempt(ctx, first.ID, taker.ID, answersFor(first, 1))
	require.NoError(t, err)

	svc.Now = func() time.Time { return base.Add(time.Minute) }
	_, err = svc.SubmitAttempt(ctx, second.ID, taker.ID, answersFor(second, 2))
	require.NoError(t, err)

	attempts, err := svc.History(ctx, taker.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	require.Equal(t, "Capitals of Asia", attempts[0].QuizTitle)
	require.Equal(t, 2, attempts[0].Score)
	require.Equal(t, "Capitals of Europe", attempts[1].QuizTitle)

	// Someone with no attempts gets an empty list, not nil.
	none, err := svc.History(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, none)
	require.NotNil(t, none)
}
