package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/quizforge/quizforge/internal/domain"
)

type attemptsRepo struct {
	db dbtx
}

func (r *attemptsRepo) CreateAttempt(ctx context.Context, a domain.Attempt) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO attempts (id, quiz_id, user_id, answers, score, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuizID, a.UserID, string(answers), a.Score, a.Total, a.CreatedAt,
	)
	return mapConflict(err)
}

func (r *attemptsRepo) GetAttemptByID(ctx context.Context, id string) (domain.Attempt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, quiz_id, user_id, answers, score, total, created_at
		FROM attempts WHERE id = ?`, id)
	return scanAttempt(row)
}

func scanAttempt(row *sql.Row) (domain.Attempt, error) {
	var (
		a       domain.Attempt
		answers string
	)
	err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &answers, &a.Score, &a.Total, &a.CreatedAt)
	if err != nil {
		return domain.Attempt{}, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return domain.Attempt{}, err
	}
	return a, nil
}

// ListAttemptsByUser returns a user's attempts with their quiz titles,
// most recent first.
func (r *attemptsRepo) ListAttemptsByUser(ctx context.Context, userID string) ([]domain.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.quiz_id, a.user_id, a.answers, a.score, a.total, a.created_at, q.title
		FROM attempts a
		JOIN quizzes q ON q.id = a.quiz_id
		WHERE a.user_id = ? ORDER BY a.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.Attempt
	for rows.Next() {
		var (
			a       domain.Attempt
			answers string
		)
		err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &answers, &a.Score, &a.Total, &a.CreatedAt, &a.QuizTitle)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Leaderboard ranks each taker by their best score on the quiz, ties broken
// by whoever reached that score first.
func (r *attemptsRepo) Leaderboard(ctx context.Context, quizID string, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.user_id, u.username, MAX(a.score) AS best_score, a.total, a.created_at
		FROM attempts a
		JOIN users u ON u.id = a.user_id
		WHERE a.quiz_id = ?
		GROUP BY a.user_id, u.username
		ORDER BY best_score DESC, a.created_at ASC
		LIMIT ?`, quizID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		err := rows.Scan(&e.UserID, &e.Username, &e.Score, &e.Total, &e.AttemptAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
