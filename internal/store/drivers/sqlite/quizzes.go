package sqlite

import (
	"context"
	"encoding/json"

	"github.com/quizforge/quizforge/internal/domain"
)

type quizzesRepo struct {
	db dbtx
}

// CreateQuiz inserts the quiz and all its questions. Callers run this inside
// a transaction so a failed question insert leaves no partial quiz behind.
func (r *quizzesRepo) CreateQuiz(ctx context.Context, q domain.Quiz) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, owner_id, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		q.ID, q.OwnerID, q.Title, q.Description, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return mapConflict(err)
	}
	return r.insertQuestions(ctx, q.ID, q.Questions)
}

func (r *quizzesRepo) insertQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	for _, question := range questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO questions (id, quiz_id, position, text, options, correct_index, explanation)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			question.ID, quizID, question.Position, question.Text,
			string(options), question.CorrectIndex, question.Explanation,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *quizzesRepo) GetQuizByID(ctx context.Context, id string) (domain.Quiz, error) {
	var q domain.Quiz
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, created_at, updated_at
		FROM quizzes WHERE id = ?`, id).Scan(
		&q.ID, &q.OwnerID, &q.Title, &q.Description, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return domain.Quiz{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quiz_id, position, text, options, correct_index, explanation
		FROM questions WHERE quiz_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Quiz{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			question domain.Question
			options  string
		)
		err := rows.Scan(
			&question.ID, &question.QuizID, &question.Position, &question.Text,
			&options, &question.CorrectIndex, &question.Explanation,
		)
		if err != nil {
			return domain.Quiz{}, err
		}
		if err := json.Unmarshal([]byte(options), &question.Options); err != nil {
			return domain.Quiz{}, err
		}
		q.Questions = append(q.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, err
	}
	return q, nil
}

// ListQuizzesByOwner returns quiz metadata without questions; the list view
// never needs question bodies.
func (r *quizzesRepo) ListQuizzesByOwner(ctx context.Context, ownerID string) ([]domain.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, description, created_at, updated_at
		FROM quizzes WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var q domain.Quiz
		err := rows.Scan(&q.ID, &q.OwnerID, &q.Title, &q.Description, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// UpdateQuiz rewrites the quiz row and replaces its question set wholesale.
func (r *quizzesRepo) UpdateQuiz(ctx context.Context, q domain.Quiz) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quizzes SET title = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		q.Title, q.Description, q.UpdatedAt, q.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM questions WHERE quiz_id = ?`, q.ID); err != nil {
		return err
	}
	return r.insertQuestions(ctx, q.ID, q.Questions)
}

func (r *quizzesRepo) DeleteQuiz(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
