package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quizforge/quizforge/internal/domain"
	"github.com/quizforge/quizforge/internal/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, full_name, email, username, password_hash, refresh_token,
	verified, reset_token_hash, reset_token_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u            domain.User
		refreshToken sql.NullString
		resetHash    sql.NullString
		resetExpiry  sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Username, &u.PasswordHash,
		&refreshToken, &u.Verified, &resetHash, &resetExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.RefreshToken = mapNullStringPtr(refreshToken)
	u.ResetTokenHash = mapNullStringPtr(resetHash)
	u.ResetTokenExpiry = mapNullTimePtr(resetExpiry)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByIdentifier looks a user up by email or username, whichever
// matches.
func (r *usersRepo) GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ?`,
		identifier, identifier)
	return scanUser(row)
}

func (r *usersRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ? OR username = ?`,
		email, username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, full_name, email, username, password_hash, refresh_token,
			verified, reset_token_hash, reset_token_expires_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.Username, u.PasswordHash,
		mapOptionalString(u.RefreshToken), u.Verified,
		mapOptionalString(u.ResetTokenHash), u.ResetTokenExpiry,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateRefreshToken(ctx context.Context, userID, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		token, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// RotateRefreshToken swaps the stored refresh token only if the caller
// presented the token currently on record. A zero-row update means the
// presented token is stale, which the service layer treats as reuse.
func (r *usersRepo) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND refresh_token = ?`,
		newToken, userID, oldToken)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) ClearRefreshToken(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_token_hash = ?, reset_token_expires_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, tokenHash, expiry, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) ClearResetToken(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_token_hash = NULL, reset_token_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GetUserByActiveResetTokenHash finds the user holding an unexpired reset
// token with the given fingerprint.
func (r *usersRepo) GetUserByActiveResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		WHERE reset_token_hash = ? AND reset_token_expires_at > ?`,
		tokenHash, now)
	return scanUser(row)
}

func (r *usersRepo) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_token_hash = NULL, reset_token_expires_at = NULL
		WHERE reset_token_hash IS NOT NULL AND reset_token_expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, fullName, email string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET full_name = ?, email = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, fullName, email, userID)
	if err != nil {
		return mapConflict(err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
