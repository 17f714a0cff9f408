package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-server/internal/model"
)

func TestRefreshTokenRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	now := time.Now()
	mock.ExpectExec(`(?s)^INSERT INTO refresh_tokens`).
		WithArgs("jti-1", int64(5), []byte("hash"), now, now.Add(time.Hour), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), model.RefreshToken{
		JTI: "jti-1", UserID: 5, TokenHash: []byte("hash"),
		IssuedAt: now, ExpiresAt: now.Add(time.Hour),
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_GetByJTI(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "jti", "user_id", "token_hash", "issued_at", "expires_at",
		"revoked_at", "rotated_from_jti", "created_at", "updated_at",
	}).AddRow(int64(1), "jti-1", int64(5), []byte("hash"), now, now.Add(time.Hour), nil, nil, now, now)

	mock.ExpectQuery(`(?s)^SELECT .* FROM refresh_tokens WHERE jti = \$1$`).
		WithArgs("jti-1").
		WillReturnRows(rows)

	got, err := repo.GetByJTI(context.Background(), "jti-1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UserID)
	assert.Nil(t, got.RevokedAt)
}

func TestRefreshTokenRepository_GetByJTI_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(`(?s)^SELECT .* FROM refresh_tokens WHERE jti = \$1$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByJTI(context.Background(), "ghost")

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRefreshTokenRepository_RevokeByJTI(t *testing.T) {
	t.Run("revokes a live token", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRefreshTokenRepository(db)

		mock.ExpectExec(`(?s)^UPDATE refresh_tokens SET revoked_at = NOW.*WHERE jti = \$1 AND revoked_at IS NULL$`).
			WithArgs("jti-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RevokeByJTI(context.Background(), "jti-1"))
	})

	t.Run("already revoked reports not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRefreshTokenRepository(db)

		mock.ExpectExec(`(?s)^UPDATE refresh_tokens SET revoked_at = NOW`).
			WithArgs("jti-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.RevokeByJTI(context.Background(), "jti-1"), model.ErrNotFound)
	})
}

func TestRefreshTokenRepository_RevokeAllByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectExec(`(?s)^UPDATE refresh_tokens SET revoked_at = NOW.*WHERE user_id = \$1 AND revoked_at IS NULL$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.RevokeAllByUser(context.Background(), 5))
}
