package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-server/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userRows(user model.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "first_name", "last_name",
		"bio", "is_active", "created_at", "updated_at",
	}).AddRow(
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName,
		user.LastName, user.Bio, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	saved := model.User{
		ID: 1, Username: "ada", Email: "ada@example.com", PasswordHash: "hash",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(`(?s)^INSERT INTO users .*RETURNING`).
		WithArgs("ada", "ada@example.com", "hash", "", "", "", true).
		WillReturnRows(userRows(saved))

	got, err := repo.Create(context.Background(), model.User{
		Username: "ada", Email: "ada@example.com", PasswordHash: "hash", IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "ada", got.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)^INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), model.User{Username: "ada"})

	var dup *model.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "username", dup.Field)
	assert.ErrorIs(t, err, model.ErrDuplicate)
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	user := model.User{ID: 7, Username: "ada", IsActive: true}
	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE id = \$1$`).
		WithArgs(int64(7)).
		WillReturnRows(userRows(user))

	got, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE id = \$1$`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	user := model.User{ID: 7, Username: "ada", IsActive: true}
	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE username = \$1$`).
		WithArgs("ada").
		WillReturnRows(userRows(user))

	got, err := repo.GetByUsername(context.Background(), "ada")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestUserRepository_GetByEmail_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE email = \$1$`).
		WithArgs("ada@example.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByEmail(context.Background(), "ada@example.com")

	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
}
