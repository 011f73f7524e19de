package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/recipebook/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(username, hash, name string) types.User {
	return types.User{Username: username, PasswordHash: hash, Name: name}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

const selectByUsername = `SELECT id FROM recipe.user_credentials WHERE username = $1`

func userColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "name", "last_name"})
}

func TestUserCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("alex").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO recipe.user_credentials (username, password, name, last_name)`)).
		WithArgs("alex", "hash", "Alex", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	user, err := repo.Create(context.Background(), testUser("alex", "hash", "Alex"))
	require.NoError(t, err)
	assert.Equal(t, 5, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("alex").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), testUser("alex", "hash", "Alex"))
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, name, last_name`)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserUpdateProfileConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("taken").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.UpdateProfile(context.Background(), 1, "taken", "Alex", nil)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateProfileKeepingOwnUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("alex").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE recipe.user_credentials SET name = $1, username = $2, last_name = $3 WHERE id = $4`)).
		WithArgs("Alexandra", "alex", nil, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password, name, last_name`)).
		WithArgs(1).
		WillReturnRows(userColumns().AddRow(1, "alex", "hash", "Alexandra", nil))
	mock.ExpectCommit()

	user, err := repo.UpdateProfile(context.Background(), 1, "alex", "Alexandra", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", user.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteRemovesDependentRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.favorites WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.shopping_list WHERE user_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.user_credentials WHERE id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDeleteUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.favorites WHERE user_id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.shopping_list WHERE user_id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipe.user_credentials WHERE id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
