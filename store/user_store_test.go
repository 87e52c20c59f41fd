package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db, zap.NewNop()), mock
}

func TestCreateUser(t *testing.T) {
	s, mock := newUserStore(t)
	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("a@example.com", []byte("hash")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at", "updated_at"}).AddRow(1, "a@example.com", now, now))

	u, err := s.CreateUser(context.Background(), "a@example.com", []byte("hash"))
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicate(t *testing.T) {
	s, mock := newUserStore(t)
	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := s.CreateUser(context.Background(), "a@example.com", []byte("hash"))
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s, mock := newUserStore(t)
	mock.ExpectQuery("FROM users").WithArgs("a@example.com").WillReturnError(sql.ErrNoRows)

	_, err := s.GetUserByEmail(context.Background(), "a@example.com")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
