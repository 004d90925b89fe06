package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/schoolboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hashedpassword",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "hashedpassword", false).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: false,
			expectedID:    1,
		},
		{
			name: "database error on insert",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hashedpassword",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "hashedpassword", false).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "duplicate username",
			user: &models.User{
				Username:     "taken",
				PasswordHash: "hashedpassword",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("taken", "hashedpassword", false).
					WillReturnError(errors.New("Error 1062: Duplicate entry 'taken' for key 'uq_username'"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(sqlmock.Sqlmock)
		expectedUser  *models.User
		expectedError error
	}{
		{
			name:     "success",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin"}).
					AddRow(1, "alice", "hashedpassword", false)
				mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "alice", PasswordHash: "hashedpassword", IsAdmin: false},
		},
		{
			name:     "admin user",
			username: "root",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin"}).
					AddRow(2, "root", "hashedpassword", true)
				mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
					WithArgs("root").
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 2, Username: "root", PasswordHash: "hashedpassword", IsAdmin: true},
		},
		{
			name:     "not found",
			username: "ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
					WithArgs("ghost").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin"}))
			},
			expectedError: models.ErrNotFound,
		},
		{
			name:     "database error",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
					WithArgs("alice").
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByUsername(context.Background(), tt.username)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, models.ErrNotFound) {
					assert.ErrorIs(t, err, models.ErrNotFound)
				}
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin"}).
		AddRow(1, "alice", "hashedpassword", false)
	mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
		WithArgs(1).
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, username, password_hash, is_admin`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "is_admin"}))

	user, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		setupMock      func(sqlmock.Sqlmock)
		expectedExists bool
		expectedError  bool
	}{
		{
			name:     "exists",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("alice").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedExists: true,
		},
		{
			name:     "does not exist",
			username: "ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ghost").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedExists: false,
		},
		{
			name:     "database error",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("alice").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsByUsername(context.Background(), tt.username)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
