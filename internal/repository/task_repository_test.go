package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avigeya/projectboard/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestSaveGuardsOnVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`UPDATE "tasks" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task := &models.Task{ID: 1, Name: "Task", Version: 3, ProjectID: 1, CuratorID: 1, AuthorID: 1}
	require.NoError(t, repo.Save(task))
	require.Equal(t, int64(4), task.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveReturnsConflictWhenVersionMoved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	task := &models.Task{ID: 1, Name: "Task", Version: 3, ProjectID: 1, CuratorID: 1, AuthorID: 1}
	err := repo.Save(task)
	require.ErrorIs(t, err, ErrVersionConflict)
	require.Equal(t, int64(3), task.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMembersThenTaskRunInOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM "task_members"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "tasks"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteMembers(7))
	require.NoError(t, repo.Delete(7))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceMembersWithEmptySetOnlyDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM "task_members"`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ReplaceMembers(7, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
