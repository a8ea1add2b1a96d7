package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// The claim must be conditional on the row still being unassigned and in
// the pool; that single guarded UPDATE is what serializes racing pickups.
func TestClaimConditionsOnUnassignedRow(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewTaskRepository(db)

	deadline := time.Now().AddDate(0, 0, 7)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE \\(id = \\? AND owner_user_id IS NULL AND is_global = \\?\\)").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(42), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Claim(42, 7, deadline))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimLosesRaceWhenNoRowMatches(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewTaskRepository(db)

	deadline := time.Now().AddDate(0, 0, 7)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET .+ WHERE \\(id = \\? AND owner_user_id IS NULL AND is_global = \\?\\)").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint64(42), true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.ErrorIs(t, repo.Claim(42, 7, deadline), ErrTaskAlreadyClaimed)
	require.NoError(t, mock.ExpectationsWereMet())
}
