package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/edgomes/portfolio-backend/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock setup failed: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

// Two successive toggles by the same user must land on liked then unliked
// with the count restored, and the notification must only be written on
// the insert path.
func TestEngagementRepository_ToggleLike_Parity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEngagementRepository(db)

	projectID, userID := int64(10), int64(2)
	owner := int64(1)
	notif := &model.Notification{
		UserID:    owner,
		Message:   "Ana Silva liked your project \"Solar System\"",
		ProjectID: &projectID,
	}

	// First toggle: no row to delete, so the like is inserted and the
	// owner's notification written in the same transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes`).
		WithArgs(userID, projectID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(userID, projectID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs(owner, notif.Message, projectID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	first, err := repo.ToggleLike(context.Background(), projectID, userID, notif)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !first.Liked || first.LikeCount != 1 {
		t.Errorf("first toggle = %+v, want liked with count 1", first)
	}

	// Second toggle: the row exists, so it is deleted. No insert and no
	// notification even though one was supplied.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes`).
		WithArgs(userID, projectID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	second, err := repo.ToggleLike(context.Background(), projectID, userID, notif)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if second.Liked || second.LikeCount != 0 {
		t.Errorf("second toggle = %+v, want unliked with count 0", second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestEngagementRepository_ToggleLike_SelfLikeSkipsNotification(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEngagementRepository(db)

	projectID, userID := int64(10), int64(1)

	// Insert path with a nil notification writes the like row only.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM likes`).
		WithArgs(userID, projectID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO likes`).
		WithArgs(userID, projectID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	result, err := repo.ToggleLike(context.Background(), projectID, userID, nil)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !result.Liked || result.LikeCount != 1 {
		t.Errorf("toggle = %+v, want liked with count 1", result)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
