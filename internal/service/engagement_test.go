package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type mockEngagementRepository struct {
	addCommentFn   func(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error)
	listCommentsFn func(ctx context.Context, projectID int64) ([]model.Comment, error)
	toggleLikeFn   func(ctx context.Context, projectID, userID int64, notif *model.Notification) (*model.LikeResult, error)
	isLikedFn      func(ctx context.Context, projectID, userID int64) (bool, error)
}

func (m *mockEngagementRepository) AddComment(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, comment, notif)
	}
	comment.ID = 1
	return comment, nil
}

func (m *mockEngagementRepository) ListComments(ctx context.Context, projectID int64) ([]model.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockEngagementRepository) ToggleLike(ctx context.Context, projectID, userID int64, notif *model.Notification) (*model.LikeResult, error) {
	if m.toggleLikeFn != nil {
		return m.toggleLikeFn(ctx, projectID, userID, notif)
	}
	return &model.LikeResult{Liked: true, LikeCount: 1}, nil
}

func (m *mockEngagementRepository) IsLiked(ctx context.Context, projectID, userID int64) (bool, error) {
	if m.isLikedFn != nil {
		return m.isLikedFn(ctx, projectID, userID)
	}
	return false, nil
}

type mockNotificationRepository struct {
	listForUserFn func(ctx context.Context, userID int64, limit int) ([]model.Notification, int, error)
	markAllReadFn func(ctx context.Context, userID int64) error
}

func (m *mockNotificationRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, int, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID, limit)
	}
	return nil, 0, nil
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

// engagementFixture wires an EngagementService around a project owned by
// user 1 and a commenting visitor, user 2.
func engagementFixture(repo *mockEngagementRepository, notifRepo *mockNotificationRepository) *EngagementService {
	projectRepo := &mockProjectRepository{
		getByIDFn: func(ctx context.Context, projectID int64) (*model.Project, error) {
			if projectID == 10 {
				return &model.Project{ID: 10, UserID: 1, Title: "Solar System", IsPublished: true}, nil
			}
			return nil, model.ErrProjectNotFound
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, FirstName: "Ana", LastName: "Silva"}, nil
		},
	}
	if notifRepo == nil {
		notifRepo = &mockNotificationRepository{}
	}
	return NewEngagementService(repo, projectRepo, userRepo, notifRepo, zerolog.Nop())
}

func TestEngagementService_AddComment_LengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty", "", true},
		{"single char", "a", false},
		{"at limit", strings.Repeat("b", model.MaxCommentLength), false},
		{"over limit", strings.Repeat("c", model.MaxCommentLength+1), true},
		{"multibyte at limit", strings.Repeat("ã", model.MaxCommentLength), false},
		{"multibyte over limit", strings.Repeat("ã", model.MaxCommentLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := engagementFixture(&mockEngagementRepository{}, nil)
			_, err := svc.AddComment(context.Background(), 10, 2, tt.content)
			if tt.wantErr && !errors.Is(err, model.ErrCommentLength) {
				t.Errorf("expected ErrCommentLength, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestEngagementService_AddComment_NotifiesOwner(t *testing.T) {
	var captured *model.Notification
	repo := &mockEngagementRepository{
		addCommentFn: func(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error) {
			captured = notif
			comment.ID = 1
			return comment, nil
		},
	}
	svc := engagementFixture(repo, nil)

	comment, err := svc.AddComment(context.Background(), 10, 2, "great work")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured == nil {
		t.Fatal("expected a notification for the owner")
	}
	if captured.UserID != 1 {
		t.Errorf("notification addressed to %d, want owner 1", captured.UserID)
	}
	if !strings.Contains(captured.Message, "Ana Silva") || !strings.Contains(captured.Message, "Solar System") {
		t.Errorf("notification message missing author or title: %q", captured.Message)
	}
	if comment.Author == nil || comment.Author.ID != 2 {
		t.Error("expected the author summary on the returned comment")
	}
}

func TestEngagementService_AddComment_NoSelfNotification(t *testing.T) {
	var captured *model.Notification
	repo := &mockEngagementRepository{
		addCommentFn: func(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error) {
			captured = notif
			return comment, nil
		},
	}
	svc := engagementFixture(repo, nil)

	// Owner (user 1) comments on their own project.
	if _, err := svc.AddComment(context.Background(), 10, 1, "my own note"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured != nil {
		t.Error("owner commenting on own project must not produce a notification")
	}
}

func TestEngagementService_AddComment_ProjectMissing(t *testing.T) {
	svc := engagementFixture(&mockEngagementRepository{}, nil)

	_, err := svc.AddComment(context.Background(), 99, 2, "hello")
	if !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestEngagementService_ToggleLike_NotificationRouting(t *testing.T) {
	var captured *model.Notification
	repo := &mockEngagementRepository{
		toggleLikeFn: func(ctx context.Context, projectID, userID int64, notif *model.Notification) (*model.LikeResult, error) {
			captured = notif
			return &model.LikeResult{Liked: true, LikeCount: 3}, nil
		},
	}

	t.Run("visitor like carries a notification", func(t *testing.T) {
		captured = nil
		svc := engagementFixture(repo, nil)
		result, err := svc.ToggleLike(context.Background(), 10, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Liked || result.LikeCount != 3 {
			t.Errorf("unexpected result %+v", result)
		}
		if captured == nil || captured.UserID != 1 {
			t.Error("expected a notification addressed to the owner")
		}
	})

	t.Run("owner like stays silent", func(t *testing.T) {
		captured = nil
		svc := engagementFixture(repo, nil)
		if _, err := svc.ToggleLike(context.Background(), 10, 1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if captured != nil {
			t.Error("owner liking own project must not produce a notification")
		}
	})
}

func TestEngagementService_Notifications(t *testing.T) {
	notifRepo := &mockNotificationRepository{
		listForUserFn: func(ctx context.Context, userID int64, limit int) ([]model.Notification, int, error) {
			if limit != notificationLimit {
				t.Errorf("expected limit %d, got %d", notificationLimit, limit)
			}
			return []model.Notification{{ID: 1, UserID: userID, Message: "x"}}, 1, nil
		},
	}
	svc := engagementFixture(&mockEngagementRepository{}, notifRepo)

	list, err := svc.Notifications(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list.Notifications) != 1 || list.UnreadCount != 1 {
		t.Errorf("unexpected list %+v", list)
	}
}
