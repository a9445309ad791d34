package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/repository"
)

// notificationLimit bounds the page-load notification poll.
const notificationLimit = 50

// EngagementService handles comments, the like toggle and the
// notifications both produce. A notification is written in the same
// transaction as the action that caused it, only when the actor is not the
// project owner, and never on unlike.
type EngagementService struct {
	repo        repository.EngagementRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
	log         zerolog.Logger
}

func NewEngagementService(
	repo repository.EngagementRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	log zerolog.Logger,
) *EngagementService {
	return &EngagementService{
		repo:        repo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
		log:         log,
	}
}

// AddComment validates the content bounds (1..1000 inclusive) and inserts
// the comment together with the owner's notification.
func (s *EngagementService) AddComment(ctx context.Context, projectID, authorID int64, content string) (*model.Comment, error) {
	if n := utf8.RuneCountInString(content); n < model.MinCommentLength || n > model.MaxCommentLength {
		return nil, model.ErrCommentLength
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var notif *model.Notification
	if project.UserID != authorID {
		notif = &model.Notification{
			UserID:    project.UserID,
			Message:   fmt.Sprintf("%s commented on your project %q", author.FullName(), project.Title),
			ProjectID: &project.ID,
		}
	}

	comment := &model.Comment{
		Content:   content,
		UserID:    authorID,
		ProjectID: projectID,
	}
	created, err := s.repo.AddComment(ctx, comment, notif)
	if err != nil {
		return nil, err
	}

	created.Author = &model.UserSummary{
		ID:           author.ID,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		ProfileImage: author.ProfileImage,
	}

	s.log.Info().Int64("project_id", projectID).Int64("user_id", authorID).Msg("comment added")
	return created, nil
}

// ListComments returns a project's comments, newest first.
func (s *EngagementService) ListComments(ctx context.Context, projectID int64) ([]model.Comment, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, projectID)
}

// ToggleLike flips the (user, project) like. The owner is notified only
// when the toggle lands on liked and the liker is someone else.
func (s *EngagementService) ToggleLike(ctx context.Context, projectID, userID int64) (*model.LikeResult, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var notif *model.Notification
	if project.UserID != userID {
		liker, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		notif = &model.Notification{
			UserID:    project.UserID,
			Message:   fmt.Sprintf("%s liked your project %q", liker.FullName(), project.Title),
			ProjectID: &project.ID,
		}
	}

	result, err := s.repo.ToggleLike(ctx, projectID, userID, notif)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("project_id", projectID).
		Int64("user_id", userID).
		Bool("liked", result.Liked).
		Msg("like toggled")
	return result, nil
}

// Notifications returns the recipient's recent notifications with the
// unread badge count.
func (s *EngagementService) Notifications(ctx context.Context, userID int64) (*model.NotificationList, error) {
	notifications, unread, err := s.notifRepo.ListForUser(ctx, userID, notificationLimit)
	if err != nil {
		return nil, err
	}
	return &model.NotificationList{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkNotificationsRead clears the unread flag on everything the user has.
func (s *EngagementService) MarkNotificationsRead(ctx context.Context, userID int64) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}
