package repository

import (
	"context"

	"github.com/edgomes/portfolio-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (*model.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	// Delete removes a category; it fails with ErrCategoryInUse while any
	// project still references it.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type ProjectRepository interface {
	// Create inserts the project and its tag relations in one transaction.
	// Tag names are resolved case-sensitively and created on first use.
	Create(ctx context.Context, project *model.Project, tagNames []string) error
	// Update rewrites the row and fully replaces the tag set in one
	// transaction.
	Update(ctx context.Context, project *model.Project, tagNames []string) error
	// Delete removes the project's comments, likes and tag relations
	// together with the row, in one transaction. Tag rows themselves are
	// kept.
	Delete(ctx context.Context, projectID int64) error
	GetByID(ctx context.Context, projectID int64) (*model.Project, error)
	ListPublished(ctx context.Context, categoryID *int64) ([]model.Project, error)
	ListByUser(ctx context.Context, userID int64, publishedOnly bool) ([]model.Project, error)
	// Search matches published projects on title, description or content.
	// Returns one page plus the total match count.
	Search(ctx context.Context, query string, limit, offset int) ([]model.Project, int, error)
	OwnerStats(ctx context.Context, userID int64) (*model.DashboardStats, error)
}

type EngagementRepository interface {
	// AddComment inserts the comment and, when notif is non-nil, the
	// owner's notification in the same transaction.
	AddComment(ctx context.Context, comment *model.Comment, notif *model.Notification) (*model.Comment, error)
	ListComments(ctx context.Context, projectID int64) ([]model.Comment, error)
	// ToggleLike removes the (user, project) like if present, otherwise
	// inserts it. notif is only written on the insert path, in the same
	// transaction. The returned count reflects the state after the toggle.
	ToggleLike(ctx context.Context, projectID, userID int64, notif *model.Notification) (*model.LikeResult, error)
	IsLiked(ctx context.Context, projectID, userID int64) (bool, error)
}

type NotificationRepository interface {
	// ListForUser returns recent notifications plus the unread count.
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, int, error)
	MarkAllRead(ctx context.Context, userID int64) error
}
