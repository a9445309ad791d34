package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/repository"
)

// ProjectService owns the project lifecycle. Every mutation requires the
// actor to be an admin, and edits/deletes additionally require ownership; a
// non-owner admin is rejected like anyone else.
type ProjectService struct {
	repo           repository.ProjectRepository
	categoryRepo   repository.CategoryRepository
	userRepo       repository.UserRepository
	engagementRepo repository.EngagementRepository
	log            zerolog.Logger
}

func NewProjectService(
	repo repository.ProjectRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	engagementRepo repository.EngagementRepository,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		repo:           repo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		log:            log,
	}
}

// Create validates the fields, resolves the category sentinel and stores
// the project with its tag set in one transaction.
func (s *ProjectService) Create(ctx context.Context, actorID int64, req model.ProjectRequest) (*model.Project, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, model.ErrForbidden
	}

	if err := validateProject(req); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  categoryID,
		DemoLink:    req.DemoLink,
		GithubLink:  req.GithubLink,
		ImagePath:   req.ImagePath,
		VideoPath:   req.VideoPath,
		IsPublished: req.IsPublished,
		IsFeatured:  req.IsFeatured,
		UserID:      actorID,
	}

	if err := s.repo.Create(ctx, project, SplitTags(req.Tags)); err != nil {
		return nil, err
	}

	s.log.Info().Int64("project_id", project.ID).Str("title", project.Title).Msg("project created")
	return s.repo.GetByID(ctx, project.ID)
}

// Update rewrites the fields and fully replaces the tag set. It returns the
// media paths the update displaced so the handler can clean the files up;
// the owner column is immutable.
func (s *ProjectService) Update(ctx context.Context, projectID, actorID int64, req model.ProjectRequest) (*model.Project, []string, error) {
	project, err := s.authorizeMutation(ctx, projectID, actorID)
	if err != nil {
		return nil, nil, err
	}

	if err := validateProject(req); err != nil {
		return nil, nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, nil, err
	}

	var displaced []string
	if req.ImagePath != nil {
		if project.ImagePath != nil {
			displaced = append(displaced, *project.ImagePath)
		}
		project.ImagePath = req.ImagePath
	}
	if req.VideoPath != nil {
		if project.VideoPath != nil {
			displaced = append(displaced, *project.VideoPath)
		}
		project.VideoPath = req.VideoPath
	}

	project.Title = strings.TrimSpace(req.Title)
	project.Description = req.Description
	project.Content = req.Content
	project.CategoryID = categoryID
	project.DemoLink = req.DemoLink
	project.GithubLink = req.GithubLink
	project.IsPublished = req.IsPublished
	project.IsFeatured = req.IsFeatured

	if err := s.repo.Update(ctx, project, SplitTags(req.Tags)); err != nil {
		return nil, nil, err
	}

	updated, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	return updated, displaced, nil
}

// Delete removes the project and everything hanging off it, returning the
// media paths for best-effort file cleanup by the caller.
func (s *ProjectService) Delete(ctx context.Context, projectID, actorID int64) ([]string, error) {
	project, err := s.authorizeMutation(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, projectID); err != nil {
		return nil, err
	}

	var media []string
	if project.ImagePath != nil {
		media = append(media, *project.ImagePath)
	}
	if project.VideoPath != nil {
		media = append(media, *project.VideoPath)
	}

	s.log.Info().Int64("project_id", projectID).Msg("project deleted")
	return media, nil
}

// GetByID returns a project for display. Unpublished projects are only
// visible to their owner.
func (s *ProjectService) GetByID(ctx context.Context, projectID int64, viewerID *int64) (*model.Project, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsPublished && (viewerID == nil || *viewerID != project.UserID) {
		return nil, model.ErrProjectNotFound
	}

	if viewerID != nil {
		liked, err := s.engagementRepo.IsLiked(ctx, projectID, *viewerID)
		if err != nil {
			s.log.Warn().Err(err).Int64("project_id", projectID).Msg("failed to check like status")
		} else {
			project.Liked = liked
		}
	}

	return project, nil
}

func (s *ProjectService) ListPublished(ctx context.Context, categoryID *int64) ([]model.Project, error) {
	return s.repo.ListPublished(ctx, categoryID)
}

// ListByUser returns a user's projects; owners see their drafts, everyone
// else only published work.
func (s *ProjectService) ListByUser(ctx context.Context, userID int64, viewerID *int64) ([]model.Project, error) {
	publishedOnly := viewerID == nil || *viewerID != userID
	return s.repo.ListByUser(ctx, userID, publishedOnly)
}

// Search returns one fixed-size page of published projects matching q.
func (s *ProjectService) Search(ctx context.Context, query string, page int) (*model.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * model.SearchPageSize

	projects, total, err := s.repo.Search(ctx, query, model.SearchPageSize, offset)
	if err != nil {
		return nil, err
	}

	return &model.SearchResult{
		Projects: projects,
		Query:    query,
		Page:     page,
		Total:    total,
		HasMore:  offset+len(projects) < total,
	}, nil
}

// Stats aggregates the admin dashboard counters for the actor's projects.
func (s *ProjectService) Stats(ctx context.Context, actorID int64) (*model.DashboardStats, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, model.ErrForbidden
	}
	return s.repo.OwnerStats(ctx, actorID)
}

// authorizeMutation loads the project and enforces admin-and-owner.
func (s *ProjectService) authorizeMutation(ctx context.Context, projectID, actorID int64) (*model.Project, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin || project.UserID != actorID {
		return nil, model.ErrForbidden
	}
	return project, nil
}

func (s *ProjectService) resolveCategory(ctx context.Context, categoryID int64) (*int64, error) {
	if categoryID == model.CategoryNone {
		return nil, nil
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// SplitTags turns the comma-separated tag input into a clean name list:
// whitespace trimmed, empty tokens dropped, duplicates collapsed to the
// first occurrence, input order preserved.
func SplitTags(csv string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(csv, ",") {
		name := strings.TrimSpace(token)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// validateProject enforces the form limits. Lengths are counted in
// characters, not bytes, so accented text fits the same number of letters.
func validateProject(req model.ProjectRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > model.MaxProjectTitleLength {
		return model.ErrFieldTooLong
	}
	if strings.TrimSpace(req.Description) == "" {
		return model.ErrDescriptionRequired
	}
	if utf8.RuneCountInString(req.Description) > model.MaxProjectDescriptionLength {
		return model.ErrFieldTooLong
	}
	if req.Content != nil && utf8.RuneCountInString(*req.Content) > model.MaxProjectContentLength {
		return model.ErrFieldTooLong
	}
	if utf8.RuneCountInString(req.Tags) > model.MaxProjectTagsLength {
		return model.ErrFieldTooLong
	}
	return nil
}
